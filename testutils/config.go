package testutils

import (
	"os"
	"testing"
)

type Config struct {
	SentinelAddr string
	MasterName   string
	Password     string
}

var globalTestConfig *Config

func GetTestConfig(t *testing.T) *Config {
	if globalTestConfig == nil {
		testConfig := &Config{
			SentinelAddr: "",
			MasterName:   "mymaster",
			Password:     "",
		}

		envSentinelAddr := os.Getenv("CSTEST_SENTINEL_ADDR")
		if envSentinelAddr != "" {
			testConfig.SentinelAddr = envSentinelAddr
		}

		envMasterName := os.Getenv("CSTEST_MASTER_NAME")
		if envMasterName != "" {
			testConfig.MasterName = envMasterName
		}

		envPassword := os.Getenv("CSTEST_PASSWORD")
		if envPassword != "" {
			testConfig.Password = envPassword
		}

		t.Logf("initialized test configuration")
		t.Logf("  sentineladdr: %s", testConfig.SentinelAddr)
		t.Logf("  mastername: %s", testConfig.MasterName)

		globalTestConfig = testConfig
	}

	return globalTestConfig
}

// SkipIfNoSentinel skips the calling test unless the environment points at a
// live sentinel to test against.
func SkipIfNoSentinel(t *testing.T) *Config {
	testConfig := GetTestConfig(t)
	if testConfig.SentinelAddr == "" {
		t.Skip("no live sentinel configured (set CSTEST_SENTINEL_ADDR)")
	}

	return testConfig
}
