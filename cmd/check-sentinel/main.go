package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/perfectayush/check-sentinel/checker"
	"github.com/perfectayush/check-sentinel/sentinel"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var buildVersion string = "dev"

var rootCmd = &cobra.Command{
	Version: buildVersion,

	Use:   "check-sentinel",
	Short: "Nagios-style health checks for Redis Sentinel deployments",

	SilenceUsage:  true,
	SilenceErrors: true,
}

var sentinelCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "Check that the target is a live sentinel monitoring at least one master",

	Run: func(cmd *cobra.Command, args []string) {
		config, logger := setupCheck(cmd)

		runCheck(config, logger, func(ctx context.Context, chk *checker.Checker) checker.Result {
			return chk.CheckSentinel(ctx)
		})
	},
}

var masterCmd = &cobra.Command{
	Use:   "master",
	Short: "Check that the advertised master is reachable in the master role",

	Run: func(cmd *cobra.Command, args []string) {
		config, logger := setupCheck(cmd)
		if config.masterName == "" {
			exitUnknown(errors.New("a master name is required (--master)"))
		}

		runCheck(config, logger, func(ctx context.Context, chk *checker.Checker) checker.Result {
			return chk.CheckMaster(ctx, config.masterName)
		})
	},
}

var masterHealthCmd = &cobra.Command{
	Use:   "master-health",
	Short: "Evaluate slave and sentinel health for a monitored master",

	Run: func(cmd *cobra.Command, args []string) {
		config, logger := setupCheck(cmd)
		if config.masterName == "" {
			exitUnknown(errors.New("a master name is required (--master)"))
		}

		warning, err := checker.ParseThreshold(config.warningStr)
		if err != nil {
			exitUnknown(errors.Wrap(err, "invalid warning thresholds"))
		}
		critical, err := checker.ParseThreshold(config.criticalStr)
		if err != nil {
			exitUnknown(errors.Wrap(err, "invalid critical thresholds"))
		}
		levels := checker.Thresholds{Warning: warning, Critical: critical}

		runCheck(config, logger, func(ctx context.Context, chk *checker.Checker) checker.Result {
			return chk.CheckMasterHealth(ctx, config.masterName, levels)
		})
	},
}

func init() {
	connFlags := pflag.NewFlagSet("", pflag.ContinueOnError)
	connFlags.String("host", "127.0.0.1", "the sentinel host to connect to")
	connFlags.Int("port", 26379, "the sentinel port to connect to")
	connFlags.Int("timeout", 2, "connect and command timeout in seconds")
	connFlags.String("password", "", "password for the sentinel connection")
	connFlags.Bool("tls", false, "use TLS for all connections")
	connFlags.Bool("tls-skip-verify", false, "skip TLS certificate verification")
	connFlags.String("log-level", "error", "the log level to run at")
	connFlags.String("config", "", "specifies a config file to load")

	masterFlags := pflag.NewFlagSet("", pflag.ContinueOnError)
	masterFlags.String("master", "", "name of the monitored master")

	sentinelCmd.Flags().AddFlagSet(connFlags)

	masterCmd.Flags().AddFlagSet(connFlags)
	masterCmd.Flags().AddFlagSet(masterFlags)

	masterHealthCmd.Flags().AddFlagSet(connFlags)
	masterHealthCmd.Flags().AddFlagSet(masterFlags)
	masterHealthCmd.Flags().String("warning", "1,1",
		"warning thresholds as \"<slaves>,<sentinels>\", either side may be blank")
	masterHealthCmd.Flags().String("critical", "1,1",
		"critical thresholds as \"<slaves>,<sentinels>\", either side may be blank")

	rootCmd.AddCommand(sentinelCmd, masterCmd, masterHealthCmd)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.SetEnvPrefix("check_sentinel")
	viper.AutomaticEnv()
}

func getLogger() (zap.AtomicLevel, *zap.Logger) {
	logLevel := zap.NewAtomicLevel()
	logConfig := zap.NewProductionEncoderConfig()
	logConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonEncoder := zapcore.NewJSONEncoder(logConfig)

	// stdout carries exactly one result line for the scheduler, so all
	// logging goes to stderr
	core := zapcore.NewTee(
		zapcore.NewCore(jsonEncoder, zapcore.AddSync(os.Stderr), logLevel),
	)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logLevel, logger
}

type config struct {
	logLevelStr   string
	host          string
	port          int
	timeout       int
	password      string
	useTLS        bool
	tlsSkipVerify bool
	masterName    string
	warningStr    string
	criticalStr   string
}

func readConfig() *config {
	return &config{
		logLevelStr:   viper.GetString("log-level"),
		host:          viper.GetString("host"),
		port:          viper.GetInt("port"),
		timeout:       viper.GetInt("timeout"),
		password:      viper.GetString("password"),
		useTLS:        viper.GetBool("tls"),
		tlsSkipVerify: viper.GetBool("tls-skip-verify"),
		masterName:    viper.GetString("master"),
		warningStr:    viper.GetString("warning"),
		criticalStr:   viper.GetString("critical"),
	}
}

// setupCheck binds the executing command's flags, loads the optional config
// file and builds the logger. Usage-level failures exit UNKNOWN before any
// connection is attempted.
func setupCheck(cmd *cobra.Command) (*config, *zap.Logger) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		exitUnknown(err)
	}

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			exitUnknown(errors.Wrap(err, "failed to load specified config file"))
		}
	}

	config := readConfig()

	logLevel, logger := getLogger()
	parsedLogLevel, err := zapcore.ParseLevel(config.logLevelStr)
	if err != nil {
		logger.Warn("invalid log level specified, using ERROR instead")
		parsedLogLevel = zapcore.ErrorLevel
	}
	logLevel.SetLevel(parsedLogLevel)

	logger.Debug("parsed check configuration",
		zap.String("host", config.host),
		zap.Int("port", config.port),
		zap.Int("timeout", config.timeout),
		zap.Bool("tls", config.useTLS),
		zap.Bool("tlsSkipVerify", config.tlsSkipVerify),
		zap.String("master", config.masterName),
		zap.String("warning", config.warningStr),
		zap.String("critical", config.criticalStr))

	return config, logger
}

// runCheck connects to the sentinel, runs one check against it and emits the
// result. A connection failure is itself a CRITICAL result: nothing further
// could be meaningfully evaluated.
func runCheck(config *config, logger *zap.Logger, check func(context.Context, *checker.Checker) checker.Result) {
	ctx := context.Background()

	client, err := sentinel.NewClient(ctx, &sentinel.ClientOptions{
		Logger:        logger.Named("sentinel"),
		Host:          config.host,
		Port:          config.port,
		Password:      config.password,
		Timeout:       time.Duration(config.timeout) * time.Second,
		UseTLS:        config.useTLS,
		TLSSkipVerify: config.tlsSkipVerify,
	})
	if err != nil {
		emit(checker.Criticalf("%s", err))
		return
	}

	chk, err := checker.NewChecker(&checker.CheckerOptions{
		Logger: logger.Named("checker"),
		Conn:   client,
	})
	if err != nil {
		exitUnknown(err)
	}

	result := check(ctx, chk)
	_ = client.Close()

	emit(result)
}

// emit prints the single result line and exits with the matching code.
func emit(result checker.Result) {
	fmt.Println(result.Message())
	os.Exit(result.Severity.ExitCode())
}

func exitUnknown(err error) {
	fmt.Printf("UNKNOWN - %s\n", err)
	os.Exit(checker.SeverityUnknown.ExitCode())
}

func main() {
	// flag and usage errors surface as UNKNOWN, the scheduler convention
	// for "the check itself is broken"
	if err := rootCmd.Execute(); err != nil {
		exitUnknown(err)
	}
}
