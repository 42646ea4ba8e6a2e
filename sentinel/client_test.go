package sentinel

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/perfectayush/check-sentinel/testutils"
	"github.com/stretchr/testify/require"
)

func TestNewClientConnectFailure(t *testing.T) {
	// nothing listens on port 1 of the loopback interface
	_, err := NewClient(context.Background(), &ClientOptions{
		Host:    "127.0.0.1",
		Port:    1,
		Timeout: 250 * time.Millisecond,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not connect to sentinel at 127.0.0.1:1")
}

func TestClientAgainstLiveSentinel(t *testing.T) {
	testConfig := testutils.SkipIfNoSentinel(t)

	host, portStr, err := net.SplitHostPort(testConfig.SentinelAddr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	ctx := context.Background()

	client, err := NewClient(ctx, &ClientOptions{
		Host:     host,
		Port:     port,
		Password: testConfig.Password,
		Timeout:  2 * time.Second,
	})
	require.NoError(t, err)
	defer func() {
		_ = client.Close()
	}()

	t.Run("Info", func(t *testing.T) {
		info, err := client.Info(ctx)
		require.NoError(t, err)
		require.Contains(t, info, "sentinel_masters")
	})

	t.Run("Master", func(t *testing.T) {
		fields, err := client.Master(ctx, testConfig.MasterName)
		require.NoError(t, err)
		require.Equal(t, testConfig.MasterName, fields["name"])
	})

	t.Run("MasterAddr", func(t *testing.T) {
		masterHost, masterPort, err := client.MasterAddr(ctx, testConfig.MasterName)
		require.NoError(t, err)
		require.NotEmpty(t, masterHost)
		require.NotEmpty(t, masterPort)
	})

	t.Run("Slaves", func(t *testing.T) {
		_, err := client.Slaves(ctx, testConfig.MasterName)
		require.NoError(t, err)
	})

	t.Run("Sentinels", func(t *testing.T) {
		_, err := client.Sentinels(ctx, testConfig.MasterName)
		require.NoError(t, err)
	})

	t.Run("InstanceInfo", func(t *testing.T) {
		masterHost, masterPort, err := client.MasterAddr(ctx, testConfig.MasterName)
		require.NoError(t, err)

		info, err := client.InstanceInfo(ctx, masterHost, masterPort)
		require.NoError(t, err)
		require.Equal(t, "master", info["role"])
	})
}
