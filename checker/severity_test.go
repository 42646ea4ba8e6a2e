package checker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeverityOrdering(t *testing.T) {
	require.True(t, SeverityOK < SeverityWarning)
	require.True(t, SeverityWarning < SeverityCritical)
	require.True(t, SeverityCritical < SeverityUnknown)
}

func TestSeverityString(t *testing.T) {
	require.Equal(t, "OK", SeverityOK.String())
	require.Equal(t, "WARNING", SeverityWarning.String())
	require.Equal(t, "CRITICAL", SeverityCritical.String())
	require.Equal(t, "UNKNOWN", SeverityUnknown.String())
	require.Equal(t, "UNKNOWN", Severity(17).String())
}

func TestSeverityExitCode(t *testing.T) {
	require.Equal(t, 0, SeverityOK.ExitCode())
	require.Equal(t, 1, SeverityWarning.ExitCode())
	require.Equal(t, 2, SeverityCritical.ExitCode())
	require.Equal(t, 3, SeverityUnknown.ExitCode())
	require.Equal(t, 3, Severity(17).ExitCode())
	require.Equal(t, 3, Severity(-1).ExitCode())
}
