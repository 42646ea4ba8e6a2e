package checker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusSeverityOnlyRises(t *testing.T) {
	status := NewStatus()
	require.Equal(t, SeverityOK, status.Severity())

	status.Record(SeverityWarning, "first")
	require.Equal(t, SeverityWarning, status.Severity())

	status.Record(SeverityCritical, "second")
	require.Equal(t, SeverityCritical, status.Severity())

	// recording something milder must not lower the aggregate
	status.Record(SeverityOK, "third")
	require.Equal(t, SeverityCritical, status.Severity())

	status.Record(SeverityWarning, "fourth")
	require.Equal(t, SeverityCritical, status.Severity())
}

func TestStatusKeepsFindingOrder(t *testing.T) {
	status := NewStatus()
	status.Record(SeverityCritical, "worst thing")
	status.Record(SeverityOK, "fine thing")
	status.Record(SeverityWarning, "iffy thing")

	result := status.Result()
	require.Equal(t, SeverityCritical, result.Severity)
	require.Equal(t, []string{"worst thing", "fine thing", "iffy thing"}, result.Findings)
}

func TestStatusRecordFormats(t *testing.T) {
	status := NewStatus()
	status.Record(SeverityOK, "%d/%d %s healthy", 2, 3, "slaves")

	result := status.Result()
	require.Equal(t, []string{"2/3 slaves healthy"}, result.Findings)
}

func TestResultMessage(t *testing.T) {
	t.Run("SingleFinding", func(t *testing.T) {
		result := Result{
			Severity: SeverityOK,
			Findings: []string{"sentinel is monitoring 2 masters"},
		}
		require.Equal(t, "OK - sentinel is monitoring 2 masters", result.Message())
	})

	t.Run("MultipleFindings", func(t *testing.T) {
		result := Result{
			Severity: SeverityWarning,
			Findings: []string{"2/2 slaves healthy", "1 healthy sentinels, expected at least 2"},
		}
		require.Equal(t,
			"WARNING - 2/2 slaves healthy. 1 healthy sentinels, expected at least 2",
			result.Message())
	})
}

func TestCriticalf(t *testing.T) {
	result := Criticalf("could not connect to %s", "10.0.0.1:26379")
	require.Equal(t, SeverityCritical, result.Severity)
	require.Equal(t, []string{"could not connect to 10.0.0.1:26379"}, result.Findings)
	require.Equal(t, "CRITICAL - could not connect to 10.0.0.1:26379", result.Message())
}

func TestStatusResultIsSnapshot(t *testing.T) {
	status := NewStatus()
	status.Record(SeverityOK, "before")

	result := status.Result()
	status.Record(SeverityCritical, "after")

	require.Equal(t, SeverityOK, result.Severity)
	require.Equal(t, []string{"before"}, result.Findings)
}
