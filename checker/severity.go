package checker

// Severity classifies a finding using the conventional four monitoring
// states. The integer values are ordered (OK < WARNING < CRITICAL < UNKNOWN)
// and double as process exit codes, so the ordering must not be rearranged.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// ExitCode returns the exit code a monitoring scheduler expects for this
// severity. Anything outside the known range reports as UNKNOWN.
func (s Severity) ExitCode() int {
	if s < SeverityOK || s > SeverityUnknown {
		return int(SeverityUnknown)
	}
	return int(s)
}
