package checker

import (
	"fmt"
	"strings"
)

// Status accumulates the findings of a single check run. The aggregate
// severity only ever rises, and every finding is kept in recording order, so
// the final message lists all of them rather than just the worst one. A fresh
// Status is built per invocation; it is not safe for concurrent use and does
// not need to be.
type Status struct {
	severity Severity
	findings []string
}

func NewStatus() *Status {
	return &Status{severity: SeverityOK}
}

// Record appends a finding and raises the aggregate severity if the new
// finding is worse than anything seen so far.
func (s *Status) Record(severity Severity, format string, args ...interface{}) {
	s.findings = append(s.findings, fmt.Sprintf(format, args...))
	if severity > s.severity {
		s.severity = severity
	}
}

func (s *Status) Severity() Severity {
	return s.severity
}

// Result snapshots the accumulated findings into an immutable Result.
func (s *Status) Result() Result {
	findings := make([]string, len(s.findings))
	copy(findings, s.findings)

	return Result{
		Severity: s.severity,
		Findings: findings,
	}
}

// Result is the outcome of one check invocation.
type Result struct {
	Severity Severity
	Findings []string
}

// Message renders the single output line in the conventional plugin format,
// findings joined in the order they were recorded.
func (r Result) Message() string {
	return fmt.Sprintf("%s - %s", r.Severity, strings.Join(r.Findings, ". "))
}

// Criticalf builds a single-finding CRITICAL result for fatal conditions
// where nothing further can be meaningfully evaluated. Findings gathered
// before the fatal one are not carried over; the caller returns this result
// in place of its accumulated Status.
func Criticalf(format string, args ...interface{}) Result {
	return Result{
		Severity: SeverityCritical,
		Findings: []string{fmt.Sprintf(format, args...)},
	}
}
