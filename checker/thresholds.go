package checker

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Threshold is one alerting tier: a maximum count per category at or below
// which the tier trips. A nil side leaves that category alone. Comparisons
// are <=, so a bound of 1 demands a count of at least 2 to stay quiet.
type Threshold struct {
	Slaves    *int
	Sentinels *int
}

// Thresholds carries the warning and critical tiers for a master-health
// evaluation.
type Thresholds struct {
	Warning  Threshold
	Critical Threshold
}

// ParseThreshold parses the "<slaves>,<sentinels>" command-line form. Either
// side may be blank to disable it, e.g. "1," alerts on slave count only.
func ParseThreshold(raw string) (Threshold, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Threshold{}, errors.Errorf("expected \"<slaves>,<sentinels>\", got %q", raw)
	}

	var threshold Threshold
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		count, err := strconv.Atoi(part)
		if err != nil {
			return Threshold{}, errors.Errorf("threshold %q is not an integer", part)
		}

		if i == 0 {
			threshold.Slaves = &count
		} else {
			threshold.Sentinels = &count
		}
	}

	return threshold, nil
}
