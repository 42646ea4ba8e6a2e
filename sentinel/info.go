package sentinel

import "strings"

// parseInfo decodes an INFO bulk reply into a flat field map. Section
// headers and blank lines are skipped; values keep everything after the
// first colon. Splitting on bare newlines keeps this working for both CRLF
// and LF line endings.
func parseInfo(raw string) map[string]string {
	fields := make(map[string]string)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		fields[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	return fields
}
