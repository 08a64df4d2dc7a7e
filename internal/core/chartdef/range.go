package chartdef

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange parses a trailing window length in days.
// Accepted forms: "30" (days), "30d", "4w". Zero means "today only".
func ParseRange(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("range must not be empty")
	}

	multiplier := 1
	switch {
	case strings.HasSuffix(s, "w"):
		multiplier = 7
		s = strings.TrimSuffix(s, "w")
	case strings.HasSuffix(s, "d"):
		s = strings.TrimSuffix(s, "d")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("range must not be negative, got %d", n)
	}
	return n * multiplier, nil
}
