// File: services/scheduling/clock.go
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate validates a "2006-01-02" calendar date and returns it as a UTC
// midnight timestamp.
func ParseDate(s string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return day, nil
}

// FormatDate renders a timestamp as a "2006-01-02" calendar date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseClock validates an "HH:MM" wall-clock string and returns its offset in
// minutes from midnight. This is the store-boundary validator; the resolver
// itself assumes well-formed inputs.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// minutesOfDay converts a pre-validated "HH:MM" string. Malformed input here
// is a caller contract violation and maps to 0.
func minutesOfDay(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return m
}

// FormatClock renders a minutes-from-midnight offset as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
