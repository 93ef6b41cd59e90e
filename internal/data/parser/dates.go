package parser

import (
	"strconv"
	"strings"
	"time"
)

// ParseRecordDate parses the two date shapes present in the source data:
// "YYYY-MM-DD" and "DD/MM/YYYY", each optionally followed by a time-of-day
// component that is irrelevant for monthly bucketing and ignored. Components
// are interpreted as calendar values in loc rather than parsed as one opaque
// string, so a timezone shift can never move a record into the neighboring
// day's bucket. The second return value is false for empty, malformed, or
// calendar-invalid input.
func ParseRecordDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	// Drop an optional "HH:mm[:ss]" suffix.
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[:i]
	}

	var year, month, day int
	switch {
	case strings.Contains(raw, "-"): // YYYY-MM-DD
		fields := strings.Split(raw, "-")
		if len(fields) != 3 {
			return time.Time{}, false
		}
		year, month, day = atoi(fields[0]), atoi(fields[1]), atoi(fields[2])
	case strings.Contains(raw, "/"): // DD/MM/YYYY
		fields := strings.Split(raw, "/")
		if len(fields) != 3 {
			return time.Time{}, false
		}
		day, month, year = atoi(fields[0]), atoi(fields[1]), atoi(fields[2])
	default:
		return time.Time{}, false
	}

	if year <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalizes out-of-range components, so reject anything that
	// did not round-trip (e.g. day 31 of a 30-day month).
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n
}
