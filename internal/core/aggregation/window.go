package aggregation

import (
	"fmt"
	"time"
)

// Window is a closed date interval: both Start and End are inclusive.
// Empty reports a window resolved against a table with no dated entries.
type Window struct {
	Start time.Time
	End   time.Time
	Empty bool
}

// Contains reports whether t lies in [Start, End].
func (w Window) Contains(t time.Time) bool {
	if w.Empty {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// ParseSpan parses a trailing window length such as "28d" or "72h".
// Supports Go duration syntax plus "Xd" for days.
func ParseSpan(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("window span must not be empty")
	}

	// time.ParseDuration has no day unit.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return 0, fmt.Errorf("invalid window span %q: %w", s, err)
		}
		if days <= 0 {
			return 0, fmt.Errorf("window span must be positive, got %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid window span %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("window span must be positive, got %q", s)
	}
	return d, nil
}

// Trailing returns the query bounds for the span ending at now.
func Trailing(now time.Time, span time.Duration) (start, end time.Time) {
	return now.Add(-span), now
}

// CalendarYear returns Jan 1 00:00:00 through Dec 31 23:59:59 of now's year.
func CalendarYear(now time.Time) (start, end time.Time) {
	loc := now.Location()
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc),
		time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, loc)
}

// MonthOf returns the calendar month bucket t falls into.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// wallClock reinterprets t's calendar date and clock reading in UTC so that
// differences between two readings ignore daylight-saving shifts.
func wallClock(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), time.UTC)
}

// elapsed is the wall-clock time from a to b.
func elapsed(a, b time.Time) time.Duration {
	return wallClock(b).Sub(wallClock(a))
}

// wholeDays returns the number of complete days in d, floored.
func wholeDays(d time.Duration) float64 {
	days := d / (24 * time.Hour)
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return float64(days)
}
