package ingestion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/ncruces/go-strftime"

	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// dayFirstLayouts are tried before lenient detection when DayFirst is set.
// Single-digit layout elements also accept two digits.
var dayFirstLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2.1.2006",
}

// parseDate returns the wall-clock time in the local zone.
func (s *Service) parseDate(raw string) (time.Time, error) {
	switch format := s.opts.DateFormat; {
	case strings.Contains(format, "%"):
		t, err := strftime.Parse(format, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("date %q does not match %q: %w", raw, format, err)
		}
		return inLocal(t), nil
	case format != "":
		t, err := time.ParseInLocation(format, raw, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("date %q does not match %q: %w", raw, format, err)
		}
		return t, nil
	}

	if s.opts.DayFirst {
		for _, layout := range dayFirstLayouts {
			if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
				return t, nil
			}
		}
	}
	return dateparse.ParseIn(raw, time.Local,
		dateparse.PreferMonthFirst(!s.opts.DayFirst),
		dateparse.RetryAmbiguousDateWithSwap(true))
}

func inLocal(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}

// parseNumber reports ok=false for values that are not finite numbers.
func parseNumber(raw string) (fuel.Float, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fuel.Null, false
	}
	f := fuel.FloatOf(v)
	return f, f.Valid
}
