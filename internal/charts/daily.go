package charts

import (
	"time"

	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// sample is one dated entry with its per-day normalised values.
type sample struct {
	day         time.Time
	distance    fuel.Float // distance / days since last entry
	cost        fuel.Float // total cost / days since last entry
	consumption fuel.Float
}

// point is one plotted day.
type point struct {
	Day   time.Time
	Value float64
}

// normalise spreads each entry's distance and cost over the days since the
// previous entry. firstGap is used for the first entry; a same-day refill
// counts as one day.
func normalise(entries []fuel.Entry, firstGap int) []sample {
	out := make([]sample, 0, len(entries))
	var prev time.Time
	for _, e := range entries {
		if !e.Date.Valid {
			continue
		}
		day := truncateToDay(e.Date.Time)

		gap := float64(firstGap)
		if len(out) > 0 {
			gap = float64(daysBetween(prev, day))
			if gap < 1 {
				gap = 1
			}
		}
		prev = day

		out = append(out, sample{
			day:         day,
			distance:    perDay(e.Distance, gap),
			cost:        perDay(e.TotalCost, gap),
			consumption: e.ConsumptionRate,
		})
	}
	return out
}

func perDay(v fuel.Float, days float64) fuel.Float {
	if !v.Valid {
		return fuel.Null
	}
	return fuel.FloatOf(v.Value / days)
}

// resample sums pick over a daily grid from the first to the last sample.
// A day summing to zero has no data and takes the value of the next later
// day that does. Trailing days without data are dropped.
func resample(samples []sample, pick func(sample) fuel.Float) []point {
	if len(samples) == 0 {
		return nil
	}

	totals := make(map[time.Time]float64, len(samples))
	for _, s := range samples {
		if v := pick(s); v.Valid {
			totals[s.day] += v.Value
		}
	}

	first, last := samples[0].day, samples[len(samples)-1].day
	var grid []point
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		grid = append(grid, point{Day: day, Value: totals[day]})
	}

	// Back-fill from the end; next holds the nearest later value with data.
	points := make([]point, len(grid))
	n := len(grid)
	hasNext := false
	var next float64
	for i := len(grid) - 1; i >= 0; i-- {
		if grid[i].Value != 0 {
			next = grid[i].Value
			hasNext = true
		}
		if !hasNext {
			n = i
			continue
		}
		points[i] = point{Day: grid[i].Day, Value: next}
	}
	return points[:n]
}

// truncateToDay returns midnight of t's calendar day in t's location.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
