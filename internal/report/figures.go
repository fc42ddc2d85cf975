package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fuel-lab/fueltrack/internal/core/aggregation"
	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

const notAvailable = "n/a"

// Section is one titled block of headline figures.
type Section struct {
	Title string
	Lines []string
}

// window is one fixed reporting period. Nil bounds mean all-time.
type window struct {
	title      string
	start, end *time.Time
}

func (w *Writer) windows() []window {
	now := w.nowFn()
	trailStart, trailEnd := aggregation.Trailing(now, w.opts.TrailingWindow)
	yearStart, yearEnd := aggregation.CalendarYear(now)

	return []window{
		{title: fmt.Sprintf("Past %s Fuel Consumption Report", spanLabel(w.opts.TrailingWindow)), start: &trailStart, end: &trailEnd},
		{title: fmt.Sprintf("%d Fuel Consumption Report", now.Year()), start: &yearStart, end: &yearEnd},
		{title: "All-Time Fuel Consumption Report"},
	}
}

// Sections computes the figures for every reporting window.
func (w *Writer) Sections(t *fuel.Table) ([]Section, error) {
	wins := w.windows()
	sections := make([]Section, 0, len(wins))
	for _, win := range wins {
		totals, err := w.stats.Aggregate(t, aggregation.Query{Start: win.start, End: win.end, Mode: string(aggregation.ModeSum)})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", win.title, err)
		}
		means, err := w.stats.Aggregate(t, aggregation.Query{Start: win.start, End: win.end, Mode: string(aggregation.ModeAverage)})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", win.title, err)
		}
		sections = append(sections, Section{Title: win.title, Lines: w.figures(totals.Stats, means.Stats)})
	}
	return sections, nil
}

func (w *Writer) figures(totals, means aggregation.Stats) []string {
	o := w.opts
	return []string{
		fmt.Sprintf("Total Cost: %s", money(o.Currency, totals.Value(aggregation.MetricTotalCost))),
		fmt.Sprintf("Total Distance: %s", measure(totals.Value(aggregation.MetricDistance), o.DistanceUnit)),
		fmt.Sprintf("Total Petrol Consumption: %s", measure(totals.Value(aggregation.MetricFuelVolume), o.VolumeUnit)),
		fmt.Sprintf("Fuel Economy: %s", measure(means.Value(aggregation.MetricConsumptionRate), o.VolumeUnit+" / 100 "+o.DistanceUnit)),
		fmt.Sprintf("Cost Per Kilometre: %s", money(o.Currency, means.Value(aggregation.MetricCostPerDistance))),
		fmt.Sprintf("Average Time Between Fill-ups: %s", interval(means.MeanInterval)),
	}
}

// fixed formats v to two decimal places, rounding half away from zero.
func fixed(v fuel.Float) string {
	if !v.Valid {
		return notAvailable
	}
	return decimal.NewFromFloat(v.Value).StringFixed(2)
}

func money(currency string, v fuel.Float) string {
	if !v.Valid {
		return notAvailable
	}
	return currency + fixed(v)
}

func measure(v fuel.Float, unit string) string {
	if !v.Valid {
		return notAvailable
	}
	return fixed(v) + " " + unit
}

func interval(d *time.Duration) string {
	if d == nil {
		return notAvailable
	}
	days := decimal.NewFromInt(int64(*d)).Div(decimal.NewFromInt(int64(24 * time.Hour)))
	return days.StringFixed(1) + " days"
}

// spanLabel renders 28*24h as "28 Days" and anything else in Go duration
// syntax.
func spanLabel(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d == day:
		return "Day"
	case d > 0 && d%day == 0:
		return fmt.Sprintf("%d Days", d/day)
	default:
		return d.String()
	}
}
