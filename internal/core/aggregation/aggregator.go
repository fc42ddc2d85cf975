package aggregation

import (
	"sort"
	"strings"

	coreerrors "github.com/fuel-lab/fueltrack/internal/core/errors"
	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// row is one selected entry plus the whole days elapsed since the
// previously selected entry (1 for the first).
type row struct {
	entry   *fuel.Entry
	gapDays float64
}

// reducer computes the Stats of a selection for one aggregation mode.
// To add a mode: implement reducer and register it in reducers.
type reducer interface {
	reduce(rows []row) Stats
}

var reducers = map[Mode]reducer{
	ModeSum:     sumReducer{},
	ModeAverage: averageReducer{},
	ModeMode:    modeReducer{},
}

// Modes lists the supported modes in display order.
var Modes = []Mode{ModeSum, ModeAverage, ModeMode}

var metricOf = map[Metric]func(r row) fuel.Float{
	MetricDistance:        func(r row) fuel.Float { return r.entry.Distance },
	MetricFuelVolume:      func(r row) fuel.Float { return r.entry.FuelVolume },
	MetricTotalCost:       func(r row) fuel.Float { return r.entry.TotalCost },
	MetricPricePerVolume:  func(r row) fuel.Float { return r.entry.PricePerVolume },
	MetricConsumptionRate: func(r row) fuel.Float { return r.entry.ConsumptionRate },
	MetricCostPerDistance: func(r row) fuel.Float { return r.entry.CostPerDistance },
	MetricDaysSinceLast:   func(r row) fuel.Float { return fuel.FloatOf(r.gapDays) },
}

// ParseMode resolves a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := reducers[mode]; !ok {
		valid := make([]string, len(Modes))
		for i, m := range Modes {
			valid[i] = string(m)
		}
		return "", &coreerrors.InvalidAggregationModeError{Mode: s, Valid: valid}
	}
	return mode, nil
}

// sumReducer totals the raw fields. Missing values count as zero.
type sumReducer struct{}

func (sumReducer) reduce(rows []row) Stats {
	return Stats{Count: len(rows), Values: fold(rows, SumMetrics, (*accumulator).total)}
}

// averageReducer takes the mean of each field, skipping missing values.
type averageReducer struct{}

func (averageReducer) reduce(rows []row) Stats {
	return Stats{Count: len(rows), Values: fold(rows, AverageMetrics, (*accumulator).mean)}
}

func fold(rows []row, metrics []Metric, finish func(*accumulator) fuel.Float) map[Metric]fuel.Float {
	values := make(map[Metric]fuel.Float, len(metrics))
	for _, m := range metrics {
		get := metricOf[m]
		var acc accumulator
		for _, r := range rows {
			acc.add(get(r))
		}
		values[m] = finish(&acc)
	}
	return values
}

// modeReducer finds the most frequent fuel type(s). Blank cells are
// skipped. Ties return every tied value, sorted.
type modeReducer struct{}

func (modeReducer) reduce(rows []row) Stats {
	counts := make(map[string]int)
	best := 0
	for _, r := range rows {
		ft := r.entry.FuelType
		if ft == "" {
			continue
		}
		counts[ft]++
		if counts[ft] > best {
			best = counts[ft]
		}
	}

	modes := []string{}
	for ft, n := range counts {
		if n == best {
			modes = append(modes, ft)
		}
	}
	sort.Strings(modes)
	return Stats{Count: len(rows), FuelTypes: modes}
}
