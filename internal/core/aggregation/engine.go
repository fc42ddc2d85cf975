package aggregation

import (
	"log/slog"
	"sort"
	"time"

	coreerrors "github.com/fuel-lab/fueltrack/internal/core/errors"
	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// Engine computes date-bounded statistics over a fuel table.
// It holds no state between calls; every Result is built fresh.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an engine. A nil logger falls back to slog.Default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Aggregate selects the entries dated within [q.Start, q.End] (both
// inclusive) and reduces them according to q.Mode, either as a whole or
// per calendar month. An empty selection is not an error: sums are zero
// and means are missing.
func (e *Engine) Aggregate(t *fuel.Table, q Query) (*Result, error) {
	mode, err := ParseMode(q.Mode)
	if err != nil {
		return nil, err
	}
	if mode == ModeMode && (t == nil || !t.HasFuelType) {
		return nil, &coreerrors.FieldUnavailableError{Field: FieldFuelType}
	}

	window := Resolve(t, q.Start, q.End)
	rows := selectRows(t, window)
	red := reducers[mode]

	result := &Result{Mode: mode, Window: window, Monthly: q.Monthly}
	if q.Monthly {
		for _, g := range groupByMonth(rows) {
			result.Months = append(result.Months, MonthStats{Month: g.key, Stats: red.reduce(g.rows)})
		}
	} else {
		result.Stats = red.reduce(rows)
		if mode == ModeAverage {
			result.MeanInterval = meanInterval(rows)
		}
	}

	e.logger.Debug("aggregated fuel log",
		"mode", mode,
		"monthly", q.Monthly,
		"window_start", window.Start,
		"window_end", window.End,
		"selected", len(rows),
		"groups", len(result.Months),
	)
	return result, nil
}

// Resolve fills missing bounds from the table's first and last dated
// entry. Without dated entries a missing bound yields an empty window.
func Resolve(t *fuel.Table, start, end *time.Time) Window {
	first, last, ok := t.Bounds()
	if (start == nil || end == nil) && !ok {
		return Window{Empty: true}
	}

	w := Window{Start: first, End: last}
	if start != nil {
		w.Start = *start
	}
	if end != nil {
		w.End = *end
	}
	return w
}

func selectRows(t *fuel.Table, w Window) []row {
	dated := t.Dated()
	rows := make([]row, 0, len(dated))
	var prev time.Time
	for i := range dated {
		e := &dated[i]
		if !w.Contains(e.Date.Time) {
			continue
		}
		gap := 1.0
		if len(rows) > 0 {
			gap = wholeDays(elapsed(prev, e.Date.Time))
		}
		rows = append(rows, row{entry: e, gapDays: gap})
		prev = e.Date.Time
	}
	return rows
}

// meanInterval is the mean wall-clock spacing between consecutive selected
// entries, nil when fewer than two entries were selected.
func meanInterval(rows []row) *time.Duration {
	if len(rows) < 2 {
		return nil
	}
	span := elapsed(rows[0].entry.Date.Time, rows[len(rows)-1].entry.Date.Time)
	mean := span / time.Duration(len(rows)-1)
	return &mean
}

type monthGroup struct {
	key  MonthKey
	rows []row
}

func groupByMonth(rows []row) []monthGroup {
	index := make(map[MonthKey]int)
	var groups []monthGroup
	for _, r := range rows {
		key := MonthOf(r.entry.Date.Time)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, monthGroup{key: key})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].key.Before(groups[j].key) })
	return groups
}
