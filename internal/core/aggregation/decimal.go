package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// accumulator folds nullable values using exact decimal arithmetic.
// Missing values are skipped: they add nothing to the total and do not
// count towards the mean's denominator.
type accumulator struct {
	sum decimal.Decimal
	n   int64
}

func (a *accumulator) add(v fuel.Float) {
	if !v.Valid {
		return
	}
	a.sum = a.sum.Add(decimal.NewFromFloat(v.Value))
	a.n++
}

// total is always defined; an empty or all-missing input totals zero.
func (a *accumulator) total() fuel.Float {
	return fuel.FloatOf(a.sum.InexactFloat64())
}

// mean is missing when no value was added.
func (a *accumulator) mean() fuel.Float {
	if a.n == 0 {
		return fuel.Null
	}
	return fuel.FloatOf(a.sum.Div(decimal.NewFromInt(a.n)).InexactFloat64())
}
