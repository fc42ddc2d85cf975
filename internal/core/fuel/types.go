package fuel

import (
	"math"
	"time"
)

// Float is a nullable numeric value.
// Parse failures and undefined ratios (division by zero) are carried as
// Valid=false rather than as NaN so every consumer has to decide explicitly
// how a missing value behaves: means skip it, sums count it as zero.
type Float struct {
	Value float64
	Valid bool
}

// Null is the missing numeric value.
var Null = Float{}

// FloatOf wraps v, normalising NaN and ±Inf to Null.
func FloatOf(v float64) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null
	}
	return Float{Value: v, Valid: true}
}


// Date is a nullable timestamp. Rows whose date could not be parsed keep
// Valid=false and never match a window.
type Date struct {
	Time  time.Time
	Valid bool
}

// DateOf wraps t as a valid date.
func DateOf(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

// Entry is one fuel-purchase event plus its derived per-entry metrics.
type Entry struct {
	Row int // 1-based source line, header included

	Date       Date
	Distance   Float
	FuelVolume Float
	TotalCost  Float
	FuelType   string // empty when the column is absent or the cell is blank

	PricePerVolume  Float // total_cost / fuel_volume
	ConsumptionRate Float // fuel_volume / distance * 100
	CostPerDistance Float // total_cost / distance
}

// Derive computes the three derived fields from the raw ones.
func (e *Entry) Derive() {
	e.PricePerVolume = ratio(e.TotalCost, e.FuelVolume, 1)
	e.ConsumptionRate = ratio(e.FuelVolume, e.Distance, 100)
	e.CostPerDistance = ratio(e.TotalCost, e.Distance, 1)
}

func ratio(num, den Float, scale float64) Float {
	if !num.Valid || !den.Valid {
		return Null
	}
	return FloatOf(num.Value / den.Value * scale)
}
