package aggregation

import (
	"fmt"
	"time"

	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// Mode selects what Aggregate computes.
type Mode string

// Supported aggregation modes.
const (
	ModeSum     Mode = "sum"
	ModeAverage Mode = "average"
	ModeMode    Mode = "mode"
)

// Metric names a per-entry quantity in a Stats value map.
type Metric string

const (
	MetricDistance        Metric = "distance"
	MetricFuelVolume      Metric = "fuel_volume"
	MetricTotalCost       Metric = "total_cost"
	MetricPricePerVolume  Metric = "price_per_volume"
	MetricConsumptionRate Metric = "consumption_rate"
	MetricCostPerDistance Metric = "cost_per_distance"
	MetricDaysSinceLast   Metric = "days_since_last"
)

// FieldFuelType is the optional categorical field used by ModeMode.
const FieldFuelType = "fuel_type"

// SumMetrics are the raw fields totalled by ModeSum.
var SumMetrics = []Metric{MetricDistance, MetricFuelVolume, MetricTotalCost}

// AverageMetrics are the fields averaged by ModeAverage.
var AverageMetrics = []Metric{
	MetricDistance,
	MetricFuelVolume,
	MetricTotalCost,
	MetricPricePerVolume,
	MetricConsumptionRate,
	MetricCostPerDistance,
	MetricDaysSinceLast,
}

// Query describes one Aggregate call. Nil bounds default to the table's
// first and last dated entry.
type Query struct {
	Start   *time.Time
	End     *time.Time
	Mode    string
	Monthly bool
}

// MonthKey identifies a calendar year-month bucket.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Before orders month keys chronologically.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Stats is the per-metric result for one selection or one month group.
type Stats struct {
	// Count is the number of selected entries.
	Count int

	// Values holds sums (ModeSum) or means (ModeAverage).
	Values map[Metric]fuel.Float

	// MeanInterval is the mean elapsed time between consecutive selected
	// entries. Set only for non-monthly ModeAverage with more than one entry.
	MeanInterval *time.Duration

	// FuelTypes holds the modal fuel type(s) for ModeMode. Ties yield more
	// than one value.
	FuelTypes []string
}

// Value returns the metric value, or fuel.Null when not computed.
func (s Stats) Value(m Metric) fuel.Float {
	if s.Values == nil {
		return fuel.Null
	}
	return s.Values[m]
}

// MonthStats pairs a month with its Stats.
type MonthStats struct {
	Month MonthKey
	Stats
}

// Result is the output of Aggregate. Exactly one of Stats (non-monthly) or
// Months (monthly) is populated.
type Result struct {
	Mode    Mode
	Window  Window
	Monthly bool

	Stats
	Months []MonthStats
}
