package aggregation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

func rowsOf(entries ...fuel.Entry) []row {
	rows := make([]row, len(entries))
	for i := range entries {
		entries[i].Derive()
		rows[i] = row{entry: &entries[i], gapDays: 1}
	}
	return rows
}

func TestReducers_Registered(t *testing.T) {
	for _, m := range Modes {
		_, ok := reducers[m]
		require.True(t, ok, m)
	}
	require.Len(t, reducers, len(Modes))
}

func TestModeReducer(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  []string
	}{
		{name: "single winner", types: []string{"E10", "U91", "E10"}, want: []string{"E10"}},
		{name: "three-way tie sorted", types: []string{"U98", "E10", "U91"}, want: []string{"E10", "U91", "U98"}},
		{name: "blanks skipped", types: []string{"", "", "U91"}, want: []string{"U91"}},
		{name: "only blanks", types: []string{"", ""}, want: []string{}},
		{name: "case sensitive", types: []string{"e10", "E10", "E10"}, want: []string{"E10"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries := make([]fuel.Entry, len(tc.types))
			for i, ft := range tc.types {
				entries[i] = fuel.Entry{FuelType: ft}
			}
			stats := modeReducer{}.reduce(rowsOf(entries...))
			require.Equal(t, tc.want, stats.FuelTypes)
			require.Equal(t, len(tc.types), stats.Count)
		})
	}
}

func TestSumAndAverageReducers_MetricSets(t *testing.T) {
	rows := rowsOf(
		fuel.Entry{Distance: fuel.FloatOf(100), FuelVolume: fuel.FloatOf(8), TotalCost: fuel.FloatOf(16)},
	)

	sums := sumReducer{}.reduce(rows)
	require.Len(t, sums.Values, len(SumMetrics))
	require.False(t, sums.Value(MetricConsumptionRate).Valid, "derived fields are not summed")

	avg := averageReducer{}.reduce(rows)
	require.Len(t, avg.Values, len(AverageMetrics))
	require.Equal(t, fuel.FloatOf(8), avg.Value(MetricConsumptionRate))
	require.Equal(t, fuel.FloatOf(1), avg.Value(MetricDaysSinceLast))
}
