package aggregation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

func TestAccumulator(t *testing.T) {
	tests := []struct {
		name      string
		values    []fuel.Float
		wantTotal fuel.Float
		wantMean  fuel.Float
	}{
		{
			name:      "empty",
			values:    nil,
			wantTotal: fuel.FloatOf(0),
			wantMean:  fuel.Null,
		},
		{
			name:      "all missing",
			values:    []fuel.Float{fuel.Null, fuel.Null},
			wantTotal: fuel.FloatOf(0),
			wantMean:  fuel.Null,
		},
		{
			name:      "missing skipped from denominator",
			values:    []fuel.Float{fuel.FloatOf(10), fuel.Null, fuel.FloatOf(20)},
			wantTotal: fuel.FloatOf(30),
			wantMean:  fuel.FloatOf(15),
		},
		{
			name:      "exact decimal addition",
			values:    []fuel.Float{fuel.FloatOf(0.1), fuel.FloatOf(0.2)},
			wantTotal: fuel.FloatOf(0.3),
			wantMean:  fuel.FloatOf(0.15),
		},
		{
			name:      "negative values",
			values:    []fuel.Float{fuel.FloatOf(-4.5), fuel.FloatOf(1.5)},
			wantTotal: fuel.FloatOf(-3),
			wantMean:  fuel.FloatOf(-1.5),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var acc accumulator
			for _, v := range tc.values {
				acc.add(v)
			}
			require.Equal(t, tc.wantTotal, acc.total())
			require.Equal(t, tc.wantMean, acc.mean())
		})
	}
}
