package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "missing input",
			err:      &MissingInputError{Path: "data.csv"},
			sentinel: ErrMissingInput,
			contains: "data.csv",
		},
		{
			name:     "schema",
			err:      &SchemaError{Source: "data.csv", Missing: []string{"TotalCost", "Date"}},
			sentinel: ErrSchema,
			contains: "[TotalCost, Date]",
		},
		{
			name:     "invalid mode",
			err:      &InvalidAggregationModeError{Mode: "median", Valid: []string{"sum", "average", "mode"}},
			sentinel: ErrInvalidMode,
			contains: `"median"`,
		},
		{
			name:     "field unavailable",
			err:      &FieldUnavailableError{Field: "fuel_type"},
			sentinel: ErrFieldUnavailable,
			contains: `"fuel_type" unavailable`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("run: %w", tc.err)
			require.True(t, stderrors.Is(wrapped, tc.sentinel))
			require.Contains(t, wrapped.Error(), tc.contains)
		})
	}
}

func TestSchemaError_AsAndDetails(t *testing.T) {
	err := fmt.Errorf("load: %w", &SchemaError{Missing: []string{"TotalCost"}, Hint: "see data.example.csv"})

	var schemaErr *SchemaError
	require.True(t, stderrors.As(err, &schemaErr))
	require.Equal(t, []string{"TotalCost"}, schemaErr.Details()["missing"])
	require.Contains(t, err.Error(), "see data.example.csv")
	require.False(t, stderrors.Is(err, ErrMissingInput))
}
