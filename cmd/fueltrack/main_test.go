package main

import (
	"bytes"
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	coreerrors "github.com/fuel-lab/fueltrack/internal/core/errors"
)

const sampleCSV = `Date,Distance,PetrolFilled(Litres),TotalCost,PetrolType
01/01/2024,100,8,16,E10
15/01/2024,200,16,32,E10
03/02/2024,150,11,23.10,U91
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_ComposesReport(t *testing.T) {
	csvPath := writeCSV(t, sampleCSV)
	out := filepath.Join(t.TempDir(), "outputs")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-out", out, csvPath}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	pdf := filepath.Join(out, "fuel_consumption_report.pdf")
	require.Equal(t, "Report saved to "+pdf+"\n", stdout.String())
	require.FileExists(t, pdf)
	for _, name := range []string{"daily_distance.png", "rolling_money_spent.png", "fuel_economy.png"} {
		require.FileExists(t, filepath.Join(out, name))
	}
	require.Contains(t, stderr.String(), "run_id=")
}

func TestRun_ChartsOnlyWithPreview(t *testing.T) {
	csvPath := writeCSV(t, sampleCSV)
	out := t.TempDir()

	var stdout, stderr bytes.Buffer
	err := run([]string{"-out", out, "-charts-only", "-preview", csvPath}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	require.Contains(t, stdout.String(), "Fuel Economy (L/100KM)")
	require.Contains(t, stdout.String(), "Chart saved to "+filepath.Join(out, "fuel_economy.png"))
	require.NoFileExists(t, filepath.Join(out, "fuel_consumption_report.pdf"))
}

func TestRun_Stats(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "sum",
			args: []string{"-stats", "sum"},
			want: []string{
				"sum from 2024-01-01 to 2024-02-03",
				"all (3 entries)",
				"  distance: 450.00",
				"  total_cost: 71.10",
			},
		},
		{
			name: "average",
			args: []string{"-stats", "Average"},
			want: []string{
				"  fuel_volume: 11.67",
				"  consumption_rate: 7.78",
				"  mean_interval: 396h0m0s",
			},
		},
		{
			name: "monthly sum",
			args: []string{"-stats", "sum", "-monthly"},
			want: []string{
				"2024-01 (2 entries)",
				"  total_cost: 48.00",
				"2024-02 (1 entries)",
				"  total_cost: 23.10",
			},
		},
		{
			name: "mode",
			args: []string{"-stats", "mode"},
			want: []string{"  fuel_type: E10"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := t.TempDir()
			var stdout, stderr bytes.Buffer
			args := append([]string{"-out", out}, tc.args...)
			err := run(append(args, writeCSV(t, sampleCSV)), &stdout, &stderr)
			require.NoError(t, err, stderr.String())
			for _, line := range tc.want {
				require.Contains(t, stdout.String(), line+"\n")
			}
			require.NoFileExists(t, filepath.Join(out, "fuel_consumption_report.pdf"))
		})
	}
}

func TestLogFailure_IncludesDetails(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logFailure(logger, &coreerrors.SchemaError{Source: "data.csv", Missing: []string{"TotalCost"}})
	require.Contains(t, buf.String(), "missing:[TotalCost]")

	buf.Reset()
	logFailure(logger, errors.New("disk full"))
	require.Contains(t, buf.String(), "disk full")
	require.NotContains(t, buf.String(), "details=")
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"-out", t.TempDir(), filepath.Join(t.TempDir(), "absent.csv")}, &stdout, &stderr)
		require.True(t, errors.Is(err, coreerrors.ErrMissingInput))
		require.Empty(t, stdout.String())
	})

	t.Run("schema mismatch", func(t *testing.T) {
		csvPath := writeCSV(t, "Date,Distance,PetrolFilled(Litres)\n01/01/2024,100,8\n")
		var stdout, stderr bytes.Buffer
		err := run([]string{"-out", t.TempDir(), csvPath}, &stdout, &stderr)
		require.True(t, errors.Is(err, coreerrors.ErrSchema))
	})

	t.Run("invalid aggregation mode", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"-out", t.TempDir(), "-stats", "median", writeCSV(t, sampleCSV)}, &stdout, &stderr)
		require.True(t, errors.Is(err, coreerrors.ErrInvalidMode))
		require.Empty(t, stdout.String())
	})

	t.Run("too many arguments", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"a.csv", "b.csv"}, &stdout, &stderr)
		require.ErrorContains(t, err, "at most one csv path")
	})

	t.Run("missing config file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, &stdout, &stderr)
		require.ErrorContains(t, err, "load config")
	})

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"-h"}, &stdout, &stderr)
		require.True(t, errors.Is(err, flag.ErrHelp))
		require.Contains(t, stderr.String(), "Usage: fueltrack")
	})
}
