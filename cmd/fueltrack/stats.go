package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fuel-lab/fueltrack/internal/core/aggregation"
	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

func printStats(w io.Writer, res *aggregation.Result) {
	if res.Window.Empty {
		fmt.Fprintf(w, "%s: no dated entries\n", res.Mode)
		return
	}
	fmt.Fprintf(w, "%s from %s to %s\n", res.Mode,
		res.Window.Start.Format("2006-01-02"), res.Window.End.Format("2006-01-02"))

	if !res.Monthly {
		printGroup(w, "all", res.Mode, res.Stats)
		return
	}
	for _, m := range res.Months {
		printGroup(w, m.Month.String(), res.Mode, m.Stats)
	}
}

func printGroup(w io.Writer, label string, mode aggregation.Mode, s aggregation.Stats) {
	fmt.Fprintf(w, "%s (%d entries)\n", label, s.Count)
	switch mode {
	case aggregation.ModeSum:
		printMetrics(w, s, aggregation.SumMetrics)
	case aggregation.ModeAverage:
		printMetrics(w, s, aggregation.AverageMetrics)
		if s.MeanInterval != nil {
			fmt.Fprintf(w, "  mean_interval: %s\n", *s.MeanInterval)
		}
	case aggregation.ModeMode:
		types := "n/a"
		if len(s.FuelTypes) > 0 {
			types = strings.Join(s.FuelTypes, ", ")
		}
		fmt.Fprintf(w, "  %s: %s\n", aggregation.FieldFuelType, types)
	}
}

func printMetrics(w io.Writer, s aggregation.Stats, metrics []aggregation.Metric) {
	for _, m := range metrics {
		fmt.Fprintf(w, "  %s: %s\n", m, formatValue(s.Value(m)))
	}
}

func formatValue(v fuel.Float) string {
	if !v.Valid {
		return "n/a"
	}
	return decimal.NewFromFloat(v.Value).StringFixed(2)
}
