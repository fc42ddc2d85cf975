package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/fuel-lab/fueltrack/internal/charts"
	"github.com/fuel-lab/fueltrack/internal/core/aggregation"
	corecfg "github.com/fuel-lab/fueltrack/internal/core/config"
	"github.com/fuel-lab/fueltrack/internal/ingestion"
	"github.com/fuel-lab/fueltrack/internal/report"
	"github.com/fuel-lab/fueltrack/internal/schema"
)

const defaultConfigFile = "fueltrack.yaml"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logFailure(slog.Default(), err)
		os.Exit(1)
	}
}

// detailer is implemented by errors carrying structured fields.
type detailer interface {
	Details() map[string]interface{}
}

func logFailure(logger *slog.Logger, err error) {
	attrs := []any{"error", err}
	var d detailer
	if errors.As(err, &d) {
		attrs = append(attrs, "details", d.Details())
	}
	logger.Error("fueltrack failed", attrs...)
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fueltrack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: fueltrack [flags] [csv_path]")
		fmt.Fprintln(fs.Output(), "Analyse fuel CSV data, generate charts and a PDF report.")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Path to configuration file (default "+defaultConfigFile+" if present)")
	outDir := fs.String("out", "", "Output directory for charts and report")
	dateFormat := fs.String("date-format", "", "Date format override, strftime (%d/%m/%Y) or Go layout")
	chartsOnly := fs.Bool("charts-only", false, "Render charts without composing the report")
	preview := fs.Bool("preview", false, "Print a terminal chart of daily fuel economy")
	statsMode := fs.String("stats", "", "Print sum, average or mode statistics over the whole log instead of writing outputs")
	monthly := fs.Bool("monthly", false, "Group -stats output by calendar month")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one csv path, got %d arguments", fs.NArg())
	}

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	overrides := map[string]interface{}{}
	if fs.NArg() == 1 {
		overrides["input.path"] = fs.Arg(0)
	}
	if *outDir != "" {
		overrides["output.dir"] = *outDir
	}
	if *dateFormat != "" {
		overrides["input.date_format"] = *dateFormat
	}
	path := *configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	cfg, err := corecfg.Load(path, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runID := uuid.NewString()
	logger = newLogger(stderr, cfg.Log).With("run_id", runID)
	slog.SetDefault(logger)
	logger.Debug("Loaded config", "config", cfg)

	trailing, err := aggregation.ParseSpan(cfg.Report.TrailingWindow)
	if err != nil {
		return err
	}

	// 2. Load the fuel log
	spec := schema.Default()
	if cfg.Input.Schema != "" {
		if spec, err = schema.LoadFile(cfg.Input.Schema); err != nil {
			return err
		}
	}
	loader := ingestion.NewService(spec, ingestion.Options{
		DateFormat: cfg.Input.DateFormat,
		DayFirst:   cfg.Input.DayFirst,
	}, logger)
	table, err := loader.Load(cfg.Input.Path)
	if err != nil {
		return err
	}

	// 3. Charts
	renderer := charts.NewRenderer(charts.Options{
		Width:        cfg.Charts.Width,
		Height:       cfg.Charts.Height,
		FirstGapDays: cfg.Charts.FirstGapDays,
		Currency:     cfg.Report.Currency,
		DistanceUnit: cfg.Report.DistanceUnit,
		VolumeUnit:   cfg.Report.VolumeUnit,
	}, logger)

	if *preview {
		fmt.Fprintln(stdout, renderer.Preview(table, 60, 10))
	}

	if *statsMode != "" {
		res, err := aggregation.NewEngine(logger).Aggregate(table, aggregation.Query{
			Mode:    *statsMode,
			Monthly: *monthly,
		})
		if err != nil {
			return err
		}
		printStats(stdout, res)
		return nil
	}

	if *chartsOnly {
		rendered, err := renderer.Render(table, cfg.Output.Dir)
		if err != nil {
			return err
		}
		for _, c := range rendered {
			fmt.Fprintf(stdout, "Chart saved to %s\n", c.Path)
		}
		return nil
	}

	// 4. Report
	writer := report.NewWriter(aggregation.NewEngine(logger), renderer, report.Options{
		Title:          cfg.Report.Title,
		ReportName:     cfg.Output.ReportName,
		TrailingWindow: trailing,
		Currency:       cfg.Report.Currency,
		DistanceUnit:   cfg.Report.DistanceUnit,
		VolumeUnit:     cfg.Report.VolumeUnit,
		RunID:          runID,
	}, logger)

	pdf, err := writer.Compose(table, cfg.Output.Dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Report saved to %s\n", pdf)
	return nil
}

func newLogger(w io.Writer, cfg corecfg.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
