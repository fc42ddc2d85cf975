// Package report composes the fuel consumption PDF: headline figures for
// three fixed windows followed by the daily charts.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fuel-lab/fueltrack/internal/charts"
	"github.com/fuel-lab/fueltrack/internal/core/aggregation"
	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// Stats computes aggregates over a table. *aggregation.Engine satisfies it.
type Stats interface {
	Aggregate(t *fuel.Table, q aggregation.Query) (*aggregation.Result, error)
}

// ChartRenderer writes chart images under dir. *charts.Renderer satisfies it.
type ChartRenderer interface {
	Render(t *fuel.Table, dir string) (charts.Charts, error)
}

// Options configures the document.
type Options struct {
	Title          string
	ReportName     string
	TrailingWindow time.Duration
	Currency       string
	DistanceUnit   string
	VolumeUnit     string
	RunID          string
}

// Writer composes the report.
type Writer struct {
	stats  Stats
	charts ChartRenderer
	opts   Options
	logger *slog.Logger
	nowFn  func() time.Time
}

// NewWriter returns a Writer. stats and renderer must not be nil.
func NewWriter(stats Stats, renderer ChartRenderer, opts Options, logger *slog.Logger) *Writer {
	if stats == nil {
		panic("report: stats must not be nil")
	}
	if renderer == nil {
		panic("report: chart renderer must not be nil")
	}
	if opts.ReportName == "" {
		opts.ReportName = "fuel_consumption_report.pdf"
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}
	if opts.DistanceUnit == "" {
		opts.DistanceUnit = "KM"
	}
	if opts.VolumeUnit == "" {
		opts.VolumeUnit = "L"
	}
	if opts.TrailingWindow <= 0 {
		opts.TrailingWindow = 28 * 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		stats:  stats,
		charts: renderer,
		opts:   opts,
		logger: logger,
		nowFn:  time.Now,
	}
}

// Compose writes <dir>/<ReportName> and returns its path. Any aggregation,
// rendering or layout error aborts the document.
func (w *Writer) Compose(t *fuel.Table, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}

	sections, err := w.Sections(t)
	if err != nil {
		return "", fmt.Errorf("compute report figures: %w", err)
	}

	rendered, err := w.charts.Render(t, dir)
	if err != nil {
		return "", fmt.Errorf("render charts: %w", err)
	}

	doc := newDocument(w.opts, w.nowFn())
	for i, s := range sections {
		if i > 0 {
			doc.line("")
		}
		doc.heading(s.Title)
		for _, l := range s.Lines {
			doc.line(l)
		}
	}

	doc.startImages()
	embedded := 0
	for _, c := range rendered {
		if _, err := os.Stat(c.Path); err != nil {
			w.logger.Warn("Chart missing, skipped", "chart", c.Name, "path", c.Path)
			continue
		}
		doc.image(c.Path)
		embedded++
	}

	path := filepath.Join(dir, w.opts.ReportName)
	if err := doc.save(path); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}

	w.logger.Info("Report composed",
		"path", path,
		"sections", len(sections),
		"charts", embedded,
		"pages", doc.pages())
	return path, nil
}
