// Package charts renders the daily fuel log charts as PNG images and as a
// terminal preview.
package charts

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// Chart names.
const (
	DailyDistance     = "daily_distance"
	RollingMoneySpent = "rolling_money_spent"
	FuelEconomy       = "fuel_economy"
)

// Options configures the rendered images.
type Options struct {
	Width        int
	Height       int
	FirstGapDays int
	Currency     string
	DistanceUnit string
	VolumeUnit   string
}

// Chart is one rendered image.
type Chart struct {
	Name  string
	Title string
	Path  string
}

// Charts is the ordered output of Render.
type Charts []Chart

// Paths maps chart name to file path.
func (c Charts) Paths() map[string]string {
	m := make(map[string]string, len(c))
	for _, ch := range c {
		m[ch.Name] = ch.Path
	}
	return m
}

type definition struct {
	name  string
	title string
	yAxis func(Options) string
	color drawing.Color
	pick  func(sample) fuel.Float
}

var definitions = []definition{
	{
		name:  DailyDistance,
		title: "Daily Distance (Normalised)",
		yAxis: func(o Options) string { return fmt.Sprintf("Distance (%s/day)", o.DistanceUnit) },
		color: chart.ColorBlue,
		pick:  func(s sample) fuel.Float { return s.distance },
	},
	{
		name:  RollingMoneySpent,
		title: "Daily Fuel Cost (Normalised)",
		yAxis: func(o Options) string { return fmt.Sprintf("Cost per Day (%s)", o.Currency) },
		color: chart.ColorGreen,
		pick:  func(s sample) fuel.Float { return s.cost },
	},
	{
		name:  FuelEconomy,
		title: "Daily Kilometerage (L/100) (Normalised)",
		yAxis: func(o Options) string {
			return fmt.Sprintf("Fuel Economy (%s/100%s)", o.VolumeUnit, o.DistanceUnit)
		},
		color: chart.ColorRed,
		pick:  func(s sample) fuel.Float { return s.consumption },
	},
}

// Renderer draws the fuel log charts.
type Renderer struct {
	opts   Options
	logger *slog.Logger
	nowFn  func() time.Time
}

// NewRenderer returns a Renderer. Zero-valued options take the defaults.
func NewRenderer(opts Options, logger *slog.Logger) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}
	if opts.FirstGapDays <= 0 {
		opts.FirstGapDays = 7
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
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		opts:   opts,
		logger: logger,
		nowFn:  time.Now,
	}
}

// Render writes the three charts as <dir>/<name>.png, creating dir if
// needed. The first write error aborts rendering.
func (r *Renderer) Render(t *fuel.Table, dir string) (Charts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart directory %s: %w", dir, err)
	}

	var samples []sample
	if t != nil {
		samples = normalise(t.Dated(), r.opts.FirstGapDays)
	}

	out := make(Charts, 0, len(definitions))
	for _, def := range definitions {
		points := resample(samples, def.pick)
		path := filepath.Join(dir, def.name+".png")
		if err := r.draw(def, points, path); err != nil {
			return nil, fmt.Errorf("render %s: %w", def.name, err)
		}
		out = append(out, Chart{Name: def.name, Title: def.title, Path: path})
		r.logger.Debug("Rendered chart", "chart", def.name, "path", path, "points", len(points))
	}
	return out, nil
}

func (r *Renderer) draw(def definition, points []point, path string) error {
	title := def.title
	xs := make([]time.Time, 0, len(points)+1)
	ys := make([]float64, 0, len(points)+1)
	for _, p := range points {
		xs = append(xs, p.Day)
		ys = append(ys, p.Value)
	}

	// go-chart needs a non-zero x range.
	switch len(points) {
	case 0:
		today := truncateToDay(r.nowFn())
		xs = append(xs, today, today.AddDate(0, 0, 1))
		ys = append(ys, 0, 0)
		title += " (no data)"
	case 1:
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title:      title,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  def.yAxis(r.opts),
			Range: yRange(ys),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    def.title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: def.color,
					StrokeWidth: 2,
				},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// yRange anchors the axis at zero and pads the top; a flat series still
// gets a non-zero span.
func yRange(ys []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, y := range ys {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	hi *= 1.1
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
