package charts

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/fuel-lab/fueltrack/internal/core/fuel"
)

// Preview plots the daily fuel economy series as text for the terminal.
func (r *Renderer) Preview(t *fuel.Table, width, height int) string {
	if t == nil {
		return "No data available"
	}
	points := resample(normalise(t.Dated(), r.opts.FirstGapDays), func(s sample) fuel.Float {
		return s.consumption
	})
	if len(points) == 0 {
		return "No data available"
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = p.Value
	}
	caption := fmt.Sprintf("Fuel Economy (%s/100%s), %s to %s",
		r.opts.VolumeUnit, r.opts.DistanceUnit,
		points[0].Day.Format("2006-01-02"), points[len(points)-1].Day.Format("2006-01-02"))

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
