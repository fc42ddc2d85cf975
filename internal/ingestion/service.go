// Package ingestion loads a fuel log from a delimited file into a sorted
// fuel.Table.
package ingestion

import (
	"log/slog"

	"github.com/fuel-lab/fueltrack/internal/schema"
)

// Options controls how cells are coerced.
type Options struct {
	// DateFormat overrides lenient date detection. A value containing '%' is
	// a strftime pattern (%d/%m/%Y), anything else a Go reference layout.
	DateFormat string

	// DayFirst resolves ambiguous numeric dates such as 03/04/2024 as
	// 3 April. Ignored when DateFormat is set.
	DayFirst bool
}

type Service struct {
	spec   *schema.Spec
	opts   Options
	logger *slog.Logger
}

// NewService returns a loader bound to spec. A nil spec selects the
// built-in fuel log schema.
func NewService(spec *schema.Spec, opts Options, logger *slog.Logger) *Service {
	if spec == nil {
		spec = schema.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{spec: spec, opts: opts, logger: logger}
}
