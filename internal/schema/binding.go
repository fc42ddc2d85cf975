package schema

import (
	"fmt"
	"strings"

	coreerrors "github.com/fuel-lab/fueltrack/internal/core/errors"
)

const utf8BOM = "\uFEFF"

// Binding maps logical fields to column positions in one source header.
type Binding struct {
	index map[string]int
}

// Index returns the column position of field.
func (b Binding) Index(field string) (int, bool) {
	i, ok := b.index[field]
	return i, ok
}

// Has reports whether the source carries field.
func (b Binding) Has(field string) bool {
	_, ok := b.index[field]
	return ok
}

// Bind matches the header row against the spec. Column names are compared
// exactly after trimming whitespace and a leading byte-order mark. Every
// missing required column is reported in a single SchemaError.
func (s *Spec) Bind(source string, header []string) (Binding, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}

	b := Binding{index: make(map[string]int, len(s.Fields))}
	var missing []string
	for _, k := range known {
		f, ok := s.Fields[k.name]
		if !ok || f == nil {
			continue
		}
		i, found := positions[f.Column]
		switch {
		case found:
			b.index[k.name] = i
		case f.Required:
			missing = append(missing, f.Column)
		}
	}

	if len(missing) > 0 {
		return Binding{}, &coreerrors.SchemaError{
			Source:  source,
			Missing: missing,
			Hint:    fmt.Sprintf("expected columns: %s", strings.Join(s.Columns(), ", ")),
		}
	}
	return b, nil
}
