// Package schema describes the tabular layout of a fuel log: which column
// carries each logical field, its type, and whether it must be present.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Logical field names.
const (
	FieldDate       = "date"
	FieldDistance   = "distance"
	FieldFuelVolume = "fuel_volume"
	FieldTotalCost  = "total_cost"
	FieldFuelType   = "fuel_type"
)

// Kind is the value type of a column.
type Kind string

const (
	KindDate   Kind = "date"
	KindNumber Kind = "number"
	KindString Kind = "string"
)

// known lists every logical field in canonical order with its kind and
// whether a schema must mark it required.
var known = []struct {
	name     string
	kind     Kind
	required bool
}{
	{FieldDate, KindDate, true},
	{FieldDistance, KindNumber, true},
	{FieldFuelVolume, KindNumber, true},
	{FieldTotalCost, KindNumber, true},
	{FieldFuelType, KindString, false},
}

//go:embed default.yaml
var defaultSpec []byte

// Spec is a parsed column schema.
type Spec struct {
	Name        string            `yaml:"name"`
	Version     int               `yaml:"version"`
	Description string            `yaml:"description,omitempty"`
	Fields      map[string]*Field `yaml:"fields"`
}

// Field maps one logical field to a source column.
//
// Fields support two declaration styles:
//
//	Shorthand (scalar): distance: number!
//	Long form (mapping): fuel_volume:
//	                        column: PetrolFilled(Litres)
//	                        type: number!
//
// Append "!" to the type to mark a field as required. In shorthand the
// column name equals the field name.
type Field struct {
	Column   string `yaml:"column"`
	Type     Kind   `yaml:"type"`
	Required bool   `yaml:"required,omitempty"`
}

// UnmarshalYAML accepts both the shorthand and the long form.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return f.parseTypeString(value.Value)
	}

	type fieldAlias Field
	var alias fieldAlias
	if err := value.Decode(&alias); err != nil {
		return err
	}
	*f = Field(alias)

	if f.Type == "" {
		return fmt.Errorf("field missing 'type'")
	}
	return f.parseTypeString(string(f.Type))
}

func (f *Field) parseTypeString(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "!") {
		f.Required = true
		s = strings.TrimSuffix(s, "!")
	}

	switch Kind(s) {
	case KindDate, KindNumber, KindString:
		f.Type = Kind(s)
	default:
		return fmt.Errorf("unsupported type %q (must be: date, number, string)", s)
	}
	return nil
}

// Validate checks the spec declares every required logical field with the
// expected type, and nothing else. All problems are reported together as a
// *MultiValidationError. Empty column names default to the field name.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name is required")
	}
	if s.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}

	var errs []*ValidationError
	expected := make(map[string]bool, len(known))
	for _, k := range known {
		expected[k.name] = true
		f, ok := s.Fields[k.name]
		if !ok || f == nil {
			if k.required {
				errs = append(errs, newRequiredFieldError(s, k.name))
			}
			continue
		}
		if f.Type != k.kind {
			errs = append(errs, newTypeMismatchError(s, k.name, k.kind, f.Type))
		} else if k.required && !f.Required {
			errs = append(errs, newOptionalRequiredError(s, k.name, k.kind))
		}
		if strings.TrimSpace(f.Column) == "" {
			f.Column = k.name
		}
	}

	var unknown []string
	for name := range s.Fields {
		if !expected[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		errs = append(errs, newUnknownFieldsError(s, unknown))
	}

	if len(errs) > 0 {
		return &MultiValidationError{Errors: errs}
	}
	return nil
}

// Columns returns the declared source columns in canonical field order.
func (s *Spec) Columns() []string {
	var cols []string
	for _, k := range known {
		if f, ok := s.Fields[k.name]; ok && f != nil {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// Parse decodes and validates a YAML schema definition.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid YAML schema: %w", err)
	}
	return &spec, nil
}

// LoadFile reads a schema from path.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file %s: %w", path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return spec, nil
}

// Default returns the built-in fuel log schema.
func Default() *Spec {
	spec, err := Parse(defaultSpec)
	if err != nil {
		panic(fmt.Sprintf("built-in schema is invalid: %v", err))
	}
	return spec
}
