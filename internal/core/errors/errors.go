// Package errors defines the fatal error taxonomy shared by the loader,
// the statistics engine and the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks. The typed errors below match them.
var (
	ErrMissingInput     = stderrors.New("input not found")
	ErrSchema           = stderrors.New("schema mismatch")
	ErrInvalidMode      = stderrors.New("invalid aggregation mode")
	ErrFieldUnavailable = stderrors.New("field unavailable")
)

// MissingInputError is returned when the input source does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input not found: %s", e.Path)
}

func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

// SchemaError lists every required column absent from the source.
type SchemaError struct {
	Source  string
	Missing []string
	Hint    string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("missing required column(s) [%s]", strings.Join(e.Missing, ", "))
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// Details returns the structured fields for callers rendering the error.
func (e *SchemaError) Details() map[string]interface{} {
	return map[string]interface{}{"missing": e.Missing}
}

// InvalidAggregationModeError is returned for a mode outside sum/average/mode.
type InvalidAggregationModeError struct {
	Mode  string
	Valid []string
}

func (e *InvalidAggregationModeError) Error() string {
	return fmt.Sprintf("invalid aggregation mode %q (expected one of: %s)", e.Mode, strings.Join(e.Valid, ", "))
}

func (e *InvalidAggregationModeError) Is(target error) bool { return target == ErrInvalidMode }

// FieldUnavailableError is returned when a query needs an optional field
// the table was loaded without.
type FieldUnavailableError struct {
	Field string
}

func (e *FieldUnavailableError) Error() string {
	return fmt.Sprintf("field %q unavailable in this table", e.Field)
}

func (e *FieldUnavailableError) Is(target error) bool { return target == ErrFieldUnavailable }
