package schema

import (
	"fmt"
	"strings"
)

// ValidationError is one problem found in a schema definition.
type ValidationError struct {
	Schema        string
	Version       int
	Message       string
	Field         string
	ExpectedType  Kind
	ActualType    Kind
	UnknownFields []string
}

func (e *ValidationError) Error() string {
	if len(e.UnknownFields) > 0 {
		return fmt.Sprintf("unknown field(s) %v not allowed in schema %s v%d",
			e.UnknownFields, e.Schema, e.Version)
	}
	if e.Field != "" {
		return fmt.Sprintf("field %q: %s (schema %s v%d)",
			e.Field, e.Message, e.Schema, e.Version)
	}
	return fmt.Sprintf("%s (schema %s v%d)", e.Message, e.Schema, e.Version)
}

// Details returns the structured fields of this error.
func (e *ValidationError) Details() map[string]interface{} {
	d := make(map[string]interface{})
	if len(e.UnknownFields) > 0 {
		d["unknown_fields"] = e.UnknownFields
	}
	if e.Field != "" {
		d["field"] = e.Field
	}
	return d
}

// MultiValidationError reports every problem in a schema at once.
type MultiValidationError struct {
	Errors []*ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Details aggregates the failed field names from all child errors.
func (e *MultiValidationError) Details() map[string]interface{} {
	d := make(map[string]interface{})
	var fields []string
	for _, ve := range e.Errors {
		if ve.Field != "" {
			fields = append(fields, ve.Field)
		}
	}
	if len(fields) > 0 {
		d["fields"] = fields
	}
	return d
}

func newUnknownFieldsError(s *Spec, fields []string) *ValidationError {
	return &ValidationError{
		Schema:        s.Name,
		Version:       s.Version,
		Message:       fmt.Sprintf("unknown field(s) not allowed: %v", fields),
		UnknownFields: fields,
	}
}

func newTypeMismatchError(s *Spec, field string, expected, actual Kind) *ValidationError {
	return &ValidationError{
		Schema:       s.Name,
		Version:      s.Version,
		Message:      fmt.Sprintf("expected %s, got %s", expected, actual),
		Field:        field,
		ExpectedType: expected,
		ActualType:   actual,
	}
}

func newRequiredFieldError(s *Spec, field string) *ValidationError {
	return &ValidationError{
		Schema:  s.Name,
		Version: s.Version,
		Message: "required field is missing",
		Field:   field,
	}
}

func newOptionalRequiredError(s *Spec, field string, kind Kind) *ValidationError {
	return &ValidationError{
		Schema:  s.Name,
		Version: s.Version,
		Message: fmt.Sprintf("must be required (use %s!)", kind),
		Field:   field,
	}
}
