package config

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes configuration errors.
type ErrorCode string

const (
	// ErrCodeConsistency indicates values that are individually valid but
	// contradict each other, or a static constant outside its allowed range.
	ErrCodeConsistency ErrorCode = "CONFIGURATION_CONSISTENCY"

	// ErrCodeSchema indicates a serialized record that does not match the
	// record schema.
	ErrCodeSchema ErrorCode = "SCHEMA_VIOLATION"
)

// ConsistencyError reports a configuration that cannot describe one
// physical vehicle and launch.
type ConsistencyError struct {
	// Field is the record path of the offending value, e.g.
	// "motor.burn_time_s".
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCodeConsistency, e.Field, e.Message)
}

// SchemaError reports a serialized record that does not match the schema.
type SchemaError struct {
	// Path is the record path of the offending value, when known.
	Path string

	// Message is a human-readable description.
	Message string

	// Line is the 1-based line in the record source, when known.
	Line int
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s: %s", ErrCodeSchema, e.Line, e.Path, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", ErrCodeSchema, e.Path, e.Message)
	default:
		return fmt.Sprintf("%s: %s", ErrCodeSchema, e.Message)
	}
}

// IsConsistencyError reports whether err is or wraps a ConsistencyError.
func IsConsistencyError(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}

// IsSchemaError reports whether err is or wraps a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

func inconsistent(field, format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Field: field, Message: fmt.Sprintf(format, args...)}
}
