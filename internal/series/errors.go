package series

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes series errors.
type ErrorCode string

const (
	// ErrCodeMalformed indicates a table that breaks an ordering, uniqueness,
	// length, finiteness or role invariant.
	ErrCodeMalformed ErrorCode = "MALFORMED_SERIES"

	// ErrCodeMissingSlice indicates a lookup needed a slice of a table that
	// the table does not contain.
	ErrCodeMissingSlice ErrorCode = "MISSING_SLICE"
)

// MalformedError reports a table that cannot become a valid series.
type MalformedError struct {
	// Series names the table, e.g. "thrust_curve".
	Series string

	// Row is the 1-based source row, or 0 when the problem is not tied to a row.
	Row int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: %s: row %d: %s", ErrCodeMalformed, e.Series, e.Row, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrCodeMalformed, e.Series, e.Message)
}

// MissingSliceError reports a missing slice of a multi-dimensional table,
// naming the independent-variable value that lacks it.
type MissingSliceError struct {
	// Table names the table, e.g. "aerodynamics".
	Table string

	// Field is the independent variable whose value lacks the slice.
	Field string

	// Value is the offending independent-variable value.
	Value float64

	// Slice describes the slice that was requested, e.g. "alpha=0".
	Slice string
}

// Error implements the error interface.
func (e *MissingSliceError) Error() string {
	return fmt.Sprintf("%s: %s: no %s row for %s=%g", ErrCodeMissingSlice, e.Table, e.Slice, e.Field, e.Value)
}

// IsMalformed reports whether err is or wraps a MalformedError.
func IsMalformed(err error) bool {
	var me *MalformedError
	return errors.As(err, &me)
}

// IsMissingSlice reports whether err is or wraps a MissingSliceError.
func IsMissingSlice(err error) bool {
	var ms *MissingSliceError
	return errors.As(err, &ms)
}

func malformed(series, format string, args ...any) *MalformedError {
	return &MalformedError{Series: series, Message: fmt.Sprintf(format, args...)}
}
