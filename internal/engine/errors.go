package engine

import (
	"errors"
	"fmt"
)

// RunErrorCode categorizes engine run failures.
type RunErrorCode string

const (
	// ErrCodeFailed indicates the engine could not be started or exited
	// unsuccessfully.
	ErrCodeFailed RunErrorCode = "ENGINE_FAILED"

	// ErrCodeTimeout indicates the engine did not finish within its
	// wall-clock budget.
	ErrCodeTimeout RunErrorCode = "ENGINE_TIMEOUT"

	// ErrCodeBadOutput indicates the engine finished but its output is not
	// a valid Output document.
	ErrCodeBadOutput RunErrorCode = "ENGINE_BAD_OUTPUT"
)

// RunError reports a failed engine run.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// Stderr holds the tail of the engine's diagnostic output, if any.
	Stderr string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsRunError reports whether err is or wraps a RunError.
func IsRunError(err error) bool {
	var re *RunError
	return errors.As(err, &re)
}

// IsTimeout reports whether err is an engine timeout.
func IsTimeout(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == ErrCodeTimeout
	}
	return false
}

func badOutput(format string, args ...any) *RunError {
	return &RunError{Code: ErrCodeBadOutput, Message: fmt.Sprintf(format, args...)}
}
