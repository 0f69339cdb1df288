package pipeline

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
	"github.com/anbanpillay/ASRI-PyROPS/internal/results"
	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
	"github.com/anbanpillay/ASRI-PyROPS/internal/settings"
)

// Codes for failures that are not domain errors.
const (
	CodeIO       = "IO_ERROR"
	CodeInternal = "INTERNAL"
)

// StageError records which stage a failure came from. The domain error is
// kept unchanged underneath.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the stage's error.
func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage err came from, or "" when unknown.
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// ErrorCode recovers the error code of err. It returns "" for nil and
// CodeInternal for errors that carry no code.
func ErrorCode(err error) string {
	var (
		malformed    *series.MalformedError
		missingSlice *series.MissingSliceError
		consistency  *config.ConsistencyError
		schema       *config.SchemaError
		run          *engine.RunError
		extraction   *results.ExtractionError
		invalid      *settings.Error
		path         *fs.PathError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &malformed):
		return string(series.ErrCodeMalformed)
	case errors.As(err, &missingSlice):
		return string(series.ErrCodeMissingSlice)
	case errors.As(err, &consistency):
		return string(config.ErrCodeConsistency)
	case errors.As(err, &schema):
		return string(config.ErrCodeSchema)
	case errors.As(err, &run):
		return string(run.Code)
	case errors.As(err, &extraction):
		return results.ErrCodeExtraction
	case errors.As(err, &invalid):
		return settings.ErrCodeInvalid
	case errors.As(err, &path):
		return CodeIO
	default:
		return CodeInternal
	}
}
