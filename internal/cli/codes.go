package cli

import (
	"errors"
	"io/fs"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
	"github.com/anbanpillay/ASRI-PyROPS/internal/pipeline"
	"github.com/anbanpillay/ASRI-PyROPS/internal/results"
	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
	"github.com/anbanpillay/ASRI-PyROPS/internal/settings"
	"github.com/anbanpillay/ASRI-PyROPS/internal/store"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File read or write error
	ErrCodeNoArchive   = "E008" // No run archive configured

	// Input and configuration errors
	ErrCodeSettings     = "E201" // Invalid run settings
	ErrCodeMalformed    = "E202" // Malformed source table
	ErrCodeMissingSlice = "E203" // Aerodynamic table lacks the zero-alpha slice
	ErrCodeSchema       = "E204" // Configuration record violates the schema
	ErrCodeConsistency  = "E205" // Configuration values contradict each other

	// Simulation errors
	ErrCodeEngineFailed  = "E211" // Engine could not run or exited non-zero
	ErrCodeEngineTimeout = "E212" // Engine exceeded its wall-clock timeout
	ErrCodeEngineOutput  = "E213" // Engine output is not a valid document
	ErrCodeExtraction    = "E214" // Trajectory channel cannot be extracted

	// Benchmark and archive errors
	ErrCodeBenchmarkFailed = "E221" // One or more scenarios failed
	ErrCodeRunNotFound     = "E222" // No archived run with that id
)

// domainCodes maps pipeline error codes to CLI codes.
var domainCodes = map[string]string{
	string(series.ErrCodeMalformed):    ErrCodeMalformed,
	string(series.ErrCodeMissingSlice): ErrCodeMissingSlice,
	string(config.ErrCodeSchema):       ErrCodeSchema,
	string(config.ErrCodeConsistency):  ErrCodeConsistency,
	string(engine.ErrCodeFailed):       ErrCodeEngineFailed,
	string(engine.ErrCodeTimeout):      ErrCodeEngineTimeout,
	string(engine.ErrCodeBadOutput):    ErrCodeEngineOutput,
	results.ErrCodeExtraction:          ErrCodeExtraction,
	settings.ErrCodeInvalid:            ErrCodeSettings,
}

// MapError returns the CLI error code and exit code for err.
func MapError(err error) (code string, exit int) {
	if errors.Is(err, store.ErrNotFound) {
		return ErrCodeRunNotFound, ExitFailure
	}
	switch c := pipeline.ErrorCode(err); c {
	case settings.ErrCodeInvalid:
		return ErrCodeSettings, ExitCommandError
	case pipeline.CodeIO:
		if errors.Is(err, fs.ErrNotExist) {
			return ErrCodeNotFound, ExitCommandError
		}
		return ErrCodeWriteFailed, ExitCommandError
	case pipeline.CodeInternal:
		return ErrCodeGeneric, ExitCommandError
	default:
		if code, ok := domainCodes[c]; ok {
			return code, ExitFailure
		}
		return ErrCodeGeneric, ExitFailure
	}
}

// ErrorDetails collects the structured context of err for the error
// envelope. It returns nil when there is none.
func ErrorDetails(err error) map[string]any {
	details := map[string]any{}
	if stage := pipeline.StageOf(err); stage != "" {
		details["stage"] = stage
	}
	if c := pipeline.ErrorCode(err); c != pipeline.CodeInternal {
		details["error_code"] = c
	}

	var (
		schema      *config.SchemaError
		consistency *config.ConsistencyError
		malformed   *series.MalformedError
		run         *engine.RunError
		extraction  *results.ExtractionError
		invalid     *settings.Error
	)
	switch {
	case errors.As(err, &schema):
		if schema.Path != "" {
			details["field"] = schema.Path
		}
		if schema.Line > 0 {
			details["line"] = schema.Line
		}
	case errors.As(err, &consistency):
		details["field"] = consistency.Field
	case errors.As(err, &malformed):
		details["series"] = malformed.Series
		if malformed.Row > 0 {
			details["row"] = malformed.Row
		}
	case errors.As(err, &run):
		if run.Stderr != "" {
			details["stderr"] = run.Stderr
		}
	case errors.As(err, &extraction):
		details["channel"] = extraction.Channel
	case errors.As(err, &invalid):
		details["key"] = invalid.Key
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
