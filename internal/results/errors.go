package results

import (
	"errors"
	"fmt"
)

// ErrCodeExtraction identifies trajectory extraction failures.
const ErrCodeExtraction = "TRAJECTORY_EXTRACTION"

// ExtractionError reports engine output that cannot be turned into a
// trajectory.
type ExtractionError struct {
	// Channel is the engine channel involved, if any.
	Channel string

	// Shape describes the JSON structure that was observed.
	Shape string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	msg := ErrCodeExtraction + ": "
	if e.Channel != "" {
		msg += fmt.Sprintf("channel %q: ", e.Channel)
	}
	msg += e.Message
	if e.Shape != "" {
		msg += " (observed " + e.Shape + ")"
	}
	return msg
}

// IsExtractionError reports whether err is or wraps an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
