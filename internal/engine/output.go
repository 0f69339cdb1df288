package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// Termination values an engine may report.
const (
	TerminationImpact  = "impact"
	TerminationApogee  = "apogee"
	TerminationMaxTime = "max_time"
)

// Output is what the engine reports for one run. Scalars and channels are
// kept undecoded; a channel may use either the paired-point or the
// flat-array representation.
type Output struct {
	EngineVersion string                     `json:"engine_version"`
	Termination   string                     `json:"termination,omitempty"`
	Scalars       map[string]json.RawMessage `json:"scalars"`
	Channels      map[string]json.RawMessage `json:"channels"`
}

// ScalarNames returns the scalar names in sorted order.
func (o *Output) ScalarNames() []string {
	return slices.Sorted(maps.Keys(o.Scalars))
}

// ChannelNames returns the channel names in sorted order.
func (o *Output) ChannelNames() []string {
	return slices.Sorted(maps.Keys(o.Channels))
}

// ReadOutput decodes one Output document. Anything that is not a single
// JSON object with a channels section is a *RunError with ErrCodeBadOutput.
func ReadOutput(r io.Reader) (*Output, error) {
	dec := json.NewDecoder(r)
	var out Output
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, badOutput("engine produced no output")
		}
		return nil, &RunError{Code: ErrCodeBadOutput, Message: "decode engine output", Err: err}
	}
	if dec.More() {
		return nil, badOutput("trailing data after engine output")
	}
	if out.Channels == nil {
		return nil, badOutput("engine output has no channels")
	}
	if out.Scalars == nil {
		out.Scalars = map[string]json.RawMessage{}
	}
	return &out, nil
}

// ReadOutputFile reads a captured Output from path.
func ReadOutputFile(path string) (*Output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read engine output %s: %w", path, err)
	}
	out, err := ReadOutput(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load engine output %s: %w", path, err)
	}
	return out, nil
}

// WriteOutputFile writes out to path as indented JSON so a run can be
// extracted again later.
func WriteOutputFile(path string, out *Output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode engine output: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write engine output %s: %w", path, err)
	}
	return nil
}
