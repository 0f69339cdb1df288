package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a benchmark case and the results it must reproduce.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Settings is the run settings file. Empty uses the built-in
	// defaults.
	Settings string `yaml:"settings,omitempty"`

	// InputDir overrides the settings' input directory.
	InputDir string `yaml:"input_dir,omitempty"`

	// EngineOutput is a captured engine output to replay instead of
	// running the engine command.
	EngineOutput string `yaml:"engine_output,omitempty"`

	// RunID is an optional fixed run id for deterministic golden files.
	// If empty, defaults to "benchmark-<name>".
	RunID string `yaml:"run_id,omitempty"`

	// Expectations validate the configuration and the results.
	Expectations []Expectation `yaml:"expectations"`
}

// Expectation checks one aspect of a run.
type Expectation struct {
	// Type specifies the expectation type:
	// - "configuration": a numeric field of the configuration record
	// - "result": a numeric field of the results record
	// - "termination": the engine's termination reason
	// - "missing": the exact set of missing summary fields
	Type string `yaml:"type"`

	// Field is a dotted path into the record (configuration, result).
	Field string `yaml:"field,omitempty"`

	// Value is the expected number (configuration, result). An absent or
	// null value expects the field to be null.
	Value *float64 `yaml:"value"`

	// Tolerance is the allowed deviation. Zero means exact.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Relative makes Tolerance a fraction of |Value|.
	Relative bool `yaml:"relative,omitempty"`

	// Equals is the expected termination reason (termination).
	Equals string `yaml:"equals,omitempty"`

	// Fields are the expected missing summary fields (missing).
	Fields []string `yaml:"fields"`
}

// Expectation type constants.
const (
	ExpectConfiguration = "configuration"
	ExpectResult        = "result"
	ExpectTermination   = "termination"
	ExpectMissing       = "missing"
)

// LoadScenario reads and parses a scenario YAML file, resolving its paths
// relative to the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&sc.Settings, &sc.InputDir, &sc.EngineOutput} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return sc, nil
}

// ParseScenario parses a scenario document. Paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expectation:" vs "expectations:".
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Expectations) == 0 {
		return fmt.Errorf("expectations list is required and must be non-empty")
	}
	for i := range s.Expectations {
		if err := validateExpectation(i, &s.Expectations[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateExpectation validates a single expectation based on its type.
func validateExpectation(index int, e *Expectation) error {
	if e.Type == "" {
		return fmt.Errorf("expectations[%d]: type is required", index)
	}

	switch e.Type {
	case ExpectConfiguration, ExpectResult:
		if e.Field == "" {
			return fmt.Errorf("expectations[%d]: field is required for %s", index, e.Type)
		}
		if e.Tolerance < 0 {
			return fmt.Errorf("expectations[%d]: tolerance must be non-negative", index)
		}
		if e.Relative && e.Value == nil {
			return fmt.Errorf("expectations[%d]: relative tolerance needs a value", index)
		}
	case ExpectTermination:
		if e.Equals == "" {
			return fmt.Errorf("expectations[%d]: equals is required for termination", index)
		}
	case ExpectMissing:
		if e.Fields == nil {
			return fmt.Errorf("expectations[%d]: fields is required for missing (use [] for none)", index)
		}
	default:
		return fmt.Errorf("expectations[%d]: unknown expectation type %q", index, e.Type)
	}
	return nil
}
