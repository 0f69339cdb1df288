package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the golden form of a scenario result. The run directory is
// left out because it differs between machines.
type Snapshot struct {
	Scenario string  `json:"scenario"`
	RunID    string  `json:"run_id"`
	Pass     bool    `json:"pass"`
	Checks   []Check `json:"checks"`
}

// MarshalSnapshot encodes the golden form of result.
func MarshalSnapshot(result *Result) ([]byte, error) {
	data, err := json.MarshalIndent(Snapshot{
		Scenario: result.Scenario,
		RunID:    result.RunID,
		Pass:     result.Pass,
		Checks:   result.Checks,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// AssertGolden compares the result's checks against a golden file.
// The golden file is stored in testdata/golden/{name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
