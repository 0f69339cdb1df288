package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(id, fingerprint string) Run {
	apogee := 3012.5
	return Run{
		ID:             id,
		Fingerprint:    fingerprint,
		Source:         "BM-001",
		SimulationDate: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		EngineVersion:  "fake-engine 1.0",
		Termination:    "impact",
		ApogeeM:        &apogee,
		Missing:        []string{},
		OutputDir:      "out/" + id,
		Record:         json.RawMessage(`{"run_id":"` + id + `"}`),
	}
}

// verifyPragma checks the value SQLite reports for a pragma.
func verifyPragma(s *Store, name, expected string) error {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
