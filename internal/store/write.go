package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Run is one archived simulation.
type Run struct {
	ID             string
	Seq            int64
	Fingerprint    string
	Source         string
	SimulationDate time.Time
	EngineVersion  string
	Termination    string
	ApogeeM        *float64
	FlightTimeS    *float64
	Missing        []string
	OutputDir      string

	// Record is the results record as written to results.json.
	Record json.RawMessage
}

// WriteRun archives run and returns its sequence number.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same id
// again keeps the first row and returns its seq with inserted=false.
// run.Seq is ignored; the store assigns it.
func (s *Store) WriteRun(ctx context.Context, run Run) (seq int64, inserted bool, err error) {
	if run.ID == "" {
		return 0, false, fmt.Errorf("write run: empty id")
	}
	if !json.Valid(run.Record) {
		return 0, false, fmt.Errorf("write run %s: record is not valid JSON", run.ID)
	}
	missing, err := marshalMissing(run.Missing)
	if err != nil {
		return 0, false, fmt.Errorf("write run %s: %w", run.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, fingerprint, source, simulation_date, engine_version, termination,
		 apogee_m, flight_time_s, missing, output_dir, record)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Fingerprint,
		run.Source,
		marshalDate(run.SimulationDate),
		run.EngineVersion,
		run.Termination,
		nullFloat(run.ApogeeM),
		nullFloat(run.FlightTimeS),
		missing,
		run.OutputDir,
		string(run.Record),
	)
	if err != nil {
		return 0, false, fmt.Errorf("write run %s: %w", run.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("write run %s: rows affected: %w", run.ID, err)
	}

	if err := tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&seq); err != nil {
		return 0, false, fmt.Errorf("write run %s: read seq: %w", run.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("write run %s: commit: %w", run.ID, err)
	}
	return seq, rows > 0, nil
}
