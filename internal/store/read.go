package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by ReadRun for an unknown id.
var ErrNotFound = errors.New("run not found")

const runColumns = `id, seq, fingerprint, source, simulation_date, engine_version, termination,
	apogee_m, flight_time_s, missing, output_dir, record`

// ReadRun retrieves a single run by id.
// Returns an error wrapping ErrNotFound if no run has that id.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListFilter narrows ListRuns. Zero values match everything.
type ListFilter struct {
	Fingerprint string

	// Limit keeps only the most recent Limit runs.
	Limit int
}

// ListRuns returns archived runs ordered by seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no runs match.
func (s *Store) ListRuns(ctx context.Context, f ListFilter) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if f.Fingerprint != "" {
		query += ` WHERE fingerprint = ?`
		args = append(args, f.Fingerprint)
	}
	if f.Limit > 0 {
		// Take the newest rows, then restore ascending order.
		query = `SELECT * FROM (` + query + ` ORDER BY seq DESC LIMIT ?) ORDER BY seq ASC, id COLLATE BINARY ASC`
		args = append(args, f.Limit)
	} else {
		query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run              Run
		date, missing    string
		record           string
		apogee, duration sql.NullFloat64
	)
	err := sc.Scan(
		&run.ID,
		&run.Seq,
		&run.Fingerprint,
		&run.Source,
		&date,
		&run.EngineVersion,
		&run.Termination,
		&apogee,
		&duration,
		&missing,
		&run.OutputDir,
		&record,
	)
	if err != nil {
		return Run{}, err
	}

	if run.SimulationDate, err = unmarshalDate(date); err != nil {
		return Run{}, err
	}
	if run.Missing, err = unmarshalMissing(missing); err != nil {
		return Run{}, err
	}
	run.ApogeeM = floatPtr(apogee)
	run.FlightTimeS = floatPtr(duration)
	run.Record = []byte(record)
	return run, nil
}
