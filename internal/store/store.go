package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// archiveVersion is the user_version stamped on archives this package
// writes. Archives with a higher version come from a newer pyrops and are
// refused rather than written with a layout they do not expect.
const archiveVersion = 1

// connParams are go-sqlite3 DSN options applied to every connection.
var connParams = url.Values{
	"_journal_mode": {"WAL"},
	"_synchronous":  {"NORMAL"},
	"_busy_timeout": {"5000"},
}

// Store is a run archive backed by a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens the archive at path, creating the file and the runs table
// when they do not exist yet. Opening an existing archive leaves its rows
// untouched.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?"+connParams.Encode())
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	// Runs are written one at a time by a single process.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	if err := initArchive(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the archive.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initArchive(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read archive version: %w", err)
	}
	if version > archiveVersion {
		return fmt.Errorf("archive version %d is newer than supported version %d", version, archiveVersion)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	if version < archiveVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", archiveVersion)); err != nil {
			return fmt.Errorf("stamp archive version: %w", err)
		}
	}
	return nil
}
