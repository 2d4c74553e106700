package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaFilterState = `
CREATE TABLE IF NOT EXISTS filter_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    band TEXT NOT NULL,
    mode TEXT NOT NULL,
    program TEXT NOT NULL,
    sort_by TEXT NOT NULL,
    exclude_qrt BOOLEAN NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaStationEvents = `
CREATE TABLE IF NOT EXISTS station_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaContacts = `
CREATE TABLE IF NOT EXISTS contacts (
    id TEXT PRIMARY KEY,
    logged_at TIMESTAMP NOT NULL,
    call TEXT NOT NULL,
    freq_khz TEXT NOT NULL,
    freq_mhz TEXT NOT NULL,
    band TEXT NOT NULL,
    mode TEXT NOT NULL,
    reference TEXT NOT NULL,
    park_name TEXT NOT NULL,
    comment TEXT NOT NULL,
    qso_date TEXT NOT NULL,
    time_on TEXT NOT NULL
);
`

const indexContactsLoggedAt = `CREATE INDEX IF NOT EXISTS idx_contacts_logged_at ON contacts (logged_at);`

const indexEventsOccurredAt = `CREATE INDEX IF NOT EXISTS idx_station_events_occurred_at ON station_events (occurred_at);`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaFilterState,
		schemaStationEvents,
		schemaContacts,
		indexContactsLoggedAt,
		indexEventsOccurredAt,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
