// Package db opens the SQLite check-in store and implements its queries.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register the pure-Go sqlite driver
)

// schema holds every table and index the store needs. The generated
// `day` column keeps calendar-day lookups indexable without repeating
// date() in every query.
const schema = `
CREATE TABLE IF NOT EXISTS mood_entries (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	mind_energy REAL,
	body_energy REAL,
	mood_label TEXT,
	note TEXT,
	tags TEXT,
	source TEXT,
	imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	day TEXT GENERATED ALWAYS AS (date(created_at)) STORED
);
CREATE INDEX IF NOT EXISTS idx_mood_entries_created ON mood_entries(created_at);
CREATE INDEX IF NOT EXISTS idx_mood_entries_day ON mood_entries(day);

CREATE TABLE IF NOT EXISTS import_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	source TEXT NOT NULL,
	total INTEGER DEFAULT 0,
	inserted INTEGER DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_import_log_time ON import_log(imported_at);
`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA cache_size=-64000",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
	"PRAGMA temp_store=MEMORY",
}

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New opens (creating if necessary) the entry store at path, applies
// the pragmas, and brings the schema up to date.
func New(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// initialize verifies the connection, applies the pragmas, and brings
// the schema up to date.
func (db *DB) initialize() error {
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := db.FixLegacyTimeFormats(); err != nil {
		return fmt.Errorf("failed to fix legacy time formats: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close checkpoints the WAL and closes the connection.
func (db *DB) Close() error {
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}

// Vacuum reclaims space after bulk deletes.
func (db *DB) Vacuum() error {
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}
