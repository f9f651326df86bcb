package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// newTestDB opens a throwaway store under t.TempDir.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	return db
}

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if got := db.Path(); got != dbPath {
		t.Errorf("Path() = %s, want %s", got, dbPath)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file missing: %v", err)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("parent directories missing: %v", err)
	}
}

func TestSchema_TablesExist(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	for _, table := range []string{"mood_entries", "import_log"} {
		var name string
		row := db.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table)
		if err := row.Scan(&name); err != nil {
			t.Errorf("Table %s does not exist: %v", table, err)
		}
	}
}

func TestSchema_DayColumnGenerated(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		"INSERT INTO mood_entries (id, created_at) VALUES ('e1', '2026-01-15 09:30:00')")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	var day string
	if err := db.QueryRowContext(ctx, "SELECT day FROM mood_entries WHERE id = 'e1'").Scan(&day); err != nil {
		t.Fatalf("select day failed: %v", err)
	}
	if day != "2026-01-15" {
		t.Errorf("day = %q, want 2026-01-15", day)
	}
}

func TestVacuum(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	if err := db.Vacuum(); err != nil {
		t.Errorf("Vacuum failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	db := newTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, err := db.QueryContext(context.Background(), "SELECT 1"); err == nil {
		t.Error("expected error querying closed database")
	}
}
