package db

import (
	"context"
	"fmt"
)

// FixLegacyTimeFormats normalizes timestamp columns written by older
// builds. modernc.org/sqlite stores time.Time with a " +0000 UTC" suffix
// that SQLite's date functions cannot parse, so trim each column down to
// the bare "YYYY-MM-DD HH:MM:SS" form.
func (db *DB) FixLegacyTimeFormats() error {
	columns := []struct {
		table, column string
	}{
		{"mood_entries", "created_at"},
		{"mood_entries", "imported_at"},
		{"import_log", "imported_at"},
	}

	for _, c := range columns {
		query := fmt.Sprintf(
			`UPDATE %s SET %s = SUBSTR(%s, 1, 19)
			 WHERE %s IS NOT NULL AND length(%s) > 19 AND %s LIKE '%% UTC'`,
			c.table, c.column, c.column, c.column, c.column, c.column)
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			return fmt.Errorf("failed to fix legacy time formats: %w", err)
		}
	}

	return nil
}
