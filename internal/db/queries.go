package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/m-sarratt/moodline-tui/internal/logger"
	"github.com/m-sarratt/moodline-tui/internal/models"
)

var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 +0000 UTC",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

const entryColumns = `id, created_at, mind_energy, body_energy, mood_label, note, tags, source`

// InsertEntry stores a check-in. Inserts are idempotent on the entry ID
// so re-importing the same inbox never duplicates rows; the return value
// reports whether a new row was written.
func (db *DB) InsertEntry(entry *models.MoodEntry) (bool, error) {
	query := `
		INSERT OR IGNORE INTO mood_entries (
			id, created_at, mind_energy, body_energy, mood_label, note, tags, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		return false, fmt.Errorf("mood entry %q has no timestamp", entry.ID)
	}

	result, err := db.ExecContext(context.Background(), query,
		entry.ID,
		createdAt.UTC().Format("2006-01-02 15:04:05"),
		nullFloat(entry.MindEnergy),
		nullFloat(entry.BodyEnergy),
		nullString(entry.MoodLabel),
		nullString(entry.Note),
		nullString(joinTags(entry.Tags)),
		nullString(entry.Source),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert mood entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, nil
	}
	return affected > 0, nil
}

// GetEntriesSince returns all entries from the last N days in ascending
// created_at order. A non-positive day count returns everything.
func (db *DB) GetEntriesSince(days int) ([]models.MoodEntry, error) {
	timeFilter := ""
	args := []any{}
	if days > 0 {
		timeFilter = "AND created_at >= datetime('now', ?)"
		args = append(args, fmt.Sprintf("-%d days", days))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM mood_entries
		WHERE 1=1 %s
		ORDER BY created_at ASC
	`, entryColumns, timeFilter)

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// GetEntriesBetween returns entries with start <= created_at < end in
// ascending created_at order.
func (db *DB) GetEntriesBetween(start, end time.Time) ([]models.MoodEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM mood_entries
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC
	`, entryColumns)

	rows, err := db.QueryContext(context.Background(), query,
		start.UTC().Format("2006-01-02 15:04:05"),
		end.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries between: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// GetRecentEntries returns the most recent entries, newest first.
func (db *DB) GetRecentEntries(limit int) ([]models.MoodEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM mood_entries
		ORDER BY created_at DESC
		LIMIT ?
	`, entryColumns)

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent entries: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	return scanEntries(rows)
}

// GetEntryByID retrieves a single entry, or nil when it does not exist.
func (db *DB) GetEntryByID(id string) (*models.MoodEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM mood_entries WHERE id = ?`, entryColumns)

	row := db.QueryRowContext(context.Background(), query, id)
	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}
	return &entry, nil
}

// DeleteEntry removes an entry by ID.
func (db *DB) DeleteEntry(id string) error {
	_, err := db.ExecContext(context.Background(), "DELETE FROM mood_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	return nil
}

// CountEntries returns the total number of stored entries.
func (db *DB) CountEntries() (int, error) {
	var count int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM mood_entries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// GetEntryDateRange returns the timestamps of the first and last entries.
// Both are zero when the store is empty.
func (db *DB) GetEntryDateRange() (first, last time.Time, err error) {
	query := `SELECT MIN(created_at), MAX(created_at) FROM mood_entries`

	var firstStr, lastStr sql.NullString
	if err := db.QueryRowContext(context.Background(), query).Scan(&firstStr, &lastStr); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to query date range: %w", err)
	}
	if firstStr.Valid && firstStr.String != "" {
		if t, ok := parseTimeString(firstStr.String); ok {
			first = t
		}
	}
	if lastStr.Valid && lastStr.String != "" {
		if t, ok := parseTimeString(lastStr.String); ok {
			last = t
		}
	}
	return first, last, nil
}

// GetStoreStats returns overall statistics about the entry store.
func (db *DB) GetStoreStats() (*models.StoreStats, error) {
	query := `
		SELECT
			COUNT(*) as total_entries,
			COUNT(DISTINCT day) as days_tracked,
			SUM(CASE WHEN note IS NOT NULL AND note != '' THEN 1 ELSE 0 END) as with_note
		FROM mood_entries
	`

	stats := &models.StoreStats{}
	var withNote sql.NullInt64
	err := db.QueryRowContext(context.Background(), query).Scan(
		&stats.TotalEntries,
		&stats.DaysTracked,
		&withNote,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query store stats: %w", err)
	}
	if withNote.Valid {
		stats.EntriesWithNote = int(withNote.Int64)
	}

	first, last, err := db.GetEntryDateRange()
	if err != nil {
		return nil, err
	}
	stats.FirstEntryAt = first
	stats.LastEntryAt = last

	return stats, nil
}

// LogImport records one inbox drain for the info tab's audit trail.
func (db *DB) LogImport(source string, total, inserted int) error {
	query := `INSERT INTO import_log (source, total, inserted) VALUES (?, ?, ?)`
	if _, err := db.ExecContext(context.Background(), query, source, total, inserted); err != nil {
		return fmt.Errorf("failed to log import: %w", err)
	}
	return nil
}

// GetLastImport returns when the inbox was last drained and how many
// entries that drain carried. The time is zero when nothing was ever
// imported.
func (db *DB) GetLastImport() (at time.Time, total, inserted int, err error) {
	query := `
		SELECT imported_at, total, inserted
		FROM import_log
		ORDER BY imported_at DESC, id DESC
		LIMIT 1
	`

	var atStr sql.NullString
	scanErr := db.QueryRowContext(context.Background(), query).Scan(&atStr, &total, &inserted)
	if scanErr == sql.ErrNoRows {
		return time.Time{}, 0, 0, nil
	}
	if scanErr != nil {
		return time.Time{}, 0, 0, fmt.Errorf("failed to query last import: %w", scanErr)
	}
	if atStr.Valid && atStr.String != "" {
		if t, ok := parseTimeString(atStr.String); ok {
			at = t
		}
	}
	return at, total, inserted, nil
}

type scanFunc func(dest ...any) error

func scanEntry(scan scanFunc) (models.MoodEntry, error) {
	var entry models.MoodEntry
	var createdStr string
	var mindVal, bodyVal sql.NullFloat64
	var label, note, tags, source sql.NullString

	err := scan(
		&entry.ID,
		&createdStr,
		&mindVal,
		&bodyVal,
		&label,
		&note,
		&tags,
		&source,
	)
	if err != nil {
		return entry, err
	}

	if t, ok := parseTimeString(createdStr); ok {
		entry.CreatedAt = t
	}
	if mindVal.Valid {
		entry.MindEnergy = models.FloatPtr(mindVal.Float64)
	}
	if bodyVal.Valid {
		entry.BodyEnergy = models.FloatPtr(bodyVal.Float64)
	}
	entry.MoodLabel = label.String
	entry.Note = note.String
	entry.Tags = splitTags(tags.String)
	entry.Source = source.String

	return entry, nil
}

func scanEntries(rows *sql.Rows) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullFloat returns a sql.NullFloat64 from an optional float.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
