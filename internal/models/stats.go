// Package models defines data structures and domain types.
package models

import "time"

// StoreStats represents entry-store level statistics for the info tab.
type StoreStats struct {
	FirstEntryAt    time.Time
	LastEntryAt     time.Time
	TotalEntries    int
	DaysTracked     int
	EntriesWithNote int
}
