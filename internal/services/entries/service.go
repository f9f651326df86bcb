// Package entries manages check-in persistence: a watched JSON inbox
// that companion apps drop entries into, drained into the sqlite store.
package entries

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/m-sarratt/moodline-tui/internal/db"
	"github.com/m-sarratt/moodline-tui/internal/logger"
	"github.com/m-sarratt/moodline-tui/internal/models"
)

// Event represents an entries service event.
type Event struct {
	Type     EventType
	Error    error
	Entry    *models.MoodEntry
	Total    int // entries in the store after the change
	Imported int // new rows landed by the last inbox drain
}

// EventType defines the type of entries event.
type EventType int

const (
	EventInboxImported EventType = iota
	EventEntryRecorded
	EventEntryDeleted
	EventError
)

// Service owns the inbox file and the entry store. External writes to
// the inbox are picked up by a file watcher and imported automatically.
type Service struct {
	mu            sync.RWMutex
	store         *db.DB
	inboxPath     string
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// defaultInboxPath returns the default inbox file path.
func defaultInboxPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "moodline", "checkins.json")
}

// New creates a new entries service, drains any pending inbox content,
// and starts watching the inbox file.
func New(store *db.DB, inboxPath string) (*Service, error) {
	if inboxPath == "" {
		inboxPath = defaultInboxPath()
	}

	s := &Service{
		store:     store,
		inboxPath: inboxPath,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	if err := os.MkdirAll(filepath.Dir(inboxPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create inbox directory: %w", err)
	}

	// Seed an empty inbox so companion apps have a file to append to.
	if _, err := os.Stat(inboxPath); os.IsNotExist(err) {
		if err := s.writeEmptyInbox(); err != nil {
			return nil, fmt.Errorf("failed to create inbox file: %w", err)
		}
	}

	// Drain anything already waiting before the watcher takes over.
	if _, _, err := s.ImportInbox(); err != nil {
		return nil, fmt.Errorf("failed to import inbox: %w", err)
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	return s, nil
}

// Events returns the event channel for subscribing to entry changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// InboxPath returns the watched inbox file path.
func (s *Service) InboxPath() string {
	return s.inboxPath
}

// LoadInbox reads and parses the inbox file without importing it. A
// missing file is an empty inbox.
func (s *Service) LoadInbox() ([]models.MoodEntry, error) {
	data, err := os.ReadFile(s.inboxPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read inbox: %w", err)
	}
	return parseInbox(data)
}

// parseInbox parses inbox data handling multiple formats.
func parseInbox(data []byte) ([]models.MoodEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	// Versioned inbox format first, then a bare array, then a single
	// entry object. Companion apps use all three.
	var inboxFile models.RawInboxFile
	if err := json.Unmarshal(data, &inboxFile); err == nil && inboxFile.Entries != nil {
		return toEntries(inboxFile.Entries)
	}

	var rawEntries []models.RawEntryData
	if err := json.Unmarshal(data, &rawEntries); err == nil {
		return toEntries(rawEntries)
	}

	var single models.RawEntryData
	if err := json.Unmarshal(data, &single); err == nil && len(single.CreatedAt) > 0 {
		return toEntries([]models.RawEntryData{single})
	}

	return nil, fmt.Errorf("failed to parse inbox file: invalid format")
}

func toEntries(raw []models.RawEntryData) ([]models.MoodEntry, error) {
	entries := make([]models.MoodEntry, 0, len(raw))
	for i := range raw {
		entry, err := raw[i].ToEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ImportInbox drains the inbox into the store. Every parsed entry is
// inserted (duplicates by ID are ignored), the import is logged, and
// the inbox file is reset to empty. Returns how many entries the inbox
// held and how many were new.
func (s *Service) ImportInbox() (total, imported int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.LoadInbox()
	if err != nil {
		return 0, 0, err
	}
	if len(entries) == 0 {
		return 0, 0, nil
	}

	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = newEntryID()
		}
		if entries[i].Source == "" {
			entries[i].Source = "inbox"
		}
		inserted, err := s.store.InsertEntry(&entries[i])
		if err != nil {
			return len(entries), imported, fmt.Errorf("failed to store inbox entry: %w", err)
		}
		if inserted {
			imported++
		}
	}

	if err := s.store.LogImport(filepath.Base(s.inboxPath), len(entries), imported); err != nil {
		logger.Warn("failed to log import", "error", err)
	}

	// Reset the inbox only after everything landed
	if err := s.writeEmptyInbox(); err != nil {
		return len(entries), imported, fmt.Errorf("failed to drain inbox: %w", err)
	}

	count, err := s.store.CountEntries()
	if err != nil {
		count = 0
	}
	s.sendEvent(Event{Type: EventInboxImported, Total: count, Imported: imported})

	return len(entries), imported, nil
}

// Record stores a check-in created inside the app.
func (s *Service) Record(entry models.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Set defaults
	if entry.ID == "" {
		entry.ID = newEntryID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Source == "" {
		entry.Source = "journal"
	}

	inserted, err := s.store.InsertEntry(&entry)
	if err != nil {
		return fmt.Errorf("failed to record entry: %w", err)
	}
	if !inserted {
		return fmt.Errorf("entry with id %s already exists", entry.ID)
	}

	count, err := s.store.CountEntries()
	if err != nil {
		count = 0
	}
	s.sendEvent(Event{Type: EventEntryRecorded, Entry: &entry, Total: count})
	return nil
}

// Delete removes an entry by ID.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.GetEntryByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("entry not found: %s", id)
	}

	if err := s.store.DeleteEntry(id); err != nil {
		return err
	}

	count, err := s.store.CountEntries()
	if err != nil {
		count = 0
	}
	s.sendEvent(Event{Type: EventEntryDeleted, Entry: entry, Total: count})
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Service) Recent(limit int) ([]models.MoodEntry, error) {
	return s.store.GetRecentEntries(limit)
}

// Count returns the number of stored entries.
func (s *Service) Count() (int, error) {
	return s.store.CountEntries()
}

// newEntryID generates an ID for entries that arrive without one.
func newEntryID() string {
	return fmt.Sprintf("chk_%d", time.Now().UnixNano())
}

// writeEmptyInbox resets the inbox file to an empty skeleton.
func (s *Service) writeEmptyInbox() error {
	inboxFile := models.RawInboxFile{
		Entries: make([]models.RawEntryData, 0),
		Version: 1,
	}

	data, err := json.MarshalIndent(inboxFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inbox: %w", err)
	}

	// Write to temp file first, then rename
	tmpFile := s.inboxPath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpFile, s.inboxPath); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// sendEvent never blocks a service goroutine. When the channel is full
// the oldest event is dropped to make room.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	close(s.stopChan)

	s.mu.Lock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.mu.Unlock()

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
