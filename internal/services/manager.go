// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/m-sarratt/moodline-tui/internal/config"
	"github.com/m-sarratt/moodline-tui/internal/db"
	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services/entries"
	"github.com/m-sarratt/moodline-tui/internal/services/insights"
)

// Streak lengths worth celebrating with a desktop notification.
var streakMilestones = []int{7, 30, 100}

// Manager owns the store, the entries and insights services, and fans
// their events out to TUI subscribers.
type Manager struct {
	mu          sync.RWMutex
	entries     *entries.Service
	insights    *insights.Service
	database    *db.DB
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent

	statsInterval       time.Duration
	notify              bool
	notifiedMilestones  map[int]bool
	notifiedNegativeDay string
}

// NewManager opens the store and starts the event router.
func NewManager(cfg *config.Config) (*Manager, error) {
	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	entriesSvc, err := entries.New(database, cfg.InboxPath)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		entries:            entriesSvc,
		insights:           insights.New(database),
		database:           database,
		eventChan:          make(chan ServiceEvent, 100),
		stopChan:           make(chan struct{}),
		statsInterval:      cfg.StatsRefreshInterval,
		notify:             cfg.NotificationsEnabled,
		notifiedMilestones: make(map[int]bool),
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents forwards entry events to subscribers and re-broadcasts
// store statistics on the configured interval.
func (m *Manager) routeEvents() {
	interval := m.statsInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case event := <-m.entries.Events():
			m.handleEntryEvent(event)

		case <-ticker.C:
			m.broadcast(m.GetStats())

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleEntryEvent(event entries.Event) {
	switch event.Type {
	case entries.EventInboxImported:
		m.broadcast(EntriesChangedEvent{
			Total:    event.Total,
			Imported: event.Imported,
		})
		if event.Imported > 0 {
			go m.refreshInsights()
		}

	case entries.EventEntryRecorded:
		m.broadcast(EntryRecordedEvent{
			Entry: event.Entry,
			Total: event.Total,
		})
		go m.refreshInsights()

	case entries.EventEntryDeleted:
		m.broadcast(EntryDeletedEvent{
			Entry: event.Entry,
			Total: event.Total,
		})
		go m.refreshInsights()

	case entries.EventError:
		m.broadcast(ErrorEvent{
			Service: "entries",
			Error:   event.Error,
		})
	}
}

// refreshInsights recomputes the derived views after the store changed.
func (m *Manager) refreshInsights() {
	m.insights.Invalidate()

	stats, err := m.insights.Refresh(models.TimeRangeAllTime)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "insights", Error: err})
		return
	}

	m.broadcast(InsightsUpdatedEvent{Stats: stats})
	m.broadcast(m.GetStats())

	if m.notify {
		m.checkNotifications(stats)
	}
}

// checkNotifications sends desktop notifications for streak milestones and
// low days. Each milestone fires once per process; a low day fires once per
// calendar day.
func (m *Manager) checkNotifications(stats *models.MoodHistoryStats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	streak := stats.Stats.StreakDays
	for _, milestone := range streakMilestones {
		if streak >= milestone && !m.notifiedMilestones[milestone] {
			m.notifiedMilestones[milestone] = true
			body := fmt.Sprintf("%d days in a row. Keep it going!", milestone)
			_ = beeep.Notify("Check-in streak", body, "")
		}
	}

	if len(stats.Daily) > 0 {
		last := stats.Daily[len(stats.Daily)-1]
		if last.MoodLabel == models.MoodNegative && m.notifiedNegativeDay != last.Date {
			m.notifiedNegativeDay = last.Date
			_ = beeep.Notify("Rough day", "Today's blended mood is running low. Be kind to yourself.", "")
		}
	}
}

// broadcast delivers an event without ever blocking a service goroutine;
// a subscriber that cannot keep up misses events instead.
func (m *Manager) broadcast(event ServiceEvent) {
	select {
	case m.eventChan <- event:
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// GetStats returns store-level statistics.
func (m *Manager) GetStats() StatsEvent {
	stats, err := m.database.GetStoreStats()
	if err != nil {
		return StatsEvent{}
	}

	return StatsEvent{
		EntryCount:  stats.TotalEntries,
		DaysTracked: stats.DaysTracked,
		WithNotes:   stats.EntriesWithNote,
	}
}

// Entries returns the entries service.
func (m *Manager) Entries() *entries.Service {
	return m.entries
}

// Insights returns the insights service.
func (m *Manager) Insights() *insights.Service {
	return m.insights
}

// History retrieves derived mood views for a time range.
func (m *Manager) History(rng models.TimeRange) (*models.MoodHistoryStats, error) {
	if m.insights == nil {
		return nil, fmt.Errorf("insights service not initialized")
	}
	return m.insights.History(rng)
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// InitialState returns the initial state of all services for TUI initialization.
func (m *Manager) InitialState() (*models.MoodHistoryStats, StatsEvent, error) {
	stats, err := m.insights.History(models.TimeRangeAllTime)
	if err != nil {
		return nil, StatsEvent{}, err
	}
	return stats, m.GetStats(), nil
}

// Close stops the router, closes every subscriber channel, and shuts the
// services and store down.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error
	if err := m.entries.Close(); err != nil {
		errs = append(errs, err)
	}
	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
