package services

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-sarratt/moodline-tui/internal/models"
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

// EntriesChangedEvent is emitted when an inbox import lands new check-ins.
type EntriesChangedEvent struct {
	Total    int
	Imported int
}

// EntryRecordedEvent is emitted when a check-in is recorded in the app.
type EntryRecordedEvent struct {
	Entry *models.MoodEntry
	Total int
}

// EntryDeletedEvent is emitted when a check-in is removed.
type EntryDeletedEvent struct {
	Entry *models.MoodEntry
	Total int
}

// InsightsUpdatedEvent is emitted when derived mood views are recomputed.
type InsightsUpdatedEvent struct {
	Stats *models.MoodHistoryStats
}

// ErrorEvent is emitted when an error occurs in any service.
type ErrorEvent struct {
	Service string
	Error   error
}

// StatsEvent is emitted when store-level statistics change.
type StatsEvent struct {
	EntryCount  int
	DaysTracked int
	WithNotes   int
}

func (EntriesChangedEvent) isServiceEvent()  {}
func (EntryRecordedEvent) isServiceEvent()   {}
func (EntryDeletedEvent) isServiceEvent()    {}
func (InsightsUpdatedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}
func (StatsEvent) isServiceEvent()           {}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
