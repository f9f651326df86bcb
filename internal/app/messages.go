package app

import (
	"time"

	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services"
)

// Data loading messages.

// InsightsLoadedMsg carries the all-time derived views plus store stats.
type InsightsLoadedMsg struct {
	History *models.MoodHistoryStats
	Stats   services.StatsEvent
}

// HistoryLoadedMsg carries the derived views for one time range.
type HistoryLoadedMsg struct {
	History *models.MoodHistoryStats
}

// TodayLoadedMsg carries today's rollup. Day is nil before the first
// check-in of the day.
type TodayLoadedMsg struct {
	Day *models.DailyBucket
}

// RecentEntriesMsg carries the most recent check-ins, newest first.
type RecentEntriesMsg struct {
	Entries []models.MoodEntry
}

// StatsLoadedMsg contains loaded store statistics.
type StatsLoadedMsg struct {
	Stats services.StatsEvent
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "entries", "insights", "stats"
}

// Check-in mutations and their results.

// RecordEntryMsg requests recording a new check-in.
type RecordEntryMsg struct {
	Entry models.MoodEntry
}

// RecordEntryResultMsg contains the result of recording a check-in.
type RecordEntryResultMsg struct {
	Entry   models.MoodEntry
	Success bool
	Error   error
}

// DeleteEntryMsg requests deletion of a check-in.
type DeleteEntryMsg struct {
	ID string
}

// DeleteEntryResultMsg contains the result of a check-in deletion.
type DeleteEntryResultMsg struct {
	ID      string
	Success bool
	Error   error
}

// ImportInboxMsg requests an immediate inbox drain.
type ImportInboxMsg struct{}

// ImportInboxResultMsg contains the result of an inbox drain.
type ImportInboxResultMsg struct {
	Total    int
	Imported int
	Error    error
}

// ExportMsg requests exporting all check-ins to a file.
type ExportMsg struct {
	Path string
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path    string
	Count   int
	Success bool
	Error   error
}

// UI coordination.

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// RangeChangedMsg signals that the trends time range was cycled.
type RangeChangedMsg struct {
	Range models.TimeRange
}

// SelectedEntryChangedMsg signals that the selected entry in the UI has changed.
type SelectedEntryChangedMsg struct {
	Index int
	ID    string
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// Service plumbing.

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}
