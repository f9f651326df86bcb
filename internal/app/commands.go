package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// RecentEntryLimit is how many check-ins the journal keeps on screen.
	RecentEntryLimit = 50
)

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData fans out the loads every tab needs on startup.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return tea.Batch(
		loadInsightsCmd(mgr),
		loadRecentCmd(mgr),
		loadTodayCmd(mgr),
	)
}

func loadInsightsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		history, err := mgr.History(models.TimeRangeAllTime)
		if err != nil {
			return ErrorMsg{Error: err, Context: "insights"}
		}
		return InsightsLoadedMsg{
			History: history,
			Stats:   mgr.GetStats(),
		}
	}
}

func loadHistoryCmd(mgr *services.Manager, rng models.TimeRange) tea.Cmd {
	return func() tea.Msg {
		history, err := mgr.History(rng)
		if err != nil {
			return ErrorMsg{Error: err, Context: "history"}
		}
		return HistoryLoadedMsg{History: history}
	}
}

func loadRecentCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		entries, err := mgr.Entries().Recent(RecentEntryLimit)
		if err != nil {
			return ErrorMsg{Error: err, Context: "entries"}
		}
		return RecentEntriesMsg{Entries: entries}
	}
}

func loadTodayCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		day, err := mgr.Insights().Today()
		if err != nil {
			return ErrorMsg{Error: err, Context: "today"}
		}
		return TodayLoadedMsg{Day: day}
	}
}

func loadStatsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return StatsLoadedMsg{Stats: mgr.GetStats()}
	}
}

func recordEntryCmd(mgr *services.Manager, entry models.MoodEntry) tea.Cmd {
	return func() tea.Msg {
		err := mgr.Entries().Record(entry)
		return RecordEntryResultMsg{
			Entry:   entry,
			Success: err == nil,
			Error:   err,
		}
	}
}

func deleteEntryCmd(mgr *services.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.Entries().Delete(id)
		return DeleteEntryResultMsg{
			ID:      id,
			Success: err == nil,
			Error:   err,
		}
	}
}

func importInboxCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		total, imported, err := mgr.Entries().ImportInbox()
		return ImportInboxResultMsg{
			Total:    total,
			Imported: imported,
			Error:    err,
		}
	}
}

func defaultExportPath() string {
	return fmt.Sprintf("moodline-export-%s.json", time.Now().Format("20060102"))
}

// exportEntriesCmd writes every check-in to a JSON file in the inbox
// format, so an export can be imported elsewhere. The write goes through
// a temp file so a failed export never leaves a truncated file behind.
func exportEntriesCmd(mgr *services.Manager, path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			path = defaultExportPath()
		}

		fail := func(err error) tea.Msg {
			return ExportResultMsg{Path: path, Error: err}
		}

		entries, err := mgr.Database().GetEntriesSince(0)
		if err != nil {
			return fail(err)
		}

		raw := make([]models.RawEntryData, 0, len(entries))
		for i := range entries {
			raw = append(raw, entries[i].ToRaw())
		}

		data, err := json.MarshalIndent(models.RawInboxFile{Entries: raw, Version: 1}, "", "  ")
		if err != nil {
			return fail(err)
		}

		tmpFile := path + ".tmp"
		if err := os.WriteFile(tmpFile, data, 0600); err != nil {
			return fail(err)
		}
		if err := os.Rename(tmpFile, path); err != nil {
			_ = os.Remove(tmpFile)
			return fail(err)
		}

		return ExportResultMsg{Path: path, Count: len(entries), Success: true}
	}
}

func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// WaitForServiceEvent is the public version for use in models.
func WaitForServiceEvent(ch <-chan services.ServiceEvent) tea.Cmd {
	return services.WaitForEvent(ch)
}

func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(notifType NotificationType, message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     notifType,
			Message:  message,
			Duration: duration,
		}
	}
}

func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}

func batchCmds(cmds ...tea.Cmd) tea.Cmd {
	return tea.Batch(cmds...)
}

func quitCmd() tea.Cmd {
	return tea.Quit
}

// Commands exposes the command constructors as a public surface for
// embedding the app model elsewhere.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd { return tickCmd(interval) }

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd { return defaultTickCmd() }

// LoadInitialData returns a command that loads all initial data.
func (c *Commands) LoadInitialData() tea.Cmd { return loadInitialData(c.manager) }

// LoadInsights returns a command that loads the all-time derived views.
func (c *Commands) LoadInsights() tea.Cmd { return loadInsightsCmd(c.manager) }

// LoadHistory returns a command that loads derived views for a range.
func (c *Commands) LoadHistory(rng models.TimeRange) tea.Cmd { return loadHistoryCmd(c.manager, rng) }

// LoadRecent returns a command that loads recent check-ins.
func (c *Commands) LoadRecent() tea.Cmd { return loadRecentCmd(c.manager) }

// LoadToday returns a command that loads today's rollup.
func (c *Commands) LoadToday() tea.Cmd { return loadTodayCmd(c.manager) }

// LoadStats returns a command that loads store statistics.
func (c *Commands) LoadStats() tea.Cmd { return loadStatsCmd(c.manager) }

// RecordEntry returns a command that records a check-in.
func (c *Commands) RecordEntry(entry models.MoodEntry) tea.Cmd {
	return recordEntryCmd(c.manager, entry)
}

// DeleteEntry returns a command that deletes a check-in.
func (c *Commands) DeleteEntry(id string) tea.Cmd { return deleteEntryCmd(c.manager, id) }

// ImportInbox returns a command that drains the inbox now.
func (c *Commands) ImportInbox() tea.Cmd { return importInboxCmd(c.manager) }

// ExportEntries returns a command that exports all check-ins.
func (c *Commands) ExportEntries(path string) tea.Cmd { return exportEntriesCmd(c.manager, path) }

// SubscribeToServices returns a command that subscribes to service events.
func (c *Commands) SubscribeToServices() tea.Cmd { return subscribeToServicesCmd(c.manager) }

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd { return notifySuccessCmd(message) }

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd { return notifyErrorCmd(message) }

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd { return notifyWarningCmd(message) }

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd { return notifyInfoCmd(message) }

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd { return quitCmd() }

// Delayed returns a command that sends a message after a delay.
func (c *Commands) Delayed(delay time.Duration, msg tea.Msg) tea.Cmd { return delayedCmd(delay, msg) }

// Batch combines multiple commands into one.
func (c *Commands) Batch(cmds ...tea.Cmd) tea.Cmd { return batchCmds(cmds...) }
