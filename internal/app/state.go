package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services"
)

// NotificationType selects a toast's severity and styling.
type NotificationType int

const (
	// NotificationSuccess marks a completed action.
	NotificationSuccess NotificationType = iota
	// NotificationError marks a failure.
	NotificationError
	// NotificationWarning marks a recoverable problem.
	NotificationWarning
	// NotificationInfo carries neutral status text.
	NotificationInfo
	// NotificationLoading shows a spinner while work is in flight.
	NotificationLoading
)

// LoadingNotificationID is the fixed ID for loading notifications.
const LoadingNotificationID = "__loading__"

// maxNotifications caps the toast backlog.
const maxNotifications = 10

var notificationTypeNames = [...]string{"success", "error", "warning", "info", "loading"}

// String returns the type's lowercase name.
func (n NotificationType) String() string {
	if n < 0 || int(n) >= len(notificationTypeNames) {
		return "unknown"
	}
	return notificationTypeNames[n]
}

// Notification is a user-facing toast.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired. Notifications
// with no duration stick around until removed explicitly.
func (n *Notification) IsExpired() bool {
	return n.Duration > 0 && time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial  bool
	Entries  bool
	Insights bool
	Stats    bool
}

// flag maps a resource name to its field, or nil for unknown names.
func (l *LoadingState) flag(resource string) *bool {
	switch resource {
	case "initial":
		return &l.Initial
	case "entries":
		return &l.Entries
	case "insights":
		return &l.Insights
	case "stats":
		return &l.Stats
	}
	return nil
}

var loadingResources = []string{"initial", "entries", "insights", "stats"}

// State is the shared application state that tabs render from.
type State struct {
	mu sync.RWMutex

	History            *models.MoodHistoryStats
	Today              *models.DailyBucket
	Recent             []models.MoodEntry
	Stats              *services.StatsEvent
	SelectedEntryIndex int

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

func NewState() *State {
	return &State{
		Recent:        make([]models.MoodEntry, 0),
		notifications: make([]Notification, 0),
		Loading:       LoadingState{Initial: true},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f := s.Loading.flag(resource); f != nil {
		*f = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, name := range loadingResources {
		if *s.Loading.flag(name) {
			return true
		}
	}
	return false
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []string
	for _, name := range loadingResources {
		if *s.Loading.flag(name) {
			active = append(active, name)
		}
	}
	return active
}

// SetHistory updates the all-time derived views.
func (s *State) SetHistory(history *models.MoodHistoryStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = history
	s.LastUpdated = time.Now()
}

// GetHistory returns the all-time derived views. May be nil before load.
func (s *State) GetHistory() *models.MoodHistoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.History
}

// SetToday updates today's rollup.
func (s *State) SetToday(day *models.DailyBucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Today = day
	s.LastUpdated = time.Now()
}

// GetToday returns today's rollup. Nil when nothing was recorded today.
func (s *State) GetToday() *models.DailyBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Today
}

// SetRecent updates the recent entries list and clamps the selection so
// it never points past the end.
func (s *State) SetRecent(entries []models.MoodEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Recent = entries
	s.LastUpdated = time.Now()

	if s.SelectedEntryIndex >= len(entries) {
		s.SelectedEntryIndex = max(0, len(entries)-1)
	}
}

// GetRecent returns a copy of the recent entries list.
func (s *State) GetRecent() []models.MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]models.MoodEntry, len(s.Recent))
	copy(entries, s.Recent)
	return entries
}

// GetEntryCount returns the number of recent entries held in state.
func (s *State) GetEntryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Recent)
}

// SetStats updates the store totals.
func (s *State) SetStats(stats services.StatsEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats = &stats
}

// GetStats returns the store totals. May be nil before the first refresh.
func (s *State) GetStats() *services.StatsEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := fmt.Sprintf("n%d-%d", s.notificationSeq, time.Now().UnixNano())

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = s.withoutNotification(id)
}

// withoutNotification filters id out of the current list. Caller holds the lock.
func (s *State) withoutNotification(id string) []Notification {
	for i, n := range s.notifications {
		if n.ID == id {
			return append(s.notifications[:i], s.notifications[i+1:]...)
		}
	}
	return s.notifications
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = filterActive(s.notifications)
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterActive(s.notifications)
}

func filterActive(in []Notification) []Notification {
	active := make([]Notification, 0, len(in))
	for _, n := range in {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message, replacing
// the message of an existing one rather than stacking toasts.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}
	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = s.withoutNotification(LoadingNotificationID)
}

// GetLastUpdated returns when any data last changed.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns how long the data has been stale, or zero if
// nothing has loaded yet.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}

// GetSelectedEntryIndex returns the currently selected entry index.
func (s *State) GetSelectedEntryIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SelectedEntryIndex
}

// SetSelectedEntryIndex updates the selected entry index.
func (s *State) SetSelectedEntryIndex(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SelectedEntryIndex = idx
}
