// Package trends provides the trends tab for charting mood history.
package trends

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-sarratt/moodline-tui/internal/app"
	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services"
)

// historyLoadedMsg carries the derived views for the selected range.
type historyLoadedMsg struct {
	stats *models.MoodHistoryStats
}

// historyErrorMsg reports a failed load.
type historyErrorMsg struct {
	err string
}

type keyMap struct {
	CycleRange key.Binding
	Refresh    key.Binding
	Up         key.Binding
	Down       key.Binding
}

// Model renders charts for the selected time range and reloads them when
// the check-ins underneath change.
type Model struct {
	state    *app.State
	services *services.Manager
	keys     keyMap
	viewport viewport.Model

	width  int
	height int

	timeRange   models.TimeRange
	historyData *models.MoodHistoryStats
	loading     bool
	lastRefresh time.Time
	errorMsg    string
}

// New creates a trends model starting on the 30-day range.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:     state,
		services:  svc,
		viewport:  viewport.New(0, 0),
		timeRange: models.TimeRange30Days,
		keys: keyMap{
			CycleRange: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle time range")),
			Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
			Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
			Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		},
	}
}

// Init triggers the first load.
func (m *Model) Init() tea.Cmd {
	return m.loadHistoryCmd()
}

func (m *Model) loadHistoryCmd() tea.Cmd {
	rng := m.timeRange
	return func() tea.Msg {
		if m.services == nil {
			return historyErrorMsg{err: "Services not initialized"}
		}
		stats, err := m.services.History(rng)
		if err != nil {
			return historyErrorMsg{err: err.Error()}
		}
		return historyLoadedMsg{stats: stats}
	}
}

// reload marks the tab loading and returns the load command. It is a
// no-op while a load is already in flight.
func (m *Model) reload() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	return m.loadHistoryCmd()
}

// Update handles messages for the trends tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.historyData = msg.stats
		m.loading = false
		m.lastRefresh = time.Now()
		m.errorMsg = ""
		return m, nil

	case historyErrorMsg:
		m.loading = false
		m.errorMsg = msg.err
		return m, func() tea.Msg {
			return app.AddNotificationMsg{
				Type:     app.NotificationError,
				Message:  fmt.Sprintf("Trends error: %s", msg.err),
				Duration: app.LongNotificationDuration,
			}
		}

	case app.TabSwitchMsg:
		if msg.Tab != app.TabTrends {
			return m, nil
		}
		// Reload only when the data moved since our last snapshot.
		if m.historyData == nil || m.state.GetLastUpdated().After(m.lastRefresh) {
			return m, m.reload()
		}
		return m, nil

	case app.RecordEntryResultMsg, app.DeleteEntryResultMsg,
		app.ImportInboxResultMsg, app.RefreshMsg:
		// The underlying check-ins changed, so the charts are stale.
		return m, m.reload()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.CycleRange):
			m.timeRange = m.timeRange.Next()
			m.loading = true
			rng := m.timeRange
			return m, tea.Batch(
				m.loadHistoryCmd(),
				func() tea.Msg { return app.RangeChangedMsg{Range: rng} },
			)

		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadHistoryCmd()
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// SetSize sets the available size for the trends tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// Focused reports whether the tab is capturing text input.
func (m *Model) Focused() bool {
	return false
}

// ShortHelp lists the bindings worth surfacing in the help overlay.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.CycleRange, m.keys.Refresh}
}

// FullHelp lists every trends binding.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.CycleRange, m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
