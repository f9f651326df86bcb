// Package info provides the info tab for the Moodline TUI.
package info

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-sarratt/moodline-tui/internal/app"
	"github.com/m-sarratt/moodline-tui/internal/config"
	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services"
)

// storeInfoMsg carries the store totals shown on the info tab.
type storeInfoMsg struct {
	stats          *models.StoreStats
	importAt       time.Time
	importTotal    int
	importInserted int
	err            error
}

type keyMap struct {
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
}

// Model shows configuration, store totals, and the last import.
type Model struct {
	state       *app.State
	config      *config.Config
	services    *services.Manager
	store       *models.StoreStats
	importAt    time.Time
	importTotal int
	importNew   int
	width       int
	height      int
	keys        keyMap
	viewport    viewport.Model
}

// New creates a new info model.
func New(state *app.State, cfg *config.Config, mgr *services.Manager) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		services: mgr,
		viewport: viewport.New(0, 0),
		keys: keyMap{
			Refresh: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "refresh"),
			),
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
		},
	}
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return m.loadStoreInfoCmd()
}

// loadStoreInfoCmd reads store totals and the last import record.
func (m *Model) loadStoreInfoCmd() tea.Cmd {
	mgr := m.services
	return func() tea.Msg {
		if mgr == nil {
			return storeInfoMsg{}
		}

		stats, err := mgr.Database().GetStoreStats()
		if err != nil {
			return storeInfoMsg{err: err}
		}

		at, total, inserted, err := mgr.Database().GetLastImport()
		if err != nil {
			// The store totals are still worth showing.
			return storeInfoMsg{stats: stats}
		}

		return storeInfoMsg{
			stats:          stats,
			importAt:       at,
			importTotal:    total,
			importInserted: inserted,
		}
	}
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case storeInfoMsg:
		if msg.err == nil {
			m.store = msg.stats
			m.importAt = msg.importAt
			m.importTotal = msg.importTotal
			m.importNew = msg.importInserted
		}
		return m, nil

	case app.TabSwitchMsg:
		if msg.Tab == app.TabInfo {
			return m, m.loadStoreInfoCmd()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadStoreInfoCmd()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// SetSize sets the available size for the info tab.
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

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
