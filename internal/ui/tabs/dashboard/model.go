// Package dashboard provides the at-a-glance overview tab for the Moodline TUI.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-sarratt/moodline-tui/internal/app"
	"github.com/m-sarratt/moodline-tui/internal/ui/components"
)

const animationDuration = 1.5 // seconds per bar sweep

type animationTickMsg time.Time

func animationTickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*40, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// AnimationState tracks one bar easing toward its target value.
type AnimationState struct {
	StartTime      time.Time
	CurrentPercent float64
	TargetPercent  float64
	StartPercent   float64
}

// retarget points the animation at a new value, easing from wherever the
// bar currently sits. Returns true while the bar is still moving.
func (a *AnimationState) retarget(target float64, now time.Time) bool {
	if target != a.TargetPercent {
		a.StartPercent = a.CurrentPercent
		a.TargetPercent = target
		a.StartTime = now
	}
	return a.CurrentPercent != a.TargetPercent
}

// step advances the animation with ease-out interpolation.
func (a *AnimationState) step(now time.Time) {
	if a.CurrentPercent == a.TargetPercent {
		return
	}
	elapsed := now.Sub(a.StartTime).Seconds()
	if elapsed >= animationDuration {
		a.CurrentPercent = a.TargetPercent
		return
	}
	progress := elapsed / animationDuration
	ease := 1.0 - (1.0-progress)*(1.0-progress)
	a.CurrentPercent = a.StartPercent + (a.TargetPercent-a.StartPercent)*ease
}

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	NextEntry  key.Binding
	PrevEntry  key.Binding
	FirstEntry key.Binding
	LastEntry  key.Binding
	Refresh    key.Binding
}

// Model represents the dashboard tab state.
type Model struct {
	state          *app.State
	animations     map[string]*AnimationState
	spinner        components.LoadingSpinner
	keys           keyMap
	viewport       viewport.Model
	dayBar         components.DayBar
	energyBar      components.EnergyBar
	width          int
	height         int
	selectedIndex  int
	animationFrame int
}

// New creates a new dashboard model.
func New(state *app.State) *Model {
	return &Model{
		state:      state,
		spinner:    components.NewSpinner("Loading check-ins..."),
		energyBar:  components.NewEnergyBar(),
		dayBar:     components.NewDayBar(),
		viewport:   viewport.New(0, 0),
		animations: make(map[string]*AnimationState),
		keys: keyMap{
			NextEntry: key.NewBinding(
				key.WithKeys("n", "j", "down"),
				key.WithHelp("j/n", "next check-in"),
			),
			PrevEntry: key.NewBinding(
				key.WithKeys("p", "k", "up"),
				key.WithHelp("k/p", "prev check-in"),
			),
			FirstEntry: key.NewBinding(
				key.WithKeys("g", "home"),
				key.WithHelp("g", "first check-in"),
			),
			LastEntry: key.NewBinding(
				key.WithKeys("G", "end"),
				key.WithHelp("G", "last check-in"),
			),
			Refresh: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "refresh"),
			),
		},
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), animationTickCmd())
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case animationTickMsg:
		m.animationFrame++
		now := time.Time(msg)
		animating := m.syncAnimationTargets(now)
		for _, a := range m.animations {
			a.step(now)
		}
		// Keep ticking while bars move or load placeholders shimmer.
		if animating || m.state.AnyLoading() || m.state.IsInitialLoading() {
			return m, animationTickCmd()
		}
		return m, nil

	case app.StartLoadingMsg:
		return m, animationTickCmd()

	case app.TodayLoadedMsg, app.InsightsLoadedMsg, app.RecentEntriesMsg,
		app.RefreshMsg, app.TabSwitchMsg:
		m.syncAnimationTargets(time.Now())
		return m, animationTickCmd()

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	entryCount := m.state.GetEntryCount()

	switch {
	case key.Matches(msg, m.keys.NextEntry):
		if entryCount > 0 {
			m.selectedIndex = (m.selectedIndex + 1) % entryCount
		}
	case key.Matches(msg, m.keys.PrevEntry):
		if entryCount > 0 {
			m.selectedIndex = (m.selectedIndex - 1 + entryCount) % entryCount
		}
	case key.Matches(msg, m.keys.FirstEntry):
		if entryCount > 0 {
			m.selectedIndex = 0
		}
	case key.Matches(msg, m.keys.LastEntry):
		if entryCount > 0 {
			m.selectedIndex = entryCount - 1
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// SetSize sets the available size for the dashboard.
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

// syncAnimationTargets points every bar animation at the latest rollup
// values. A series with no readings today gets no animation entry at all,
// which is how the view knows to render the missing marker instead of a
// zero-length bar.
func (m *Model) syncAnimationTargets(now time.Time) (animating bool) {
	today := m.state.GetToday()
	if today == nil {
		return false
	}

	for animKey, value := range map[string]*float64{
		"today:mind":    today.Mind,
		"today:body":    today.Body,
		"today:blended": today.Blended,
	} {
		if value == nil {
			continue
		}
		anim, ok := m.animations[animKey]
		if !ok {
			anim = &AnimationState{StartTime: now}
			m.animations[animKey] = anim
		}
		if anim.retarget(*value, now) {
			animating = true
		}
	}

	return animating
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextEntry,
		m.keys.PrevEntry,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextEntry, m.keys.PrevEntry},
		{m.keys.FirstEntry, m.keys.LastEntry},
		{m.keys.Refresh},
	}
}
