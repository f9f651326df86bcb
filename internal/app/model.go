// Package app holds the root Bubble Tea model, the shared state tabs
// render from, and the shell-level commands and messages.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services"
	"github.com/m-sarratt/moodline-tui/internal/ui/styles"
)

// TabID identifies one of the four fixed tabs.
type TabID int

const (
	// TabDashboard shows today at a glance.
	TabDashboard TabID = iota
	// TabTrends shows charts over a selectable time range.
	TabTrends
	// TabJournal lists check-ins and hosts the quick-add form.
	TabJournal
	// TabInfo shows configuration and store totals.
	TabInfo

	tabCount = 4
)

var tabNames = [tabCount]string{"Dashboard", "Trends", "Journal", "Info"}

// String returns the tab's display name.
func (t TabID) String() string {
	if t < 0 || int(t) >= tabCount {
		return "Unknown"
	}
	return tabNames[t]
}

// Tab is the contract every tab fulfills toward the app shell.
type Tab interface {
	// Init returns the tab's startup commands.
	Init() tea.Cmd

	// Update handles a message and returns the updated tab plus any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize tells the tab how much room it has below the navbar.
	SetSize(width, height int)

	// Focused reports whether the tab is capturing text input. While
	// focused, single-key global bindings are suspended.
	Focused() bool

	// ShortHelp lists the tab's most useful bindings for the help overlay.
	ShortHelp() []key.Binding

	// FullHelp lists every binding the tab responds to.
	FullHelp() [][]key.Binding
}

// KeyMap holds the shell-level keybindings. Tabs carry their own maps
// for tab-local keys.
type KeyMap struct {
	Tabs    [tabCount]key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Escape  key.Binding
}

// DefaultKeyMap returns the default shell keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
	for i := range km.Tabs {
		digit := fmt.Sprintf("%d", i+1)
		km.Tabs[i] = key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, strings.ToLower(TabID(i).String())),
		)
	}
	return km
}

// ShortHelp lists the shell bindings worth showing inline.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp lists every shell binding, grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Tabs[:],
		{k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.Enter, k.Escape},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Styles holds the shell chrome styles: navbar, toasts, help modal.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	Content lipgloss.Style
	Toast   lipgloss.Style

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default shell styles.
func DefaultStyles() Styles {
	var (
		dim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
		accent  = lipgloss.AdaptiveColor{Light: "#7C5CBF", Dark: "#9A7FD1"}
		good    = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#2EC98F"}
		caution = lipgloss.AdaptiveColor{Light: "#D78700", Dark: "#FFAF3F"}
		bad     = lipgloss.AdaptiveColor{Light: "#D7005F", Dark: "#FF6B9D"}
		note    = lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}
	)

	return Styles{
		TabBar: lipgloss.NewStyle().Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(dim),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 2),
		InactiveTab: lipgloss.NewStyle().Foreground(dim).Padding(0, 2),

		NotificationSuccess: lipgloss.NewStyle().Foreground(good).Padding(0, 1),
		NotificationError:   lipgloss.NewStyle().Foreground(bad).Bold(true).Padding(0, 1),
		NotificationWarning: lipgloss.NewStyle().Foreground(caution).Padding(0, 1),
		NotificationInfo:    lipgloss.NewStyle().Foreground(note).Padding(0, 1),

		Content: lipgloss.NewStyle().Padding(1, 2),
		Toast:   styles.ToastStyle,

		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtle:    lipgloss.NewStyle().Foreground(dim),
		Highlight: lipgloss.NewStyle().Foreground(accent),
	}
}

// Model is the root Bubble Tea model: it owns the navbar, routes
// messages to the active tab, and overlays toasts and the help modal.
type Model struct {
	activeTab TabID
	tabs      []Tab

	state    *State
	commands *Commands
	services *services.Manager

	keymap KeyMap
	styles Styles

	spinner spinner.Model

	width  int
	height int

	showHelp bool
	ready    bool

	eventCh chan services.ServiceEvent
}

// NewModel builds the root model. Tabs are attached afterwards via
// SetTabs because each tab wants the shared state this constructor
// creates.
func NewModel(mgr *services.Manager) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		activeTab: TabDashboard,
		tabs:      make([]Tab, tabCount),
		state:     NewState(),
		services:  mgr,
		commands:  NewCommands(mgr),
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   sp,
	}
}

// SetTabs attaches the tab implementations.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.resizeTabs()
	}
}

// GetState returns the shared application state.
func (m *Model) GetState() *State {
	return m.state
}

// Init starts the spinner, the expiry tick, the service subscription,
// the initial data load, and every tab.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Loading...")

	cmds := []tea.Cmd{m.spinner.Tick, defaultTickCmd()}
	if m.services != nil {
		cmds = append(cmds,
			subscribeToServicesCmd(m.services),
			loadInitialData(m.services),
		)
	}
	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Update handles shell-level messages, then forwards the message to the
// active tab so tabs always see what the shell saw.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resizeTabs()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())

	case SubscriptionEventMsg:
		m.eventCh = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventCh))

	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventCh != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventCh))
		}

	case InsightsLoadedMsg:
		m.state.SetLoading("initial", false)
		m.state.SetLoading("insights", false)
		m.state.SetHistory(msg.History)
		m.state.SetStats(msg.Stats)
		m.settleLoading()

	case HistoryLoadedMsg:
		// Ranged views belong to the trends tab; only the all-time view is shared
		if msg.History != nil && msg.History.TimeRange == models.TimeRangeAllTime {
			m.state.SetHistory(msg.History)
		}

	case RecentEntriesMsg:
		m.state.SetLoading("entries", false)
		m.state.SetRecent(msg.Entries)
		m.settleLoading()

	case TodayLoadedMsg:
		m.state.SetToday(msg.Day)

	case StatsLoadedMsg:
		m.state.SetLoading("stats", false)
		m.state.SetStats(msg.Stats)

	case RecordEntryMsg:
		cmds = append(cmds, recordEntryCmd(m.services, msg.Entry))
	case RecordEntryResultMsg:
		cmds = append(cmds, m.handleRecordEntryResult(msg)...)

	case DeleteEntryMsg:
		cmds = append(cmds, deleteEntryCmd(m.services, msg.ID))
	case DeleteEntryResultMsg:
		cmds = append(cmds, m.handleDeleteEntryResult(msg)...)

	case ImportInboxMsg:
		cmds = append(cmds, importInboxCmd(m.services))
	case ImportInboxResultMsg:
		cmds = append(cmds, m.handleImportInboxResult(msg)...)

	case ExportMsg:
		cmds = append(cmds, exportEntriesCmd(m.services, msg.Path))
	case ExportResultMsg:
		cmds = append(cmds, m.handleExportResult(msg)...)

	case SelectedEntryChangedMsg:
		m.state.SetSelectedEntryIndex(msg.Index)

	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()

	case StartLoadingMsg:
		m.state.SetLoading(msg.Resource, true)
		m.state.SetLoadingNotification("Refreshing...")
	case StopLoadingMsg:
		m.state.SetLoading(msg.Resource, false)
		m.settleLoading()

	case RangeChangedMsg:
		cmds = append(cmds, notifyInfoCmd(fmt.Sprintf("Time range: %s", msg.Range.String())))

	case ErrorMsg:
		cmds = append(cmds, m.handleError(msg)...)

	case RefreshMsg:
		cmds = append(cmds, m.handleRefresh(msg)...)

	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.resizeTabs()

	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}

	cmds = append(cmds, m.forwardToActiveTab(msg))

	return m, tea.Batch(cmds...)
}

// settleLoading drops the loading toast once nothing is in flight.
func (m *Model) settleLoading() {
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

func (m *Model) handleRecordEntryResult(msg RecordEntryResultMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if msg.Success {
		cmds = append(cmds, notifySuccessCmd("Check-in recorded"))
	} else {
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Failed to record check-in: %v", msg.Error)))
	}
	if m.services != nil {
		cmds = append(cmds, loadRecentCmd(m.services), loadTodayCmd(m.services))
	}
	return cmds
}

func (m *Model) handleDeleteEntryResult(msg DeleteEntryResultMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if msg.Success {
		cmds = append(cmds, notifySuccessCmd("Check-in deleted"))
		if m.services != nil {
			cmds = append(cmds, loadRecentCmd(m.services), loadTodayCmd(m.services))
		}
	} else {
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Failed to delete check-in: %v", msg.Error)))
	}
	return cmds
}

func (m *Model) handleImportInboxResult(msg ImportInboxResultMsg) []tea.Cmd {
	switch {
	case msg.Error != nil:
		return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Inbox import failed: %v", msg.Error))}
	case msg.Imported > 0:
		return []tea.Cmd{notifySuccessCmd(fmt.Sprintf("Imported %d new check-in(s)", msg.Imported))}
	default:
		return []tea.Cmd{notifyInfoCmd("Inbox is empty")}
	}
}

func (m *Model) handleExportResult(msg ExportResultMsg) []tea.Cmd {
	if msg.Success {
		return []tea.Cmd{notifySuccessCmd(fmt.Sprintf("Exported %d check-ins to %s", msg.Count, msg.Path))}
	}
	return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Export failed: %v", msg.Error))}
}

// handleError clears the loading flag for the failed resource so a dead
// load cannot leave the spinner running.
func (m *Model) handleError(msg ErrorMsg) []tea.Cmd {
	switch msg.Context {
	case "insights":
		m.state.SetLoading("initial", false)
		m.state.SetLoading("insights", false)
	case "entries", "today":
		m.state.SetLoading("entries", false)
	case "stats":
		m.state.SetLoading("stats", false)
	}
	m.settleLoading()
	return []tea.Cmd{notifyErrorCmd(msg.Error.Error())}
}

func (m *Model) handleRefresh(msg RefreshMsg) []tea.Cmd {
	if m.services == nil {
		return nil
	}

	cmds := []tea.Cmd{func() tea.Msg { return StartLoadingMsg{Resource: msg.Resource} }}
	switch msg.Resource {
	case "all":
		cmds = append(cmds, importInboxCmd(m.services), loadInitialData(m.services))
	case "entries":
		cmds = append(cmds, loadRecentCmd(m.services))
	case "insights":
		cmds = append(cmds, loadInsightsCmd(m.services))
	case "stats":
		cmds = append(cmds, loadStatsCmd(m.services))
	}
	return cmds
}

// switchTabCmd routes tab changes through TabSwitchMsg so the newly
// active tab sees the switch and can refresh itself.
func switchTabCmd(tab TabID) tea.Cmd {
	return func() tea.Msg {
		return TabSwitchMsg{Tab: tab}
	}
}

// currentTab returns the active tab, or nil when the slot is empty.
func (m *Model) currentTab() Tab {
	if int(m.activeTab) >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.activeTab]
}

func (m *Model) forwardToActiveTab(msg tea.Msg) tea.Cmd {
	tab := m.currentTab()
	if tab == nil {
		return nil
	}
	var cmd tea.Cmd
	m.tabs[m.activeTab], cmd = tab.Update(msg)
	return cmd
}

// resizeTabs hands every tab the window minus the chrome rows.
func (m *Model) resizeTabs() {
	contentHeight := max(0, m.height-5)
	for _, tab := range m.tabs {
		if tab == nil {
			continue
		}
		tab.SetSize(m.width, contentHeight)
	}
}

// activeTabFocused reports whether the active tab is capturing text input.
func (m *Model) activeTabFocused() bool {
	tab := m.currentTab()
	return tab != nil && tab.Focused()
}

// handleKeyMsg handles shell-level keyboard input. Keys the shell does
// not claim fall through to the active tab.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// While a tab captures text, only hard bindings apply
	if m.activeTabFocused() {
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, m.keymap.NextTab), key.Matches(msg, m.keymap.PrevTab):
		if m.showHelp {
			return nil
		}
		step := 1
		if key.Matches(msg, m.keymap.PrevTab) {
			step = len(m.tabs) - 1
		}
		return switchTabCmd(TabID((int(m.activeTab) + step) % len(m.tabs)))

	case key.Matches(msg, m.keymap.Refresh):
		if m.services == nil {
			return nil
		}
		return func() tea.Msg { return RefreshMsg{Resource: "all"} }

	case key.Matches(msg, m.keymap.Escape):
		m.showHelp = false
		return nil
	}

	for i := range m.keymap.Tabs {
		if key.Matches(msg, m.keymap.Tabs[i]) {
			return switchTabCmd(TabID(i))
		}
	}
	return nil
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.EntriesChangedEvent:
		var cmds []tea.Cmd
		if e.Imported > 0 {
			cmds = append(cmds, notifyInfoCmd(fmt.Sprintf("Imported %d new check-in(s)", e.Imported)))
		}
		if m.services != nil {
			cmds = append(cmds, loadRecentCmd(m.services), loadTodayCmd(m.services))
		}
		return tea.Batch(cmds...)

	case services.EntryRecordedEvent, services.EntryDeletedEvent:
		if m.services != nil {
			return tea.Batch(loadRecentCmd(m.services), loadTodayCmd(m.services))
		}

	case services.InsightsUpdatedEvent:
		m.state.SetHistory(e.Stats)

	case services.StatsEvent:
		m.state.SetStats(e)

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

// View renders the navbar, the active tab, and any overlays.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderTabBar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(m.spinner.View() + " Loading..."))
		return b.String()
	}

	if tab := m.currentTab(); tab != nil {
		b.WriteString(tab.View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	view := b.String()
	if m.showHelp {
		view = m.composeCentered(view, m.renderHelp())
	}
	if toasts := m.renderNotifications(); len(toasts) > 0 {
		view = m.composeToasts(view, toasts)
	}
	return view
}

// composeCentered splices an overlay block into the middle of the main
// view, cell-accurately, without disturbing styled text around it.
func (m *Model) composeCentered(mainView, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := lipgloss.Width(overlay)

	x := max(0, (m.width-overlayWidth)/2)
	y := max(0, (m.height-len(overlayLines))/2)

	for i, overlayLine := range overlayLines {
		row := y + i
		if row >= len(mainLines) {
			break
		}
		left := ansi.Truncate(mainLines[row], x, "")
		if pad := x - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(mainLines[row], x+overlayWidth, "")
		mainLines[row] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderTabBar() string {
	items := make([]string, 0, tabCount)
	for i := 0; i < tabCount; i++ {
		id := TabID(i)
		if id == m.activeTab {
			items = append(items, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, id)))
		} else {
			items = append(items, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, id)))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	return m.styles.TabBar.Width(m.width).Render(bar)
}

func (m *Model) renderNotifications() []string {
	var toasts []string
	for _, n := range m.state.GetNotifications() {
		var style lipgloss.Style
		var prefix string
		switch n.Type {
		case NotificationSuccess:
			style, prefix = m.styles.NotificationSuccess, "[OK]"
		case NotificationError:
			style, prefix = m.styles.NotificationError, "[ERR]"
		case NotificationWarning:
			style, prefix = m.styles.NotificationWarning, "[WARN]"
		case NotificationInfo:
			style, prefix = m.styles.NotificationInfo, "[INFO]"
		case NotificationLoading:
			style, prefix = m.styles.NotificationInfo, m.spinner.View()
		}
		toasts = append(toasts, m.styles.Toast.Render(style.Render(prefix+" "+n.Message)))
	}
	return toasts
}

// composeToasts stacks the toasts into the top-right corner of the view.
func (m *Model) composeToasts(mainView string, toasts []string) string {
	stack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	stackLines := strings.Split(stack, "\n")
	mainLines := strings.Split(mainView, "\n")

	x := max(0, m.width-lipgloss.Width(stack)-2)
	const y = 2

	for i, toastLine := range stackLines {
		row := y + i
		if row >= len(mainLines) {
			break
		}
		line := mainLines[row]
		if w := lipgloss.Width(line); w < x {
			mainLines[row] = line + strings.Repeat(" ", x-w) + toastLine
		} else {
			mainLines[row] = ansi.Truncate(line, x, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	section := func(title string, rows ...string) {
		b.WriteString(m.styles.Highlight.Render(title))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString(row)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	section("Navigation",
		"  1-4        Switch tabs",
		"  Tab        Next tab",
		"  Shift+Tab  Previous tab")
	section("Actions",
		"  r          Drain inbox and refresh",
		"  ?          Toggle help",
		"  q/Ctrl+C   Quit")
	section("Lists",
		"  j/k, ↑/↓   Move up/down",
		"  Enter      Select item")

	if tab := m.currentTab(); tab != nil {
		if tabHelp := tab.ShortHelp(); len(tabHelp) > 0 {
			rows := make([]string, 0, len(tabHelp))
			for _, binding := range tabHelp {
				rows = append(rows, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
			section(fmt.Sprintf("%s Tab", m.activeTab), rows...)
		}
	}

	b.WriteString(m.styles.Subtle.Render("Press ? or Esc to close"))
	return styles.HelpPanelStyle.Render(b.String())
}

func (m *Model) renderPlaceholder() string {
	note := m.styles.Subtle.Render("This tab is not yet implemented.")
	return m.styles.Content.Render(fmt.Sprintf("Tab %d: %s\n\n%s", m.activeTab+1, m.activeTab, note))
}
