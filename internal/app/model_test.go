package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabDashboard {
		t.Error("Default tab should be Dashboard")
	}
	if len(model.tabs) != 4 {
		t.Errorf("Should have 4 tabs placeholder, got %d", len(model.tabs))
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	cmd := model.Init()
	if cmd == nil {
		t.Error("Init returned nil command")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)
	msg := tea.WindowSizeMsg{Width: 100, Height: 50}

	newModel, _ := model.Update(msg)

	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}

	if m.width != 100 {
		t.Errorf("Width = %d, want 100", m.width)
	}
	if m.height != 50 {
		t.Errorf("Height = %d, want 50", m.height)
	}
	if !m.ready {
		t.Error("Model should be ready after WindowSizeMsg")
	}
}

func TestModel_Update_TabSwitch(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 100
	model.height = 50

	// Test switching to Trends
	msg := TabSwitchMsg{Tab: TabTrends}
	newModel, _ := model.Update(msg)
	m := newModel.(*Model)

	if m.activeTab != TabTrends {
		t.Errorf("ActiveTab = %v, want Trends", m.activeTab)
	}

	// Key bindings route through TabSwitchMsg so the target tab sees the switch
	keyMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}}
	cmd := model.handleKeyMsg(keyMsg)
	if cmd == nil {
		t.Fatal("key '3' should emit a tab switch command")
	}
	model.Update(cmd())
	if model.activeTab != TabJournal {
		t.Errorf("ActiveTab = %v, want Journal after key '3'", model.activeTab)
	}

	keyMsg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}}
	cmd = model.handleKeyMsg(keyMsg)
	if cmd == nil {
		t.Fatal("key '4' should emit a tab switch command")
	}
	model.Update(cmd())
	if model.activeTab != TabInfo {
		t.Errorf("ActiveTab = %v, want Info after key '4'", model.activeTab)
	}

	// Tab cycles forward with wraparound
	keyMsg = tea.KeyMsg{Type: tea.KeyTab}
	cmd = model.handleKeyMsg(keyMsg)
	if cmd == nil {
		t.Fatal("tab key should emit a tab switch command")
	}
	model.Update(cmd())
	if model.activeTab != TabDashboard {
		t.Errorf("ActiveTab = %v, want Dashboard after wraparound", model.activeTab)
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	msg := TickMsg{Time: time.Now()}

	_, cmd := model.Update(msg)
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	// Not ready
	view := model.View()
	if !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	// Ready
	model.ready = true
	model.width = 80
	model.height = 24

	view = model.View()
	// Should show tabs
	if !strings.Contains(view, "Dashboard") {
		t.Error("View should show Dashboard tab")
	}
	if !strings.Contains(view, "Trends") {
		t.Error("View should show Trends tab")
	}
	// Should show placeholder since tabs are nil
	if !strings.Contains(view, "not yet implemented") {
		t.Error("View should show placeholder text")
	}
}

func TestModel_Help(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 80
	model.height = 24

	// Toggle help
	model.Update(ToggleHelpMsg{})
	if !model.showHelp {
		t.Error("showHelp should be true")
	}

	view := model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}

	// Toggle off via key
	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if model.showHelp {
		t.Error("showHelp should be false after toggle")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)

	msg := AddNotificationMsg{
		Message:  "Test Note",
		Type:     NotificationInfo,
		Duration: 0,
	}

	model.Update(msg)

	notifs := model.state.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}

	// Test rendering
	model.ready = true
	model.width = 80
	model.height = 24
	view := model.View()
	if !strings.Contains(view, "Test Note") {
		t.Error("View should show notification")
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	// Stats event
	stats := services.StatsEvent{EntryCount: 5, DaysTracked: 3}
	model.handleServiceEvent(stats)

	if model.state.GetStats().EntryCount != 5 {
		t.Error("Stats should be updated")
	}

	// Insights event
	history := &models.MoodHistoryStats{TimeRange: models.TimeRangeAllTime}
	model.handleServiceEvent(services.InsightsUpdatedEvent{Stats: history})
	if model.state.GetHistory() != history {
		t.Error("History should be updated")
	}

	// Entries changed with imports should raise a toast command
	cmd := model.handleServiceEvent(services.EntriesChangedEvent{Total: 3, Imported: 2})
	if cmd == nil {
		t.Error("EntriesChangedEvent with imports should trigger notification command")
	}

	// Error event
	errEvent := services.ErrorEvent{Service: "test", Error: nil}
	cmd = model.handleServiceEvent(errEvent)
	if cmd == nil {
		t.Error("Error event should trigger notification command")
	}
}

func TestModel_LoadingMessages(t *testing.T) {
	model := NewModel(nil)

	model.Update(StartLoadingMsg{Resource: "entries"})
	if !model.state.Loading.Entries {
		t.Error("StartLoadingMsg should raise the entries flag")
	}

	model.Update(StopLoadingMsg{Resource: "entries"})
	if model.state.Loading.Entries {
		t.Error("StopLoadingMsg should clear the entries flag")
	}
}

func TestModel_DataMessages(t *testing.T) {
	model := NewModel(nil)

	history := &models.MoodHistoryStats{TimeRange: models.TimeRangeAllTime}
	model.Update(InsightsLoadedMsg{History: history, Stats: services.StatsEvent{EntryCount: 1}})
	if model.state.GetHistory() != history {
		t.Error("InsightsLoadedMsg should store the history")
	}
	if model.state.GetStats().EntryCount != 1 {
		t.Error("InsightsLoadedMsg should store the stats")
	}
	if model.state.Loading.Initial {
		t.Error("InsightsLoadedMsg should settle the initial load")
	}

	model.Update(RecentEntriesMsg{Entries: []models.MoodEntry{{ID: "chk_1", CreatedAt: time.Now().UTC()}}})
	if model.state.GetEntryCount() != 1 {
		t.Error("RecentEntriesMsg should store the entries")
	}

	day := &models.DailyBucket{Date: "2025-06-15"}
	model.Update(TodayLoadedMsg{Day: day})
	if model.state.GetToday() != day {
		t.Error("TodayLoadedMsg should store today's rollup")
	}

	model.Update(StatsLoadedMsg{Stats: services.StatsEvent{EntryCount: 2}})
	if model.state.GetStats().EntryCount != 2 {
		t.Error("StatsLoadedMsg should store the stats")
	}
	if model.state.Loading.Stats {
		t.Error("StatsLoadedMsg should settle the stats load")
	}
}

// firstToast runs the first command in the slice and returns its
// AddNotificationMsg payload.
func firstToast(t *testing.T, cmds []tea.Cmd) AddNotificationMsg {
	t.Helper()
	if len(cmds) == 0 {
		t.Fatal("expected at least one command")
	}
	addMsg, ok := cmds[0]().(AddNotificationMsg)
	if !ok {
		t.Fatal("command should return AddNotificationMsg")
	}
	return addMsg
}

func TestModel_MutationResults(t *testing.T) {
	model := NewModel(nil)

	toast := firstToast(t, model.handleRecordEntryResult(RecordEntryResultMsg{Success: true}))
	if !strings.Contains(toast.Message, "recorded") {
		t.Errorf("record toast = %q, want mention of recorded", toast.Message)
	}

	toast = firstToast(t, model.handleRecordEntryResult(RecordEntryResultMsg{Error: errors.New("fail")}))
	if toast.Type != NotificationError {
		t.Error("failed record should raise an error toast")
	}

	toast = firstToast(t, model.handleDeleteEntryResult(DeleteEntryResultMsg{ID: "chk_1", Success: true}))
	if !strings.Contains(toast.Message, "deleted") {
		t.Errorf("delete toast = %q, want mention of deleted", toast.Message)
	}

	toast = firstToast(t, model.handleDeleteEntryResult(DeleteEntryResultMsg{ID: "chk_1", Error: errors.New("fail")}))
	if toast.Type != NotificationError {
		t.Error("failed delete should raise an error toast")
	}
}

func TestModel_ImportExportResults(t *testing.T) {
	model := NewModel(nil)

	toast := firstToast(t, model.handleImportInboxResult(ImportInboxResultMsg{Total: 3, Imported: 3}))
	if !strings.Contains(toast.Message, "Imported 3") {
		t.Errorf("import toast = %q, want mention of count", toast.Message)
	}

	toast = firstToast(t, model.handleImportInboxResult(ImportInboxResultMsg{}))
	if toast.Type != NotificationInfo {
		t.Error("empty import should raise an info toast")
	}

	toast = firstToast(t, model.handleImportInboxResult(ImportInboxResultMsg{Error: errors.New("bad inbox")}))
	if toast.Type != NotificationError {
		t.Error("failed import should raise an error toast")
	}

	toast = firstToast(t, model.handleExportResult(ExportResultMsg{Path: "out.json", Count: 5, Success: true}))
	if !strings.Contains(toast.Message, "out.json") {
		t.Errorf("export toast = %q, want mention of path", toast.Message)
	}
}

func TestModel_RefreshAndToastMessages(t *testing.T) {
	model := NewModel(nil)

	// services is nil, so these only need to not panic.
	for _, resource := range []string{"all", "entries", "insights", "stats"} {
		model.Update(RefreshMsg{Resource: resource})
	}

	model.Update(AddNotificationMsg{Message: "test", Type: NotificationInfo})
	if len(model.state.GetNotifications()) != 1 {
		t.Error("AddNotificationMsg should add a toast")
	}
	model.Update(RemoveNotificationMsg{ID: "nonexistent"})
	model.Update(ClearExpiredNotificationsMsg{})
}

func TestModel_FocusedTabSuspendsGlobalKeys(t *testing.T) {
	model := NewModel(nil)
	model.SetTabs([]Tab{&stubTab{focused: true}, nil, nil, nil})

	// 'q' must not quit while the tab captures input
	cmd := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		t.Error("Global keys should be suspended while a tab is focused")
	}

	// ctrl+c always quits
	cmd = model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should quit even while focused")
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	// Spinner tick returns a command
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

// stubTab is a minimal Tab used to exercise focus handling.
type stubTab struct {
	focused bool
}

func (s *stubTab) Init() tea.Cmd                 { return nil }
func (s *stubTab) Update(tea.Msg) (Tab, tea.Cmd) { return s, nil }
func (s *stubTab) View() string                  { return "" }
func (s *stubTab) SetSize(int, int)              {}
func (s *stubTab) Focused() bool                 { return s.focused }
func (s *stubTab) ShortHelp() []key.Binding      { return nil }
func (s *stubTab) FullHelp() [][]key.Binding     { return nil }

func TestTabID_String(t *testing.T) {
	tests := []struct {
		id   TabID
		want string
	}{
		{TabDashboard, "Dashboard"},
		{TabTrends, "Trends"},
		{TabJournal, "Journal"},
		{TabInfo, "Info"},
		{TabID(999), "Unknown"},
		{TabID(-1), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	// Just check it doesn't panic and returns something
	_ = s
}
