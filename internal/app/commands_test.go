package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-sarratt/moodline-tui/internal/models"
)

// Constructors that only wrap a tea.Cmd are checked for non-nil here;
// their message payloads are covered by the model tests.
func TestCommands_Constructors(t *testing.T) {
	cmds := NewCommands(nil)

	tests := []struct {
		name string
		cmd  tea.Cmd
	}{
		{"Tick", cmds.Tick(time.Millisecond)},
		{"DefaultTick", cmds.DefaultTick()},
		{"LoadInitialData", cmds.LoadInitialData()},
		{"LoadInsights", cmds.LoadInsights()},
		{"LoadHistory", cmds.LoadHistory(models.TimeRange7Days)},
		{"LoadRecent", cmds.LoadRecent()},
		{"LoadToday", cmds.LoadToday()},
		{"LoadStats", cmds.LoadStats()},
		{"ImportInbox", cmds.ImportInbox()},
		{"ExportEntries", cmds.ExportEntries("out.json")},
		{"RecordEntry", cmds.RecordEntry(models.MoodEntry{ID: "chk_1"})},
		{"DeleteEntry", cmds.DeleteEntry("chk_1")},
		{"ClearNotification", cmds.ClearNotification("id", time.Millisecond)},
		{"Batch", cmds.Batch(cmds.Quit(), cmds.NotifyInfo("test"))},
		{"Delayed", cmds.Delayed(time.Millisecond, RefreshMsg{Resource: "all"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cmd == nil {
				t.Errorf("%s returned nil command", tt.name)
			}
		})
	}
}

func TestCommands_Notifications(t *testing.T) {
	cmds := NewCommands(nil)

	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
	}{
		{"Success", cmds.NotifySuccess, NotificationSuccess},
		{"Error", cmds.NotifyError, NotificationError},
		{"Warning", cmds.NotifyWarning, NotificationWarning},
		{"Info", cmds.NotifyInfo, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
		})
	}
}

func TestCommands_Quit(t *testing.T) {
	cmds := NewCommands(nil)
	if msg := cmds.Quit()(); msg == nil {
		t.Fatal("Quit command returned nil message")
	} else if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("Expected QuitMsg, got %T", msg)
	}
}

func TestDefaultExportPath(t *testing.T) {
	got := defaultExportPath()
	want := "moodline-export-" + time.Now().Format("20060102") + ".json"
	if got != want {
		t.Errorf("defaultExportPath() = %q, want %q", got, want)
	}
}
