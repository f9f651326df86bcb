package info

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-sarratt/moodline-tui/internal/app"
	"github.com/m-sarratt/moodline-tui/internal/config"
	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/services"
)

func f64(v float64) *float64 {
	return &v
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), &config.Config{}, nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init_NoServices(t *testing.T) {
	m := New(app.NewState(), &config.Config{}, nil)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() should return the store info loader")
	}
	msg, ok := cmd().(storeInfoMsg)
	if !ok {
		t.Fatalf("expected storeInfoMsg, got %T", cmd())
	}
	if msg.stats != nil {
		t.Error("loader without services should return empty info")
	}
}

func TestModel_LoadStoreInfo(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{
		DatabasePath: filepath.Join(tmpDir, "test.db"),
		InboxPath:    filepath.Join(tmpDir, "inbox"),
	}
	mgr, err := services.NewManager(cfg)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer mgr.Close()

	entry := models.MoodEntry{
		ID:         "i-1",
		CreatedAt:  time.Now().UTC(),
		MindEnergy: f64(55),
		Note:       "store card test",
	}
	if err := mgr.Entries().Record(entry); err != nil {
		t.Fatalf("Failed to seed entry: %v", err)
	}

	m := New(app.NewState(), cfg, mgr)
	m.SetSize(100, 40)

	msg := m.Init()()
	loaded, ok := msg.(storeInfoMsg)
	if !ok {
		t.Fatalf("initial load returned %T, want storeInfoMsg", msg)
	}
	if loaded.stats == nil || loaded.stats.TotalEntries != 1 {
		t.Fatalf("stats = %+v, want 1 entry", loaded.stats)
	}
	if loaded.stats.EntriesWithNote != 1 {
		t.Errorf("EntriesWithNote = %d, want 1", loaded.stats.EntriesWithNote)
	}

	m.Update(loaded)

	view := m.View()
	for _, want := range []string{"Store", "Check-ins", "Days Tracked", "About Moodline"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_Update_IgnoresFailedLoad(t *testing.T) {
	m := New(app.NewState(), &config.Config{}, nil)

	stats := &models.StoreStats{TotalEntries: 3}
	m.Update(storeInfoMsg{stats: stats})
	if m.store == nil {
		t.Fatal("successful load should store the stats")
	}

	m.Update(storeInfoMsg{err: errFake})
	if m.store == nil || m.store.TotalEntries != 3 {
		t.Error("failed reload should keep the previous stats")
	}
}

var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "fake" }

func TestModel_RefreshKey(t *testing.T) {
	m := New(app.NewState(), &config.Config{}, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Error("'r' should reload the store info")
	}
}

func TestModel_View_Config(t *testing.T) {
	cfg := &config.Config{
		DatabasePath:         "/tmp/moodline.db",
		InboxPath:            "/tmp/inbox",
		LogPath:              "/tmp/moodline.log",
		StatsRefreshInterval: 30 * time.Second,
		NotificationsEnabled: true,
	}
	m := New(app.NewState(), cfg, nil)
	m.SetSize(80, 24)

	view := m.View()
	for _, want := range []string{"Configuration", "/tmp/moodline.db", "/tmp/inbox", "30s", "on"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_View_EmptyStore(t *testing.T) {
	m := New(app.NewState(), &config.Config{}, nil)
	m.SetSize(80, 24)

	if !strings.Contains(m.View(), "No check-ins recorded yet") {
		t.Error("empty store should show the empty state")
	}
}

func TestModel_SetSize(t *testing.T) {
	m := New(app.NewState(), &config.Config{}, nil)
	m.SetSize(100, 50)
	if m.width != 100 || m.height != 50 {
		t.Errorf("SetSize stored %dx%d, want 100x50", m.width, m.height)
	}
}

func TestModel_Focused(t *testing.T) {
	m := New(app.NewState(), &config.Config{}, nil)
	if m.Focused() {
		t.Error("info never captures text input")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), &config.Config{}, nil)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
