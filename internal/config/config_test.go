package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_ENV_STRING", "test_value")

	if got := getEnvString("TEST_ENV_STRING", "default"); got != "test_value" {
		t.Errorf("getEnvString() = %q, want %q", got, "test_value")
	}
	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name   string
		envVal string
		want   time.Duration
	}{
		{"duration syntax", "1m", time.Minute},
		{"bare seconds", "60", 60 * time.Second},
		{"garbage falls back", "invalid", time.Second},
		{"unset falls back", "", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				t.Setenv("TEST_ENV_DURATION", tt.envVal)
			}
			if got := getEnvDuration("TEST_ENV_DURATION", time.Second); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name       string
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"true", "true", false, true},
		{"false", "false", true, false},
		{"numeric true", "1", false, true},
		{"garbage falls back", "maybe", true, true},
		{"unset falls back", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				t.Setenv("TEST_ENV_BOOL", tt.envVal)
			}
			if got := getEnvBool("TEST_ENV_BOOL", tt.defaultVal); got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("directory was not created: %v", err)
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	base := filepath.Join(home, ".config", "moodline")

	if got, want := getDefaultDatabasePath(), filepath.Join(base, "moodline.db"); got != want {
		t.Errorf("getDefaultDatabasePath() = %q, want %q", got, want)
	}
	if got, want := getDefaultInboxPath(), filepath.Join(base, "checkins.json"); got != want {
		t.Errorf("getDefaultInboxPath() = %q, want %q", got, want)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Fatal("getEnvPaths() returned empty list")
	}

	// The working directory's .env must always be a candidate.
	cwd, _ := os.Getwd()
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			return
		}
	}
	t.Error("getEnvPaths() missing current directory .env")
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "db.sqlite"))
	t.Setenv("INBOX_PATH", filepath.Join(tmpDir, "checkins.json"))
	t.Setenv("LOG_PATH", filepath.Join(tmpDir, "mlt.log"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if want := filepath.Join(tmpDir, "db.sqlite"); cfg.DatabasePath != want {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, want)
	}
	if cfg.StatsRefreshInterval != defaultStatsRefreshInterval {
		t.Errorf("StatsRefreshInterval = %v, want %v", cfg.StatsRefreshInterval, defaultStatsRefreshInterval)
	}
	if !cfg.NotificationsEnabled {
		t.Error("NotificationsEnabled should default to true")
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "custom.db")
	content := "DATABASE_PATH=" + dbPath + "\nNOTIFICATIONS_ENABLED=false"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Load picks up the .env in the working directory. godotenv writes
	// the file's values into the environment, so clear them afterwards.
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Chdir back failed: %v", err)
		}
	})
	os.Unsetenv("DATABASE_PATH")
	os.Unsetenv("NOTIFICATIONS_ENABLED")
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_PATH")
		os.Unsetenv("NOTIFICATIONS_ENABLED")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatabasePath != dbPath {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, dbPath)
	}
	if cfg.NotificationsEnabled {
		t.Error("NotificationsEnabled should be false from .env")
	}
}
