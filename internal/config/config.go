// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath         string
	InboxPath            string
	LogPath              string
	StatsRefreshInterval time.Duration
	NotificationsEnabled bool
}

const defaultStatsRefreshInterval = 30 * time.Second

// Load reads the first .env file found along the search path, then
// resolves every setting from the environment with sensible defaults
// under ~/.config/moodline. Directories used by the resulting paths
// are created up front.
func Load() (*Config, error) {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DatabasePath:         getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		InboxPath:            getEnvString("INBOX_PATH", getDefaultInboxPath()),
		LogPath:              getEnvString("LOG_PATH", getDefaultLogPath()),
		StatsRefreshInterval: getEnvDuration("STATS_REFRESH_INTERVAL", defaultStatsRefreshInterval),
		NotificationsEnabled: getEnvBool("NOTIFICATIONS_ENABLED", true),
	}

	for _, p := range []string{cfg.DatabasePath, cfg.InboxPath, cfg.LogPath} {
		if err := ensureDir(filepath.Dir(p)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// getEnvPaths lists the .env locations in search order: the working
// directory, the user config locations, then two parent directories so
// a checkout root .env is picked up during development.
func getEnvPaths() []string {
	var paths []string

	cwd, cwdErr := os.Getwd()
	if cwdErr == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "moodline", ".env"),
			filepath.Join(home, ".moodline", ".env"),
		)
	}

	if cwdErr == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths,
			filepath.Join(parent, ".env"),
			filepath.Join(filepath.Dir(parent), ".env"),
		)
	}

	return paths
}

// configHome resolves ~/.config/moodline, or "" when the home
// directory is unknown so callers fall back to relative paths.
func configHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "moodline")
}

func getDefaultDatabasePath() string {
	if dir := configHome(); dir != "" {
		return filepath.Join(dir, "moodline.db")
	}
	return "moodline.db"
}

func getDefaultInboxPath() string {
	if dir := configHome(); dir != "" {
		return filepath.Join(dir, "checkins.json")
	}
	return "checkins.json"
}

func getDefaultLogPath() string {
	if dir := configHome(); dir != "" {
		return filepath.Join(dir, "mlt.log")
	}
	return "mlt.log"
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("30s", "1m") plus bare
// integers, which are read as seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
