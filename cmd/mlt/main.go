// Package main is the entry point for the Moodline TUI application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/m-sarratt/moodline-tui/internal/app"
	"github.com/m-sarratt/moodline-tui/internal/config"
	"github.com/m-sarratt/moodline-tui/internal/logger"
	"github.com/m-sarratt/moodline-tui/internal/services"
	"github.com/m-sarratt/moodline-tui/internal/ui/tabs/dashboard"
	"github.com/m-sarratt/moodline-tui/internal/ui/tabs/info"
	"github.com/m-sarratt/moodline-tui/internal/ui/tabs/journal"
	"github.com/m-sarratt/moodline-tui/internal/ui/tabs/trends"
	"github.com/m-sarratt/moodline-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			return
		case "-h", "--help":
			printUsage()
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to a file so they stay off the alternate screen.
	if err := logger.UseFile(cfg.LogPath); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logger.Info("starting moodline", "version", version.GetVersion())

	// Opens the store and starts the inbox watcher and stats refresher.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			logger.Error("error closing services", "error", closeErr)
		}
	}()

	// Every tab renders from the same shared state; the root model routes
	// messages between them.
	model := app.NewModel(svcManager)
	state := model.GetState()
	model.SetTabs([]app.Tab{
		dashboard.New(state),
		trends.New(state, svcManager),
		journal.New(state),
		info.New(state, cfg, svcManager),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// SIGINT/SIGTERM become a normal quit so the deferred cleanup runs.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`Moodline TUI - Mind and body energy journal for the terminal

Usage:
  mlt [flags]

Flags:
  -h, --help      Print this help and exit
  -v, --version   Print version details and exit

Keyboard Shortcuts:
  1-4             Switch between tabs (Dashboard, Trends, Journal, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  a               Add a check-in (Journal tab)
  t               Cycle the time range (Trends tab)
  Enter           Select or confirm
  r               Drain the inbox and refresh
  ?               Toggle the help overlay
  q, Ctrl+C       Quit

Environment Variables:
  DATABASE_PATH           SQLite database path
  INBOX_PATH              Check-in inbox file or directory to watch
  LOG_PATH                Log file path
  STATS_REFRESH_INTERVAL  Store stats refresh interval (default: 30s)
  NOTIFICATIONS_ENABLED   Desktop notifications for streaks (default: true)

Configuration:
  Settings are read from the first .env file found in:
  - Current directory
  - ~/.config/moodline/.env
  - ~/.moodline/.env

For more information, visit: https://github.com/m-sarratt/moodline-tui`)
}
