package entries

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/m-sarratt/moodline-tui/internal/logger"
)

// Changes land in bursts when a companion app rewrites the inbox, so
// imports wait for the writes to settle.
const debounceInterval = 100 * time.Millisecond

// startWatcher watches the inbox directory rather than the file itself,
// which keeps working when the file is replaced by rename.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.inboxPath)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}
	s.watcher = watcher

	go s.watchLoop()
	return nil
}

func (s *Service) watchLoop() {
	for {
		select {
		case <-s.stopChan:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if s.isInboxWrite(event) {
				s.scheduleImport()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})
		}
	}
}

// isInboxWrite reports whether a directory event touched the inbox file.
func (s *Service) isInboxWrite(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(s.inboxPath) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create)
}

func (s *Service) scheduleImport() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(debounceInterval, s.handleInboxChange)
}

// handleInboxChange drains the inbox after an external change. Draining
// rewrites the file, which fires the watcher once more; that pass finds
// an empty inbox and stops the cycle.
func (s *Service) handleInboxChange() {
	if _, _, err := s.ImportInbox(); err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
	}
}
