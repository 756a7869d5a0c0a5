package persistence

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"skyscope/internal/logging"
)

// SettingsWatcher watches settings.txt for external edits (e.g. a hand
// edit while the process is running) and reloads it, invoking onReload
// with the new Settings.
type SettingsWatcher struct {
	log      *slog.Logger
	watcher  *fsnotify.Watcher
	path     string
	onReload func(Settings)
	done     chan struct{}
}

// NewSettingsWatcher starts watching path. onReload is called from the
// watcher's internal goroutine on every write/create event, after the
// file has been successfully reloaded.
func NewSettingsWatcher(log *slog.Logger, path string, onReload func(Settings)) (*SettingsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	sw := &SettingsWatcher{log: log, watcher: w, path: path, onReload: onReload, done: make(chan struct{})}
	go sw.run()
	return sw, nil
}

func (sw *SettingsWatcher) run() {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settings, err := LoadSettings(sw.path)
			if err != nil {
				logging.LogPersistenceError(sw.log, "reload settings", err)
				continue
			}
			sw.onReload(settings)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			logging.LogPersistenceError(sw.log, "watch settings", err)
		case <-sw.done:
			return
		}
	}
}

// Close stops the watcher.
func (sw *SettingsWatcher) Close() error {
	close(sw.done)
	return sw.watcher.Close()
}
