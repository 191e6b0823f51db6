package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	env       Env
	onChange  func(*Config)
	log       *slog.Logger
	done      chan struct{}

	reloadMu sync.Mutex
	startup  *Config // revision the bars were built from

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// Watch starts watching the file cfg was loaded from. onChange receives every
// successfully parsed revision; it runs on a background goroutine.
// The parent directory is watched rather than the file so that editors which
// save by rename keep being picked up.
func Watch(cfg *Config, log *slog.Logger, onChange func(*Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(cfg.Path()),
		env:       cfg.Env,
		startup:   cfg,
		onChange:  onChange,
		log:       log,
		done:      make(chan struct{}),
	}
	if err := fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}
	go w.processEvents()
	log.Debug("watching config", "path", w.path)
	return w, nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsWatcher.Close()
	w.debounceMu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounceMu.Unlock()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", "err", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Rename covers atomic saves (write tmp, rename onto target).
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()
	select {
	case <-w.done:
		return
	default:
	}
	cfg, err := load(w.path, w.env)
	if err != nil {
		w.log.Warn("config reload failed; keeping current settings", "path", w.path, "err", err)
		return
	}
	cfg.Env = w.env
	if w.env.LogLevel != "" {
		cfg.LogLevel = w.env.LogLevel
		cfg.normalizeLogLevel()
	}
	if keys := cfg.Undecoded(); len(keys) > 0 {
		w.log.Warn("config has unknown keys", "path", w.path, "keys", keys)
	}
	w.log.Info("config reloaded; log_level and request_timeout applied", "path", w.path)
	if keys := RestartKeys(w.startup, cfg); len(keys) > 0 {
		w.log.Warn("changed settings take effect after restart", "keys", keys)
	}
	w.onChange(cfg)
}

// RestartKeys lists the settings that differ between prev and next and are
// only read at startup.
func RestartKeys(prev, next *Config) []string {
	var keys []string
	if prev.TickInterval != next.TickInterval {
		keys = append(keys, "tick_interval")
	}
	if prev.CoalesceTicks != next.CoalesceTicks {
		keys = append(keys, "coalesce_ticks")
	}
	if prev.Clock != next.Clock {
		keys = append(keys, "clock")
	}
	if prev.Workspaces != next.Workspaces {
		keys = append(keys, "workspaces")
	}
	if prev.Theme != next.Theme {
		keys = append(keys, "theme")
	}
	return keys
}
