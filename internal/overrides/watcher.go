package overrides

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ratectl/pkg/logging"
)

// DefaultDebounceInterval is how long the watcher waits after the last
// change before reloading.
const DefaultDebounceInterval = 300 * time.Millisecond

// DefaultPollInterval is used when fsnotify cannot watch the directory.
const DefaultPollInterval = 2 * time.Second

// WatcherConfig holds configuration for the mode file watcher.
type WatcherConfig struct {
	// Path is the mode file on the local filesystem.
	Path string

	Debounce     time.Duration
	PollInterval time.Duration

	// OnChange is called once per burst of changes.
	OnChange func()
}

// Watcher reloads the mode file when it changes on disk. It only applies
// when ratectl runs on the device itself, so the file is local.
type Watcher struct {
	mu sync.Mutex

	config    WatcherConfig
	fsWatcher *fsnotify.Watcher
	stopCh    chan struct{}
	running   bool

	lastModTime time.Time

	debounceTimer *time.Timer
	debounceMu    sync.Mutex
}

// NewWatcher creates a watcher; call Start to begin.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = DefaultDebounceInterval
	}
	if config.PollInterval == 0 {
		config.PollInterval = DefaultPollInterval
	}
	return &Watcher{config: config}
}

// Start begins watching. The parent directory is watched rather than the
// file so that replace-by-rename writes are still seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.stopCh = make(chan struct{})
	w.running = true

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("Overrides", "fsnotify not available, falling back to polling: %v", err)
		go w.poll()
		return nil
	}

	dir := filepath.Dir(w.config.Path)
	if err := watcher.Add(dir); err != nil {
		logging.Warn("Overrides", "Failed to watch %s, falling back to polling: %v", dir, err)
		watcher.Close()
		go w.poll()
		return nil
	}
	w.fsWatcher = watcher

	go w.processEvents(watcher.Events, watcher.Errors)

	logging.Info("Overrides", "Watching %s for changes", w.config.Path)
	return nil
}

func (w *Watcher) processEvents(eventsCh <-chan fsnotify.Event, errorsCh <-chan error) {
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			logging.Error("Overrides", err, "fsnotify error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != filepath.Base(w.config.Path) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	logging.Debug("Overrides", "Mode file changed: %s", event.Op)
	w.triggerDebounced()
}

func (w *Watcher) triggerDebounced() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.config.Debounce, func() {
		w.mu.Lock()
		running := w.running
		callback := w.config.OnChange
		w.mu.Unlock()

		if running && callback != nil {
			callback()
		}
	})
}

func (w *Watcher) poll() {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	w.changed()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.changed() {
				w.triggerDebounced()
			}
		}
	}
}

// changed reports whether the file's mtime moved since the last check.
func (w *Watcher) changed() bool {
	info, err := os.Stat(w.config.Path)
	if err != nil {
		return false
	}
	mod := info.ModTime()
	prev := w.lastModTime
	w.lastModTime = mod
	return !prev.IsZero() && mod.After(prev)
}

// Stop stops watching and cancels any pending reload.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMu.Unlock()

	if w.fsWatcher != nil {
		if err := w.fsWatcher.Close(); err != nil {
			logging.Warn("Overrides", "Error closing fsnotify watcher: %v", err)
		}
		w.fsWatcher = nil
	}
	return nil
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
