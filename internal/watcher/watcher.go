// file: internal/watcher/watcher.go
// version: 1.0.0
// guid: 1b3c5d7e-9f0a-4b2c-8d4e-6f8a0b1c3d5e

package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default settle period before the callback fires.
const DefaultDebounce = 2 * time.Second

// Callback is invoked after file events settle, with the watched path.
type Callback func(path string)

// Watcher monitors a single data file for changes and invokes a callback
// after a debounce period, so editors that write in several events only
// trigger one reload.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	callback  Callback
	stop      chan struct{}
	stopped   chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	running bool
}

// New creates a Watcher. Pass 0 for debounce to use DefaultDebounce.
func New(callback Callback, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		debounce: debounce,
		callback: callback,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins watching path. The parent directory is watched rather than
// the file itself so atomic rename-into-place saves are seen.
func (w *Watcher) Start(path string) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		w.reset()
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.reset()
		return err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		w.reset()
		return err
	}
	w.fsWatcher = fsw
	w.path = abs

	go w.eventLoop()
	return nil
}

// Stop halts the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stop)
	<-w.stopped
}

// reset clears the running flag after a failed Start so a later retry
// is not a silent no-op.
func (w *Watcher) reset() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)
	defer w.fsWatcher.Close()

	for {
		select {
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.scheduleCallback()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[WARN] watcher error: %v", err)
		case <-w.stop:
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Name != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

func (w *Watcher) scheduleCallback() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.callback(w.path)
	})
}
