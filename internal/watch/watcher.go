// Package watch notices edits to the config file while a session runs.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"f3os/internal/errors"
	"f3os/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors produce on save
const DefaultDebounce = 150 * time.Millisecond

// Change is delivered once per settled edit of the watched file
type Change struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors one file. The parent directory is what fsnotify watches,
// so editors that replace the file on save are still seen.
type Watcher struct {
	path     string
	debounce time.Duration

	changes  chan Change
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
	stopped bool
}

// New creates a watcher for path. The file's directory must exist.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, "error accessing directory")
	}
	if !info.IsDir() {
		return nil, errors.Newf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to add directory %s to watcher", dir)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:      abs,
		debounce:  debounce,
		changes:   make(chan Change, 1),
		fsWatcher: fsWatcher,
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Changes returns the channel that delivers settled edits. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the event loop. A stopped watcher cannot be restarted.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errors.New("watcher already running")
	}
	if w.stopped {
		return errors.New("watcher was stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stopChan, w.done)
	log.LogWithFields(log.F("file", w.path)).Info("watching config file")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending fsnotify.Op
	)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			pending |= event.Op
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			change := Change{Path: w.path, Timestamp: time.Now(), Op: pending}
			pending = 0
			// Drop rather than block; one queued change already means "reload".
			select {
			case w.changes <- change:
			default:
				log.LogWithFields(log.F("file", w.path)).Debug("change already queued")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop halts the watcher and closes the Changes channel
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	<-w.done
	w.running = false
	w.stopped = true
	close(w.changes)
	log.Info("config watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
