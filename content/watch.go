package content

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of filesystem events most editors
// fire for a single save.
const reloadDebounce = 100 * time.Millisecond

// hotReloadable reports whether a changed file is boss/enemy content the
// encounter should rebuild from: a YAML descriptor or an effect script.
func hotReloadable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}

// Watcher reports on-disk changes to encounter content so a running
// arena can rebuild its boss without restarting.
type Watcher struct {
	Events chan string
	Errors chan error

	fs         *fsnotify.Watcher
	lastReport map[string]time.Time
	done       chan struct{}
	closeOnce  sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Events:     make(chan string, 16),
		Errors:     make(chan error, 1),
		fs:         fs,
		lastReport: make(map[string]time.Time),
		done:       make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.Events <- event.Name
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.done:
			return
		}
	}
}

// relevant filters an event down to a debounced content change.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}
	if !hotReloadable(event.Name) {
		return false
	}
	now := time.Now()
	if now.Sub(w.lastReport[event.Name]) < reloadDebounce {
		return false
	}
	w.lastReport[event.Name] = now
	return true
}
