package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of filesystem events an editor
// produces on save into a single reload.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the configuration when its file changes on disk.
type Watcher struct {
	path    string
	onLoad  func(Config)
	onError func(error)

	watcher *fsnotify.Watcher

	closeOnce sync.Once
	closeCh   chan struct{}
	doneWg    sync.WaitGroup
}

// NewWatcher watches the config file at path and calls onLoad with each
// successfully reloaded configuration. Reload failures go to onError and
// watching continues. Editors commonly replace a file on save rather
// than writing it in place, so the parent directory is watched and
// events are filtered by name.
func NewWatcher(path string, onLoad func(Config), onError func(error)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    absPath,
		onLoad:  onLoad,
		onError: onError,
		watcher: fsw,
		closeCh: make(chan struct{}),
	}

	w.doneWg.Add(1)
	go w.loop()

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.doneWg.Wait()
	})
	return err
}

// loop handles incoming fsnotify events.
func (w *Watcher) loop() {
	defer w.doneWg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				fire = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-fire:
				default:
				}
			}
			timer.Reset(reloadDebounce)

		case <-fire:
			timer = nil
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// reload re-runs the full layered load so environment overrides stay
// applied on top of the changed file.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	if w.onLoad != nil {
		w.onLoad(cfg)
	}
}
