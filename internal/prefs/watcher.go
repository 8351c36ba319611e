package prefs

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/pomotrack/pomotrack/internal/util"
)

// Watcher reloads the preferences file whenever it changes on disk, so
// a volume or theme change takes effect while the timer keeps running.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	updates chan Prefs
}

// NewWatcher starts watching the preferences file at path. The parent
// directory is watched so edits that replace the file are seen too.
func NewWatcher(path string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: watcher,
		path:    path,
		updates: make(chan Prefs, 8),
	}
	go w.processEvents()

	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			p, err := Load(w.path)
			if err != nil {
				util.LogWarnf("Could not reload preferences: %v", err)
				continue
			}
			select {
			case w.updates <- p:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Preferences watch error: " + err.Error())
		}
	}
}

// Updates delivers each successfully reloaded preference set
func (w *Watcher) Updates() <-chan Prefs {
	return w.updates
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
