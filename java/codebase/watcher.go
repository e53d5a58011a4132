package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileWatcher polls the codebase root and reparses source files whose
// modification time changed. OnChange is called after every reparse and,
// with a nil FileInfo, after a file disappeared. Skip, when set, excludes
// paths whose content is owned by someone else, such as an editor.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration
	modTimes     map[string]time.Time

	OnChange func(path string, info *FileInfo)
	Skip     func(path string) bool
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

// Stop ends polling. It may be called more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(w.codebase.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.codebase.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsSource(path) {
			return nil
		}

		currentFiles[path] = true
		if w.Skip != nil && w.Skip(path) {
			return nil
		}

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			if w.codebase.ScanFile(path) == nil {
				w.changed(path, w.codebase.GetFile(path))
			}
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.changed(path, nil)
		}
	}
}

func (w *FileWatcher) changed(path string, info *FileInfo) {
	if w.OnChange != nil {
		w.OnChange(path, info)
	}
}
