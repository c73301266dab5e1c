package dataset

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change represents a settled modification to a domain data file.
type Change struct {
	File string // Absolute path
}

// Watcher monitors a dataset directory for domain file changes using
// fsnotify. Editors produce bursts of write events; changes are debounced so
// one save triggers one revalidation.
type Watcher struct {
	Dir     string
	Changes <-chan Change // Read-only external channel

	files   map[string]bool // basenames of registered domain files
	changes chan Change     // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given dataset directory. Only the
// named domain files are reported; editor temp files and unrelated writes
// in the directory are ignored.
func NewWatcher(dir string, domainFiles []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool, len(domainFiles))
	for _, f := range domainFiles {
		files[filepath.Base(f)] = true
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Dir:     dir,
		Changes: ch,
		files:   files,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching the dataset directory for changes.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	const debounce = 200 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.changes <- Change{File: file}
				}
				return
			}

			if !w.isDomainFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, ts := range pending {
				if now.Sub(ts) >= debounce {
					w.changes <- Change{File: file}
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next poll cycle recovers.
		}
	}
}

func (w *Watcher) isDomainFile(name string) bool {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, ".yaml") && !strings.HasSuffix(base, ".yml") {
		return false
	}
	return w.files[base]
}
