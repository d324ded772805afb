package corpus

import (
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/haystackd/haystack/internal/debug"
)

// Watcher monitors the corpus root and invokes a callback after file
// changes settle. It backs the CLI's watch mode: every settled change
// re-runs a fresh scan, so results never go stale while watching. The
// expansion cache is deliberately not involved here.
type Watcher struct {
	fs       *fsnotify.Watcher
	root     string
	debounce time.Duration
	onChange func()

	done chan struct{}
	wg   sync.WaitGroup

	closeOnce sync.Once
}

// NewWatcher creates a watcher for root. onChange fires once per burst
// of events, debounce after the last event of the burst.
func NewWatcher(root string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Watcher{
		fs:       fsw,
		root:     root,
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start registers the directory tree and begins processing events.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := w.fs.Add(path); addErr != nil {
				debug.LogCorpus("watch add failed for %s: %v\n", path, addErr)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-w.done:
			if pending && !timer.Stop() {
				<-timer.C
			}
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need their own watch registration.
			if event.Op&fsnotify.Create != 0 {
				_ = w.fs.Add(event.Name)
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			debug.LogCorpus("watch error: %v\n", err)

		case <-timer.C:
			pending = false
			w.onChange()
		}
	}
}

// Close stops event processing and releases the underlying watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}
