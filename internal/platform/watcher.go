package platform

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces bursts of events (e.g. a copy of many files)
const DefaultWatchDebounce = 300 * time.Millisecond

// FolderWatcher calls onChange when source images appear, change or disappear
// in a single folder. Events are debounced; onChange runs on a timer goroutine.
type FolderWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewFolderWatcher starts watching dir
func NewFolderWatcher(dir string, debounce time.Duration, onChange func()) (*FolderWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	w := &FolderWatcher{
		watcher:  fsWatcher,
		onChange: onChange,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.processEvents()

	log.Printf("Watching source folder: %s", dir)
	return w, nil
}

// processEvents filters fsnotify events down to source images
func (w *FolderWatcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !IsSourceImage(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// schedule restarts the debounce timer
func (w *FolderWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

// Close stops watching. Pending notifications are dropped.
func (w *FolderWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}
