package lessons

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/logger"
)

// DefaultDebounce is the quiet period after the last change before reloading.
const DefaultDebounce = 300 * time.Millisecond

// ChangeHandler receives a newly loaded dataset.
type ChangeHandler func(dataset *domain.Dataset)

// Watcher reloads a lesson file when it changes. Changes are debounced.
//
// The parent directory is watched rather than the file so that editors
// which replace the file on save keep triggering reloads.
type Watcher struct {
	source   *YAMLSource
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	handlers []ChangeHandler
	stopChan chan struct{}
	done     chan struct{}
	mu       sync.Mutex
}

// NewWatcher creates a watcher for a file-backed source.
func NewWatcher(source *YAMLSource) (*Watcher, error) {
	if source.path == "" {
		return nil, fmt.Errorf("%w: embedded lessons cannot be watched", domain.ErrInvalidInput)
	}
	path, err := filepath.Abs(source.path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", source.path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		source:   source,
		path:     path,
		watcher:  w,
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce changes the debounce period. Call before Start.
func (lw *Watcher) SetDebounce(d time.Duration) {
	lw.debounce = d
}

// OnChange registers a handler called after each successful reload.
func (lw *Watcher) OnChange(handler ChangeHandler) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.handlers = append(lw.handlers, handler)
}

// Start begins watching.
func (lw *Watcher) Start() error {
	if err := lw.watcher.Add(filepath.Dir(lw.path)); err != nil {
		return fmt.Errorf("watch %s: %w", lw.path, err)
	}

	lw.stopChan = make(chan struct{})
	lw.done = make(chan struct{})
	go lw.watchLoop()

	logger.Info("Lesson watcher started: %s", lw.path)
	return nil
}

// Stop halts the watcher and waits for the watch loop to exit.
func (lw *Watcher) Stop() {
	if lw.stopChan != nil {
		close(lw.stopChan)
		<-lw.done
		lw.stopChan = nil
	}
	_ = lw.watcher.Close()
	logger.Info("Lesson watcher stopped")
}

func (lw *Watcher) watchLoop() {
	defer close(lw.done)
	var debounceTimer *time.Timer

	for {
		select {
		case <-lw.stopChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != lw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(lw.debounce, lw.reload)

		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("lesson watcher: %v", err)
		}
	}
}

func (lw *Watcher) reload() {
	logger.Info("Lesson file changed, reloading: %s", lw.path)

	dataset, err := lw.source.Load(context.Background())
	if err != nil {
		// Keep serving the previous dataset.
		logger.Error("lesson reload failed: %v", err)
		return
	}

	lw.mu.Lock()
	handlers := make([]ChangeHandler, len(lw.handlers))
	copy(handlers, lw.handlers)
	lw.mu.Unlock()

	for _, h := range handlers {
		h(dataset)
	}
}
