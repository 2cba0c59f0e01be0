package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
	"github.com/custodia-labs/samvidhan-cli/internal/logger"
)

// DefaultDebounce is how long the watcher waits for activity to settle.
const DefaultDebounce = 2 * time.Second

// ErrWatcherClosed is returned when Watch is called after Close.
var ErrWatcherClosed = errors.New("watcher is closed")

// Watcher reports batches of changed corpus files.
// Bursts of events are coalesced until the directory has been quiet for
// the debounce interval.
type Watcher struct {
	dir        string
	extractors Extractors
	debounce   time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// NewWatcher creates a watcher for dir. Only files that extractors can
// read are reported. A non-positive debounce uses DefaultDebounce.
func NewWatcher(dir string, extractors Extractors, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{dir: dir, extractors: extractors, debounce: debounce}
}

// Watch starts watching and returns a channel of changed paths.
// The channel closes when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan []string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if _, err := os.Stat(w.dir); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataSource, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = fw

	batches := make(chan []string)
	go w.loop(ctx, fw, batches)
	return batches, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, batches chan<- []string) {
	defer close(batches)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if path, relevant := w.filter(event); relevant {
				pending[path] = struct{}{}
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			sort.Strings(batch)
			pending = make(map[string]struct{})

			select {
			case batches <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

// filter reports whether event touches a supported, visible corpus file.
func (w *Watcher) filter(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	name := filepath.Base(event.Name)
	if isHidden(name) {
		return "", false
	}
	if _, ok := w.extractors.ForPath(name); !ok {
		return "", false
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return "", false
	}
	return event.Name, true
}

// Close stops the underlying watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
