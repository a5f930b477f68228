// Package watch re-runs a callback when report files under a set of roots
// change. Bursts of events are collapsed into one batch.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/panbanda/tally/internal/scanner"
	"github.com/panbanda/tally/pkg/config"
)

// DefaultDebounce is the quiet period before a batch of changes is handled.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives the report files that changed since the last batch.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher monitors report roots for changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	config    *config.Config
	scanner   *scanner.Scanner // event loop only
	debounce  time.Duration
	roots     []string
	onChange  ChangeFunc
	onError   func(error)

	mu      sync.Mutex
	pending map[string]struct{}
	last    time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher over roots. A non-positive debounce uses
// DefaultDebounce and a nil cfg the default configuration.
func NewWatcher(roots []string, cfg *config.Config, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		config:    cfg,
		scanner:   scanner.NewScanner(cfg),
		debounce:  debounce,
		roots:     roots,
		pending:   make(map[string]struct{}),
		done:      make(chan struct{}),
	}, nil
}

// SetCallback sets the function to call with each batch of changes.
func (w *Watcher) SetCallback(cb ChangeFunc) {
	w.onChange = cb
}

// SetErrorHandler sets the function that receives watcher errors.
func (w *Watcher) SetErrorHandler(fn func(error)) {
	w.onError = fn
}

// Start watches until ctx is done or Stop is called. Callbacks run on a
// single goroutine, one batch at a time. Start returns once the last
// callback has finished.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}

	batches := make(chan []string)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		w.processDebounced(ctx, batches)
	}()
	go func() {
		defer wg.Done()
		for changed := range batches {
			if w.onChange != nil {
				w.onChange(ctx, changed)
			}
		}
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// addTree registers root and every non-excluded directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.config.ShouldExcludeDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

// handleEvent records a change to a file a scan of the roots would pick up.
// New directories are watched as they appear.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	path := event.Name

	if event.Has(fsnotify.Create) && isDir(path) {
		if !w.config.ShouldExcludeDir(filepath.Base(path)) {
			_ = w.addTree(path)
		}
		return
	}
	if !w.accepts(event) {
		return
	}

	w.mu.Lock()
	w.pending[path] = struct{}{}
	w.last = time.Now()
	w.mu.Unlock()
}

// accepts applies the scanner's rules to a changed path. A removed file can
// no longer be inspected and is matched by extension only.
func (w *Watcher) accepts(event fsnotify.Event) bool {
	path := event.Name
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return w.config.HasExtension(path)
	}
	for _, root := range w.roots {
		if ok, err := w.scanner.ScanFile(root, path); err == nil && ok {
			return true
		}
	}
	return false
}

// processDebounced emits a batch once no event has arrived for the
// debounce period.
func (w *Watcher) processDebounced(ctx context.Context, out chan<- []string) {
	defer close(out)

	ticker := time.NewTicker(w.debounce / 5)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-ticker.C:
			if batch := w.takeReady(time.Now()); batch != nil {
				select {
				case out <- batch:
				case <-ctx.Done():
					return
				case <-w.done:
					return
				}
			}
		}
	}
}

// takeReady drains the pending set if it has been quiet long enough.
func (w *Watcher) takeReady(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 || now.Sub(w.last) < w.debounce {
		return nil
	}
	batch := make([]string, 0, len(w.pending))
	for path := range w.pending {
		batch = append(batch, path)
	}
	sort.Strings(batch)
	w.pending = make(map[string]struct{})
	return batch
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

// WatchedDirs returns the directories currently watched.
func (w *Watcher) WatchedDirs() []string {
	return w.fsWatcher.WatchList()
}
