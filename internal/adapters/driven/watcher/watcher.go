// Package watcher reports catalog file changes using fsnotify.
//
// Parent directories are watched rather than the files themselves, since
// editors and the appenders often replace a file instead of writing it in
// place. Bursts of events are coalesced before the callback fires.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

// DefaultDebounce is how long the watcher waits for a burst to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watcher implements driven.ChangeNotifier.
type Watcher struct {
	debounce time.Duration
}

var _ driven.ChangeNotifier = (*Watcher)(nil)

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is done, calling onChange with the path of each
// watched file that was written, created, removed or renamed. Callbacks
// run on the watcher goroutine, one at a time, in path order per burst.
// A directory that cannot be watched is logged and skipped; Watch fails
// only when none can be.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	watched := 0
	var firstErr error
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			logger.Warn("Skipping %s: %v", dir, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("watch %s: %w", dir, err)
			}
			continue
		}
		watched++
		logger.Debug("Watching %s", dir)
	}
	if watched == 0 && firstErr != nil {
		return firstErr
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(event.Name)
			if _, ok := targets[path]; !ok {
				continue
			}
			pending[path] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher: %v", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			for _, p := range changed {
				onChange(p)
			}
		}
	}
}
