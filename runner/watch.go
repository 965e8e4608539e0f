package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a Watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned by Watch when the underlying watcher is
// closed while running.
var ErrWatcherClosed = errors.New("runner: watcher closed")

// Watcher reports changed Cypher files, batching bursts of writes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	exts     []string
	debounce time.Duration
	logger   *zap.Logger
}

// NewWatcher creates a watcher for files with the given extensions (with or
// without the leading dot).
func NewWatcher(exts []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("runner: failed to create watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	normalized := make([]string, len(exts))
	for i, ext := range exts {
		normalized[i] = "." + strings.TrimPrefix(ext, ".")
	}

	return &Watcher{
		watcher:  watcher,
		exts:     normalized,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Add watches paths. Directories are watched recursively, skipping hidden
// ones; for a file its directory is watched.
func (w *Watcher) Add(paths ...string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			if err := w.watcher.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("runner: watching %s: %w", path, err)
			}

			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() {
				return nil
			}

			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return w.watcher.Add(p)
		})
		if err != nil {
			return fmt.Errorf("runner: watching %s: %w", path, err)
		}
	}

	return nil
}

// Watch blocks until ctx is done, calling onChange with the sorted set of
// files changed in each burst of writes.
func (w *Watcher) Watch(ctx context.Context, onChange func(changed []string)) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return ErrWatcherClosed
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("file event", zap.String("path", event.Name), zap.Stringer("op", event.Op))

			pending[event.Name] = struct{}{}

			timer.Reset(w.debounce)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}

			slices.Sort(changed)
			clear(pending)

			onChange(changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrWatcherClosed
			}

			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	return slices.Contains(w.exts, filepath.Ext(event.Name))
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
