package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/schemaview/internal/base"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Sink receives load results. *state.Store satisfies it.
type Sink interface {
	Update(source string, b *base.Base, err error)
}

// Reload loads the source once and hands the result to sink.
func Reload(ctx context.Context, loader *Loader, sink Sink) error {
	b, err := loader.Load(ctx)
	sink.Update(loader.Path, b, err)
	return err
}

// Watcher reloads a schema source whenever its file changes on disk.
type Watcher struct {
	loader   *Loader
	sink     Sink
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher builds a Watcher. A non-positive debounce uses DefaultDebounce.
func NewWatcher(loader *Loader, sink Sink, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{loader: loader, sink: sink, logger: loader.Logger, debounce: debounce}
}

// Run watches until ctx is cancelled. The parent directory is watched rather
// than the file so atomic saves (write temp, rename over) are seen.
func (w *Watcher) Run(ctx context.Context) error {
	target, err := filepath.Abs(w.loader.Path)
	if err != nil {
		return fmt.Errorf("resolve schema path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	defer func() {
		mu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(target, event) {
				continue
			}

			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				w.logger.Debug("schema source changed, reloading", "file", event.Name, "op", event.Op.String())
				if err := Reload(ctx, w.loader, w.sink); err != nil {
					w.logger.Error("schema reload failed", "source", w.loader.Path, "error", err)
				}
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(target string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if name == target {
		return true
	}
	// SQLite writes through its journal files.
	if format, _ := DetectFormat(target); format == FormatSQLite {
		return name == target+"-wal" || name == target+"-journal"
	}
	return false
}
