// Package watch feeds the pipeline from a directory: PDFs dropped or
// rewritten under the watched directory are processed automatically
// after a quiet period.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docfeed-cli/internal/core/domain"
	"github.com/custodia-labs/docfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docfeed-cli/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is
// processed. Copies into the watched directory arrive as many write
// events; processing fires only after the last one.
const DefaultDebounce = 2 * time.Second

// Watcher runs the pipeline over files appearing in a directory.
type Watcher struct {
	dir      string
	runner   driving.PipelineRunner
	mode     domain.Mode
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	flushCh chan []domain.SourceRef
}

// New creates a watcher over dir. The directory must exist.
func New(dir string, runner driving.PipelineRunner, mode domain.Mode) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	return &Watcher{
		dir:      dir,
		runner:   runner,
		mode:     mode,
		debounce: DefaultDebounce,
		pending:  make(map[string]struct{}),
		flushCh:  make(chan []domain.SourceRef, 1),
	}, nil
}

// Run watches until the context is cancelled. Each quiet batch of new
// or rewritten PDFs becomes one pipeline run.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for PDFs", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, relevant := w.handleEvent(event); relevant {
				w.enqueue(path)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case refs := <-w.flushCh:
			summary, err := w.runner.Run(ctx, refs, w.mode)
			if err != nil {
				logger.Warn("Watch run failed: %v", err)
				continue
			}
			logger.Info("Watch run: %d ok, %d partial, %d failed",
				summary.OK, summary.Partial, summary.Failed)
		}
	}
}

// handleEvent decides whether an event should queue its file:
// create and write events for visible, non-directory PDFs.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return "", false
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

// enqueue adds a path to the pending batch and restarts the quiet
// timer. The batch is flushed in one go once the directory settles.
func (w *Watcher) enqueue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// flush snapshots the pending batch onto the flush channel.
func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	refs := make([]domain.SourceRef, len(paths))
	for i, path := range paths {
		refs[i] = domain.LocalRef(path)
	}

	select {
	case w.flushCh <- refs:
	default:
		// A batch is already waiting; merge into it next time round.
		w.mu.Lock()
		for _, path := range paths {
			w.pending[path] = struct{}{}
		}
		w.timer = time.AfterFunc(w.debounce, w.flush)
		w.mu.Unlock()
	}
}
