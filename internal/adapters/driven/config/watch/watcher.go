// Package watch reloads prompt templates when they change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// DefaultDebounce coalesces the burst of events editors emit per save.
const DefaultDebounce = 200 * time.Millisecond

// PromptWatcher clears the prompt cache whenever a template in the
// prompt directory is created, written, renamed or removed.
type PromptWatcher struct {
	dir      string
	store    driven.PromptStore
	debounce time.Duration
	ext      string
}

// NewPromptWatcher creates a watcher for dir. A zero debounce selects
// DefaultDebounce.
func NewPromptWatcher(dir string, store driven.PromptStore, debounce time.Duration) *PromptWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &PromptWatcher{dir: dir, store: store, debounce: debounce, ext: ".tmpl"}
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *PromptWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Debug("Watching prompts in %s", w.dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Prompt watcher: %v", err)
		case <-timer.C:
			w.store.Reload()
			logger.Info("Prompt templates reloaded")
		}
	}
}

func (w *PromptWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != w.ext {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
