package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce batches the burst of events editors emit for one save.
const watchDebounce = 150 * time.Millisecond

// watchFile calls onChange after path is written, until ctx is done. The
// parent directory is watched so editors that replace the file on save are
// picked up too. Errors from onChange are logged and watching continues.
func (a *app) watchFile(ctx context.Context, path string, onChange func() error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	a.logger.Info("watching payload", zap.String("path", target))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", zap.Error(err))
		case <-pending:
			pending = nil
			if err := onChange(); err != nil {
				a.logger.Error("re-render failed", zap.String("path", target), zap.Error(err))
				continue
			}
			a.logger.Info("re-rendered", zap.String("path", target))
		}
	}
}
