package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/fsnotify.v1"
)

// Watch calls handle for every file in dir that is created or written and
// passes filter, until ctx is done. Events are handled one at a time on the
// calling goroutine.
func Watch(ctx context.Context, dir string, filter Filter, logger *slog.Logger, handle func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	logger.Info("Watching for new input", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !filter.Accept(filepath.Base(event.Name)) {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			logger.Debug("Input changed", "file", filepath.Base(event.Name), "op", event.Op.String())
			handle(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)
		}
	}
}
