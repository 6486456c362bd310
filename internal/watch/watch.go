// Package watch reports changes to input files for adev -watch.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Files monitors paths and calls onChange with the changed path, exactly as
// it was passed in, each time one of them is written or replaced. It runs
// until ctx is cancelled.
//
// The parent directories are watched rather than the files themselves, so
// a file that an editor saves by renaming a temporary file over it keeps
// being tracked. onChange runs on the watcher goroutine.
func Files(ctx context.Context, paths []string, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("watch: %w", err)
		}

		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		watched[abs] = p

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
		slog.Debug("watch: watching directory", "dir", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// A rename into place arrives as Create on the target name.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			path, ok := watched[abs]
			if !ok {
				continue
			}

			slog.Debug("watch: change detected", "path", path, "op", event.Op.String())
			onChange(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: watcher error", "err", err)
		}
	}
}
