package runner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long Watch waits for more changes before linting.
const debounce = 100 * time.Millisecond

// Watch lints the files under roots once, then again whenever a selected
// file is written or created, passing each batch of results to report.
// It returns nil when ctx is canceled.
func (r *Runner) Watch(ctx context.Context, d Discovery, roots []string, report func([]FileResult)) error {
	files, err := d.Discover(roots...)
	if err != nil {
		return err
	}
	results, err := r.LintFiles(ctx, files)
	if err != nil {
		return ignoreCanceled(ctx, err)
	}
	report(results)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	absRoots := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		absRoots = append(absRoots, abs)
		if err := r.watchDir(watcher, d, abs); err != nil {
			return err
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := r.watchDir(watcher, d, event.Name); err != nil {
						r.logger.Warn("failed to watch directory", slog.String("path", event.Name), slog.Any("error", err))
					}
					continue
				}
			}
			if !d.Matches(relativeTo(absRoots, event.Name)) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", slog.Any("error", err))

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)

			r.logger.Debug("change detected", slog.Int("files", len(paths)))
			results, err := r.LintFiles(ctx, paths)
			if err != nil {
				return ignoreCanceled(ctx, err)
			}
			report(results)
		}
	}
}

// watchDir adds dir and its subdirectories to the watcher, skipping the
// directories discovery skips.
func (r *Runner) watchDir(watcher *fsnotify.Watcher, d Discovery, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(dir))
	}
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(dir, path)
		if path != dir && d.skipDir(entry.Name(), filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relativeTo returns path relative to the first root containing it, in
// slash form.
func relativeTo(roots []string, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	for _, root := range roots {
		rel, err := filepath.Rel(root, abs)
		if err == nil && !strings.HasPrefix(rel, "..") {
			if rel == "." {
				return filepath.ToSlash(filepath.Base(abs))
			}
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filepath.Base(abs))
}

func ignoreCanceled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}
