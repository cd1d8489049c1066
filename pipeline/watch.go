package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch converts the .uge files already in dir, then every .uge file created
// or written there until ctx is cancelled. Bursts of events for one file are
// debounced. done, when set, is called after each successful conversion.
func (r *Runner) Watch(ctx context.Context, dir string, done func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WithStack(err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	r.logf("\n=== Watching %s ===\n", dir)

	handle := func(path string) {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return
		}
		res, err := r.ConvertFile(path)
		if err != nil {
			r.logf("  FAILED: %v\n", err)
			return
		}
		if done != nil {
			done(res)
		}
	}

	existing, err := CollectSources([]string{dir})
	if err != nil {
		return err
	}
	for _, path := range existing {
		handle(path)
	}

	debounce := r.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSource(event.Name) || !event.Has(fsnotify.Create|fsnotify.Write) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			timer.Stop()
			timer.Reset(debounce)

		case <-timer.C:
			for path := range pending {
				handle(path)
			}
			pending = make(map[string]bool)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logf("  Watcher error: %v\n", err)
		}
	}
}
