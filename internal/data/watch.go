package data

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches the dataset files for changes and calls onChange after a
// quiet period, so a bulk CSV export triggers a single reload.
type Watcher struct {
	dir      string
	onChange func()
	quiet    time.Duration
}

// NewWatcher creates a watcher over the dataset directory
func NewWatcher(dir string, onChange func()) *Watcher {
	return &Watcher{
		dir:      dir,
		onChange: onChange,
		quiet:    500 * time.Millisecond,
	}
}

// WithQuietPeriod sets the debounce window
func (w *Watcher) WithQuietPeriod(d time.Duration) *Watcher {
	w.quiet = d
	return w
}

// Watch blocks until the context is cancelled or the watcher fails.
// Only the known dataset files trigger a reload; editor temp files and
// unrelated writes in the directory are ignored.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	watched := map[string]bool{
		ServicesFile: true,
		PatientsFile: true,
		ScheduleFile: true,
		MarkersFile:  true,
	}

	log.Infof("watching %s for dataset changes", w.dir)
	fire := debounce.New(w.quiet)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Base(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				name := filepath.Base(event.Name)
				fire(func() {
					log.Infof("dataset file changed: %s", name)
					w.onChange()
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
