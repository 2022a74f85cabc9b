// ABOUTME: Filesystem watcher that reindexes policies when the directory changes
// ABOUTME: Debounces bursts of fsnotify events into a single rebuild
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last
// relevant event before triggering a rebuild. Editors often fire
// several write events per save.
const DefaultDebounce = 500 * time.Millisecond

// Rebuilder re-reads the policy directory and swaps in a fresh index.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// Watcher monitors a policy directory for .txt changes and triggers
// index rebuilds.
type Watcher struct {
	dir      string
	debounce time.Duration
	rebuild  Rebuilder
	fsw      *fsnotify.Watcher
}

// New creates a watcher for dir. Call Run to start it.
func New(dir string, rebuild Rebuilder, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		rebuild:  rebuild,
		fsw:      fsw,
	}, nil
}

// Run watches until ctx is cancelled. Create, write, remove, and
// rename events on .txt files schedule a debounced rebuild; other
// files are ignored. A rebuild failure is logged and watching
// continues.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.fsw.Add(w.dir); err != nil {
		return err
	}
	defer w.fsw.Close()

	log.Printf("Watching %s for policy changes", w.dir)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".txt" {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			log.Printf("Policy directory changed, rebuilding index")
			if err := w.rebuild.Rebuild(ctx); err != nil {
				log.Printf("Warning: index rebuild failed: %v", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Warning: watcher error: %v", err)
		}
	}
}
