package content

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Invalidator drops whatever it memoized for a content path. *Cache
// satisfies it.
type Invalidator interface {
	Invalidate(path string)
}

// Watch calls inv.Invalidate with the slash-separated path, relative to dir,
// of every file that changes. It blocks until ctx is cancelled. Meant for
// development; production content only changes between deploys.
func Watch(ctx context.Context, dir string, inv Invalidator, logger Logger) error {
	if logger == nil {
		logger = NewLogger()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: watcher: %w", err)
	}
	defer w.Close()

	for _, sub := range []string{"", PostsDir, PagesDir} {
		p := filepath.Join(dir, sub)
		if err := w.Add(p); err != nil {
			logger.Warnf("watch %s: %v", p, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			rel, err := filepath.Rel(dir, ev.Name)
			if err != nil {
				continue
			}
			inv.Invalidate(filepath.ToSlash(rel))
			logger.Infof("content changed: %s", filepath.ToSlash(rel))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch: %v", err)
		}
	}
}
