package indexer

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/so-keyldzn/semantiq/internal/apperr"
)

// Watch implements §4.6's watch phase: subscribe to file-system events
// under cfg.Root with cfg.DebounceWindow debouncing, reindexing
// create/modify paths exactly as Sweep does and deleting the File row for
// a remove. Blocks until ctx is cancelled, finishing whatever reindex
// transaction is in flight before returning (§4.6's single shutdown
// signal).
func (ix *Indexer) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "create watcher")
	}
	defer w.Close()

	if err := ix.watchTreeRecursively(w, ix.cfg.Root); err != nil {
		return err
	}

	debounce := ix.cfg.DebounceWindow
	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	pending := make(map[string]struct{})
	var timer *time.Timer
	timerC := func() <-chan time.Time {
		if timer == nil {
			return nil
		}
		return timer.C
	}

	flush := func() {
		for rel := range pending {
			if _, err := ix.reindexPath(ctx, rel); err != nil {
				continue
			}
		}
		pending = make(map[string]struct{})
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			rel, relErr := filepath.Rel(ix.cfg.Root, event.Name)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = ix.watchTreeRecursively(w, event.Name)
					continue
				}
			}
			if ix.predicate.Ineligible(rel, -1) {
				continue
			}

			pending[rel] = struct{}{}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)

		case <-timerC():
			flush()
			timer = nil

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			_ = watchErr
		}
	}
}

// watchTreeRecursively adds root and every non-ineligible subdirectory to
// w, mirroring fsnotify's lack of native recursive watches.
func (ix *Indexer) watchTreeRecursively(w *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(ix.cfg.Root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && ix.predicate.Ineligible(rel, -1) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
