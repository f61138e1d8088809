package indexer

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/so-keyldzn/semantiq/internal/apperr"
)

// Sweep implements §4.6's initial sweep: discover every eligible file under
// cfg.Root, reindex any whose fingerprint doesn't match what's stored,
// then drop rows for files the store has but the tree no longer does.
// Bounded to cfg.WorkerPoolSize concurrent file-workers; progress is
// reported every cfg.ProgressEvery files.
func (ix *Indexer) Sweep(ctx context.Context) (SweepStats, error) {
	paths, err := ix.discover()
	if err != nil {
		return SweepStats{}, err
	}
	ix.reporter.OnSweepStart(len(paths))

	var stats SweepStats
	stats.FilesSeen = len(paths)

	var processed int64
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.cfg.WorkerPoolSize)

	for _, relPath := range paths {
		relPath := relPath
		g.Go(func() error {
			skipped, err := ix.reindexPath(gctx, relPath)
			mu.Lock()
			if err != nil {
				stats.FilesFailed++
			} else if skipped {
				stats.FilesSkipped++
			} else {
				stats.FilesIndexed++
			}
			mu.Unlock()

			n := atomic.AddInt64(&processed, 1)
			if int(n)%ix.cfg.ProgressEvery == 0 {
				ix.reporter.OnSweepProgress(int(n), len(paths))
			}
			// A single file's failure is recorded but never aborts the
			// sweep (§4.2, §4.6).
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, apperr.Wrap(apperr.Internal, err, "sweep %s", ix.cfg.Root)
	}
	ix.reporter.OnSweepProgress(len(paths), len(paths))

	removed, err := ix.pruneDeletedFiles(ctx, paths)
	if err != nil {
		return stats, err
	}
	stats.FilesRemoved = removed

	ix.reporter.OnSweepComplete(stats)
	return stats, nil
}

// discover walks cfg.Root, returning every eligible file's path relative to
// it, honoring Exclusions (blocked directories are pruned entirely rather
// than merely filtered, so a huge vendor/ tree is never even stat'd) and
// the symlink policy (symlinks are never followed, matching §4.6).
func (ix *Indexer) discover() ([]string, error) {
	var out []string
	err := filepath.WalkDir(ix.cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(ix.cfg.Root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && ix.predicate.Ineligible(rel, -1) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if ix.predicate.Ineligible(rel, info.Size()) {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "walk %s", ix.cfg.Root)
	}
	return out, nil
}

// pruneDeletedFiles removes File rows whose path was not among present,
// the "file disappeared between sweeps" case §4.6 doesn't otherwise name
// but the watch phase's Remove handling requires symmetrically.
func (ix *Indexer) pruneDeletedFiles(ctx context.Context, present []string) (int, error) {
	known, err := ix.store.ListAllPaths()
	if err != nil {
		return 0, err
	}
	presentSet := make(map[string]struct{}, len(present))
	for _, p := range present {
		presentSet[p] = struct{}{}
	}

	removed := 0
	for _, p := range known {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if _, ok := presentSet[p]; ok {
			continue
		}
		if err := ix.store.DeleteFile(p); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
