// Package indexer implements the Auto-Indexer (§4.6): an initial sweep of
// the project tree followed by an fsnotify watch phase, both funneling
// through the same per-file reindex path so a file touched during the
// sweep and one touched a minute later in the watch phase are handled
// identically.
package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/embed"
	"github.com/so-keyldzn/semantiq/internal/exclude"
	"github.com/so-keyldzn/semantiq/internal/lang"
	"github.com/so-keyldzn/semantiq/internal/model"
	"github.com/so-keyldzn/semantiq/internal/parser"
	"github.com/so-keyldzn/semantiq/internal/store"
)

// Config configures one Indexer instance.
type Config struct {
	Root           string
	WorkerPoolSize int
	DebounceWindow time.Duration
	ProgressEvery  int
	EmbedBatchSize int
	IgnorePatterns []string // project-specific extras layered on Exclusions' fixed blocklist
}

// Indexer owns the sweep and watch phases against one project root.
type Indexer struct {
	store     *store.Store
	embedder  embed.Provider
	cfg       Config
	predicate *exclude.Predicate
	reporter  ProgressReporter
}

// New builds an Indexer. reporter may be nil, equivalent to
// NoOpProgressReporter{}.
func New(st *store.Store, embedder embed.Provider, cfg Config, reporter ProgressReporter) *Indexer {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 8
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 100
	}
	if cfg.EmbedBatchSize <= 0 {
		cfg.EmbedBatchSize = embed.MaxAutoIndexerBatch
	}
	if reporter == nil {
		reporter = NoOpProgressReporter{}
	}
	return &Indexer{
		store: st, embedder: embedder, cfg: cfg,
		predicate: exclude.New(cfg.IgnorePatterns), reporter: reporter,
	}
}

// SetProgressReporter replaces the reporter Sweep reports to, letting a
// caller attach one after construction (the CLI layer only knows whether
// --quiet was passed once flags are parsed, after the Engine is built).
func (ix *Indexer) SetProgressReporter(reporter ProgressReporter) {
	if reporter == nil {
		reporter = NoOpProgressReporter{}
	}
	ix.reporter = reporter
}

// reindexPath reads relPath (root-relative, '/'-separated, the same form
// the files table stores), parses it, embeds its chunks, and replaces its
// Index Store rows in one transaction (§4.6's shared sweep/watch path).
// Returns (skipped, error): skipped is true when the stored fingerprint
// already matched or the file was ineligible, so no write happened.
func (ix *Indexer) reindexPath(ctx context.Context, relPath string) (bool, error) {
	absPath := filepath.Join(ix.cfg.Root, relPath)

	info, err := os.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, ix.store.DeleteFile(relPath)
		}
		return false, apperr.Wrap(apperr.Internal, err, "stat %s", relPath)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return true, nil
	}
	if ix.predicate.Ineligible(relPath, info.Size()) {
		return true, nil
	}

	source, err := os.ReadFile(absPath)
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, err, "read %s", relPath)
	}

	sum := sha256.Sum256(source)
	hash := hex.EncodeToString(sum[:])

	if fp, ok, err := ix.store.GetFileFingerprint(relPath); err == nil && ok {
		if fp.ContentHash == hash && fp.ParserVersion == model.ParserVersion {
			return true, nil
		}
	}

	language, ok := lang.Detect(relPath)
	if !ok {
		return true, nil
	}

	result, err := parser.Parse(language.Name, relPath, source)
	if err != nil {
		// A grammar-level parse failure skips this one file; it must not
		// abort the sweep (§4.2).
		return true, nil
	}

	texts := make([]string, len(result.Chunks))
	for i, c := range result.Chunks {
		texts[i] = c.Content
	}
	vectors, err := embed.EmbedBatches(ctx, ix.embedder, texts, ix.cfg.EmbedBatchSize, nil)
	if err != nil {
		return false, apperr.Wrap(apperr.EmbedderUnavailable, err, "embed chunks for %s", relPath)
	}
	for i := range result.Chunks {
		result.Chunks[i].Embedding = vectors[i]
	}

	_, err = ix.store.ReplaceFile(store.FileUpdate{
		Path: relPath, ContentHash: hash, SizeBytes: uint64(len(source)),
		ModifiedAt: info.ModTime(), Language: language.Name,
		Symbols: result.Symbols, Chunks: result.Chunks, Dependencies: result.Dependencies,
	})
	if err != nil {
		return false, err
	}
	return false, nil
}
