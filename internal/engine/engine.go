// Package engine is the composition root: it wires the Index Store, the
// Embedder, the Retrieval Engine, the Auto-Indexer, and the Threshold
// Calibrator into one running instance bound to a project root, the same
// role the teacher's "index" and "serve" commands play inline in
// internal/cli — pulled out here so both the CLI and the MCP transport
// share one construction path instead of duplicating it.
package engine

import (
	"context"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/calibrator"
	"github.com/so-keyldzn/semantiq/internal/config"
	"github.com/so-keyldzn/semantiq/internal/embed"
	"github.com/so-keyldzn/semantiq/internal/indexer"
	"github.com/so-keyldzn/semantiq/internal/model"
	"github.com/so-keyldzn/semantiq/internal/retrieval"
	"github.com/so-keyldzn/semantiq/internal/store"
)

// Engine bundles one project's running components. Callers reach the
// Retrieval Engine, the Auto-Indexer, and the Calibrator directly through
// the exported fields; Close releases the Store's writer lock and the
// Embedder's subprocess, if any.
type Engine struct {
	Root       string
	Store      *store.Store
	Embedder   embed.Provider
	Retrieval  *retrieval.Engine
	Indexer    *indexer.Indexer
	Calibrator *calibrator.Calibrator
}

// Open builds an Engine rooted at root using cfg. The Retrieval Engine's
// auto-calibrate hook and threshold lookup are both wired to the
// Calibrator here, so every caller gets the §4.7 "crosses 500" trigger
// and the per-language threshold gate without having to remember to wire
// either themselves.
func Open(root string, cfg *config.Config) (*Engine, error) {
	st, err := store.Open(store.Options{
		Path:          cfg.Database.Path,
		BusyTimeoutMS: cfg.Database.BusyTimeoutMS,
		MmapSizeBytes: cfg.Database.MmapSizeBytes,
	})
	if err != nil {
		return nil, err
	}

	embedder, err := embed.NewProvider(embed.Config{
		Provider:  cfg.Embedding.Provider,
		Endpoint:  cfg.Embedding.Endpoint,
		BatchSize: cfg.Embedding.BatchSize,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	retr, err := retrieval.New(st, embedder, cfg.Retrieval, cfg.Calibration, root)
	if err != nil {
		_ = embedder.Close()
		_ = st.Close()
		return nil, err
	}

	calib := calibrator.New(st)
	threshold := cfg.Calibration.BootstrapThreshold
	retr.SetAutoCalibrateHook(func(language string, beforeCount, afterCount int) {
		_ = calibrator.MaybeAutoCalibrate(calib, language, beforeCount, afterCount, threshold)
	})
	retr.SetThresholdLookup(func(language string) (float32, float32, error) {
		return calib.LookupThresholds(language, model.DefaultMaxDistance, model.DefaultMinSimilarity)
	})

	ix := indexer.New(st, embedder, indexer.Config{
		Root:           root,
		WorkerPoolSize: cfg.Indexer.WorkerPoolSize,
		DebounceWindow: cfg.Indexer.DebounceWindow,
		ProgressEvery:  cfg.Indexer.ProgressEvery,
		EmbedBatchSize: cfg.Indexer.EmbedBatchSize,
	}, nil)

	return &Engine{
		Root:       root,
		Store:      st,
		Embedder:   embedder,
		Retrieval:  retr,
		Indexer:    ix,
		Calibrator: calib,
	}, nil
}

// SetIndexerProgress replaces the Auto-Indexer's progress reporter, letting
// the CLI layer attach its progressbar-backed one after Open (which has no
// reporter to offer before the caller decides on --quiet).
func (e *Engine) SetIndexerProgress(reporter indexer.ProgressReporter) {
	e.Indexer.SetProgressReporter(reporter)
}

// Close releases the Store's writer lock and the Embedder's resources.
// Safe to call once; callers that fail partway through Open never reach
// Close and instead unwind through Open's own cleanup.
func (e *Engine) Close() error {
	embedErr := e.Embedder.Close()
	storeErr := e.Store.Close()
	if embedErr != nil {
		return apperr.Wrap(apperr.Internal, embedErr, "close embedder")
	}
	return storeErr
}

// Reindex runs one full sweep, the operation the "index" CLI command
// drives.
func (e *Engine) Reindex(ctx context.Context) (indexer.SweepStats, error) {
	return e.Indexer.Sweep(ctx)
}

// Watch runs the Auto-Indexer's watch phase until ctx is cancelled, the
// operation "index --watch" drives.
func (e *Engine) Watch(ctx context.Context) error {
	return e.Indexer.Watch(ctx)
}
