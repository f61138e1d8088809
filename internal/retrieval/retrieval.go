// Package retrieval implements the Retrieval Engine (§4.5): the four
// query operations — search, find_refs, deps, explain — built on top of
// the Index Store and an optional Embedder. search fans out to concurrent
// sub-searches and fuses their rankings with Reciprocal Rank Fusion.
package retrieval

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"

	"github.com/maypok86/otter"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/config"
	"github.com/so-keyldzn/semantiq/internal/embed"
	"github.com/so-keyldzn/semantiq/internal/model"
	"github.com/so-keyldzn/semantiq/internal/store"
)

// Engine holds shared references to the Index Store and, optionally, the
// Embedder; it owns no persistent state of its own beyond an in-memory
// result cache.
type Engine struct {
	store    *store.Store
	embedder embed.Provider // nil disables the semantic sub-search
	cfg      config.RetrievalConfig
	calib    config.CalibrationConfig
	root     string // project root; identifies this Engine's project across processes

	cache otter.Cache[string, []Candidate]

	autoCalibrate func(language string, beforeCount, afterCount int) // nil disables the 500-crossing trigger

	thresholdLookup func(language string) (maxDistance, minSimilarity float32, err error) // nil uses compile-time defaults
}

// semanticSkipper is implemented by providers whose vectors carry no
// distance signal — the "alternative stub" §4.3 names, which "returns
// zero vectors (and the engine skips vector search)". The engine type-
// asserts for this instead of checking for a nil embedder, since the
// stub is itself a real, non-nil Provider.
type semanticSkipper interface {
	SkipVectorSearch() bool
}

func (e *Engine) semanticSearchEnabled() bool {
	if e.embedder == nil {
		return false
	}
	if sk, ok := e.embedder.(semanticSkipper); ok && sk.SkipVectorSearch() {
		return false
	}
	return true
}

// SetAutoCalibrateHook wires the Threshold Calibrator's "crosses 500"
// trigger (§4.7) into the observation path below. The composition root
// calls this once after constructing both the Engine and the Calibrator;
// a nil hook (the default) simply never auto-calibrates, which is fine for
// callers that only ever run `calibrate` manually.
func (e *Engine) SetAutoCalibrateHook(hook func(language string, beforeCount, afterCount int)) {
	e.autoCalibrate = hook
}

// SetThresholdLookup wires the Threshold Calibrator's read side (§4.7:
// "At query time the engine looks up thresholds in order: per-language
// -> _global_ sentinel -> compile-time defaults") into the semantic
// sub-search below. The composition root calls this once with
// Calibrator.LookupThresholds bound to the compile-time defaults; a nil
// lookup (the default) falls back to those same defaults directly.
func (e *Engine) SetThresholdLookup(lookup func(language string) (maxDistance, minSimilarity float32, err error)) {
	e.thresholdLookup = lookup
}

// New builds an Engine. embedder may be nil: search then runs with the
// semantic source contributing nothing, matching the teacher's
// eventual-consistency stance of a source that fails (or is absent)
// simply contributing no candidates rather than failing the whole query.
// root identifies the project this Engine serves; it should match
// whatever root the Auto-Indexer sweeps.
func New(st *store.Store, embedder embed.Provider, cfg config.RetrievalConfig, calib config.CalibrationConfig, root string) (*Engine, error) {
	builder, err := otter.MustBuilder[string, []Candidate](cfg.ResultCacheSize).CollectStats().Build()
	if err != nil {
		return nil, apperr.Internalf(err, "build retrieval result cache")
	}
	return &Engine{store: st, embedder: embedder, cfg: cfg, calib: calib, root: root, cache: builder}, nil
}

// SearchOptions narrows and bounds a search call (§4.5).
type SearchOptions struct {
	Limit      int      // default RetrievalConfig.DefaultLimit
	MinScore   float32  // default RetrievalConfig.DefaultMinScore
	FileType   []string // extensions without the dot; empty accepts the built-in blocklist's complement
	SymbolKind []string
	ActiveFile string // hint for the same-directory boost
}

// defaultBlockedExtensions is the implicit blocklist applied unless opts
// explicitly names FileType (§4.5): lock files, generated data, and docs
// rarely carry the kind of code-navigation signal this engine ranks for.
var defaultBlockedExtensions = map[string]struct{}{
	"lock": {}, "json": {}, "yaml": {}, "yml": {}, "md": {}, "toml": {},
}

func (o SearchOptions) limit() int {
	if o.Limit > 0 {
		return o.Limit
	}
	return 20
}

func (o SearchOptions) minScore() float32 {
	if o.MinScore > 0 {
		return o.MinScore
	}
	return 0.35
}

// Candidate is one fused search result, shaped per §6's transport-agnostic
// search-result contract: `{path, score, role?, symbols, line_start?,
// line_end?, snippet?}`. Role is always empty for search (only find_refs
// populates it); Semantic is an internal tie-break value and never
// crosses the wire.
type Candidate struct {
	Path       string           `json:"path"`
	LineStart  int              `json:"line_start,omitempty"`
	LineEnd    int              `json:"line_end,omitempty"`
	Snippet    string           `json:"snippet,omitempty"`
	SymbolKind model.SymbolKind `json:"symbol_kind,omitempty"` // empty when the hit carries no dominant symbol
	Role       string           `json:"role,omitempty"`
	Symbols    []string         `json:"symbols,omitempty"`
	Score      float64          `json:"score"`
	Semantic   float64          `json:"-"` // raw cosine similarity, used only for tie-break
}

func cacheKey(query string, opts SearchOptions) string {
	return strings.Join([]string{
		query, opts.ActiveFile,
		strings.Join(opts.FileType, ","), strings.Join(opts.SymbolKind, ","),
	}, "\x1f")
}

// Search runs the four-source fan-out, fuses with RRF, applies boosts and
// filters, and returns up to opts.Limit ranked Candidates (§4.5.1,
// §4.5.5). A per-subsearch timeout isolates a slow or failing source; the
// whole call still honors a wall-clock budget and returns Timeout with
// whatever was fused so far if that budget is exceeded.
func (e *Engine) Search(ctx context.Context, query string, opts SearchOptions) ([]Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.New(apperr.InvalidInput, "search query must not be empty")
	}

	key := cacheKey(query, opts)
	if cached, ok := e.cache.Get(key); ok {
		return cached, nil
	}

	budgetCtx, cancel := context.WithTimeout(ctx, e.cfg.WallClockBudget)
	defer cancel()

	variants := expandQuery(query)

	var (
		wg                          sync.WaitGroup
		symbolHits, textHits        []rankedItem
		semanticHits                []rankedItem
		seedPaths                   map[string]struct{}
		seedMu                      sync.Mutex
	)
	seedPaths = make(map[string]struct{})
	noteSeed := func(path string) {
		seedMu.Lock()
		seedPaths[path] = struct{}{}
		seedMu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		symbolHits = e.runSymbolSearch(budgetCtx, variants, opts)
		for _, h := range symbolHits {
			noteSeed(h.path)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		textHits = e.runTextSearch(budgetCtx, variants, opts)
		for _, h := range textHits {
			noteSeed(h.path)
		}
	}()

	if e.semanticSearchEnabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semanticHits = e.runSemanticSearch(budgetCtx, query, opts)
			for _, h := range semanticHits {
				noteSeed(h.path)
			}
		}()
	}

	waitDone := make(chan struct{})
	go func() { wg.Wait(); close(waitDone) }()

	timedOut := false
	select {
	case <-waitDone:
	case <-budgetCtx.Done():
		timedOut = true
	}

	graphHits := e.runGraphSearch(seedPaths)

	fused := fuse(e.cfg, symbolHits, textHits, semanticHits, graphHits)
	fused = applyBoosts(e.store, fused, query, opts, e.cfg)
	fused = filterAndRank(fused, opts)

	e.cache.Set(key, fused)

	if timedOut {
		return fused, apperr.New(apperr.Timeout, "search exceeded %s wall-clock budget; returning partial results", e.cfg.WallClockBudget)
	}
	return fused, nil
}

// rankedItem is one sub-search's candidate before fusion: rank is its
// 0-based position within that source's own result list.
type rankedItem struct {
	path        string
	lineStart   int
	lineEnd     int
	snippet     string
	symbolKind  model.SymbolKind
	symbolName  string
	rank        int
	semanticSim float64
}

func (e *Engine) runSymbolSearch(ctx context.Context, variants []string, opts SearchOptions) []rankedItem {
	subCtx, cancel := context.WithTimeout(ctx, e.cfg.SubSearchTimeout)
	defer cancel()

	type result struct {
		hits []store.SymbolResult
		err  error
	}
	done := make(chan result, 1)
	go func() {
		merged, err := e.searchSymbolsAcrossVariants(variants)
		done <- result{hits: merged, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil
		}
		return symbolResultsToRanked(r.hits, opts)
	case <-subCtx.Done():
		return nil
	}
}

func (e *Engine) searchSymbolsAcrossVariants(variants []string) ([]store.SymbolResult, error) {
	seen := make(map[int64]struct{})
	var merged []store.SymbolResult
	for _, v := range variants {
		hits, err := e.store.SearchSymbols(v, e.cfg.SymbolCandidateCap)
		if err != nil {
			continue
		}
		for _, h := range hits {
			if _, dup := seen[h.Symbol.ID]; dup {
				continue
			}
			seen[h.Symbol.ID] = struct{}{}
			merged = append(merged, h)
		}
	}
	return merged, nil
}

func symbolResultsToRanked(hits []store.SymbolResult, opts SearchOptions) []rankedItem {
	out := make([]rankedItem, 0, len(hits))
	for i, h := range hits {
		if !symbolKindAllowed(h.Symbol.Kind, opts.SymbolKind) {
			continue
		}
		out = append(out, rankedItem{
			path: h.Path, lineStart: h.Symbol.LineStart, lineEnd: h.Symbol.LineEnd,
			snippet: h.Symbol.Signature, symbolKind: h.Symbol.Kind, symbolName: h.Symbol.Name, rank: i,
		})
	}
	return out
}

func symbolKindAllowed(kind model.SymbolKind, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if string(kind) == a {
			return true
		}
	}
	return false
}

func (e *Engine) runSemanticSearch(ctx context.Context, query string, opts SearchOptions) []rankedItem {
	subCtx, cancel := context.WithTimeout(ctx, e.cfg.SubSearchTimeout)
	defer cancel()

	type result struct {
		hits []rankedItem
	}
	done := make(chan result, 1)
	go func() {
		vectors, err := e.embedder.EmbedBatch(subCtx, []string{query})
		if err != nil || len(vectors) == 0 {
			done <- result{}
			return
		}
		topK := e.cfg.TextCandidateCap
		if want := 10 * opts.limit(); want < topK {
			topK = want
		}
		if topK > 200 {
			topK = 200
		}
		chunks, err := e.store.SearchSimilarChunks(vectors[0], topK, "")
		if err != nil {
			done <- result{}
			return
		}
		out := make([]rankedItem, 0, len(chunks))
		rank := 0
		for _, c := range chunks {
			row, ok, err := e.store.ChunkByID(c.ChunkID)
			if err != nil || !ok {
				continue
			}
			similarity := 1 - c.Distance
			e.recordDistanceObservation(row.Path, float32(c.Distance))
			if !e.passesCalibratedThreshold(row.Path, c.Distance, similarity) {
				continue
			}
			out = append(out, rankedItem{
				path: row.Path, lineStart: row.LineStart, lineEnd: row.LineEnd,
				snippet: row.Content, rank: rank, semanticSim: similarity,
			})
			rank++
		}
		done <- result{hits: out}
	}()

	select {
	case r := <-done:
		return r.hits
	case <-subCtx.Done():
		return nil
	}
}

// passesCalibratedThreshold implements §4.7's read side: "At query time
// the engine looks up thresholds in order: per-language -> _global_
// sentinel -> compile-time defaults" and rejects a hit whose distance
// exceeds max_distance or whose similarity falls below min_similarity.
// A lookup failure (or no lookup wired at all) falls back to the
// compile-time defaults rather than rejecting every hit.
func (e *Engine) passesCalibratedThreshold(path string, distance, similarity float64) bool {
	maxDistance, minSimilarity := model.DefaultMaxDistance, model.DefaultMinSimilarity
	if e.thresholdLookup != nil {
		language := ""
		if file, ok, err := e.store.GetFileByPath(path); err == nil && ok {
			language = file.Language
		}
		if md, ms, err := e.thresholdLookup(language); err == nil {
			maxDistance, minSimilarity = md, ms
		}
	}
	return distance <= float64(maxDistance) && similarity >= float64(minSimilarity)
}

// recordDistanceObservation appends an observation for the chunk's owning
// file's language, sampled per the Calibrator's bootstrap/production
// switch (§4.7): every observation while a language is below the
// bootstrap threshold, a 10% sample afterward. Failures here never affect
// the search result itself.
func (e *Engine) recordDistanceObservation(path string, distance float32) {
	file, ok, err := e.store.GetFileByPath(path)
	if err != nil || !ok || file.Language == "" {
		return
	}
	beforeCount, err := e.store.CountObservations(file.Language)
	if err != nil {
		return
	}
	if beforeCount >= e.calib.BootstrapThreshold && rand.Float64() >= e.calib.ProductionSampleRate {
		return
	}
	if err := e.store.RecordObservation(file.Language, distance); err != nil {
		return
	}
	if e.autoCalibrate != nil {
		e.autoCalibrate(file.Language, beforeCount, beforeCount+1)
	}
}

func filepathExt(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}

func fileTypeAllowed(path string, opts SearchOptions) bool {
	ext := filepathExt(path)
	if len(opts.FileType) > 0 {
		for _, want := range opts.FileType {
			if strings.TrimPrefix(strings.ToLower(want), ".") == ext {
				return true
			}
		}
		return false
	}
	_, blocked := defaultBlockedExtensions[ext]
	return !blocked
}

var testPathMarkers = []string{"/test/", "/tests/", "_test.", ".test.", "/spec/", "_spec."}

func looksLikeTestPath(path string) bool {
	lower := strings.ToLower(path)
	for _, marker := range testPathMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

var testQueryTokens = []string{"test", "spec", "mock", "fixture"}

func queryMentionsTests(query string) bool {
	lower := strings.ToLower(query)
	for _, tok := range testQueryTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
