package retrieval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/config"
	"github.com/so-keyldzn/semantiq/internal/model"
	"github.com/so-keyldzn/semantiq/internal/store"
)

// stubEmbedder returns a fixed vector for every input, so tests can drive
// the semantic sub-search without a running embedding subprocess.
type stubEmbedder struct {
	vector []float32
	err    error
	called bool
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return model.EmbeddingDimensions }
func (s *stubEmbedder) Close() error    { return nil }

func newSearchEngine(t *testing.T, root string, cfg config.RetrievalConfig) (*Engine, *store.Store) {
	t.Helper()
	st := openTestStore(t)
	e, err := New(st, nil, cfg, config.Default().Calibration, root)
	require.NoError(t, err)
	return e, st
}

func TestSearch_EmptyQueryIsInvalidInput(t *testing.T) {
	e, _ := newSearchEngine(t, t.TempDir(), config.Default().Retrieval)
	_, err := e.Search(context.Background(), "   ", SearchOptions{})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}

func indexTextFixture(t *testing.T, st *store.Store, path, content string) {
	t.Helper()
	_, err := st.ReplaceFile(store.FileUpdate{
		Path: path, ContentHash: "h1", SizeBytes: uint64(len(content)),
		ModifiedAt: time.Now(), Language: "go",
		Chunks: []model.Chunk{
			{Content: content, LineStart: 1, LineEnd: 3, ContextLabel: "function RateLimit"},
		},
	})
	require.NoError(t, err)
}

func TestSearch_FindsTextMatchViaFTSSubSearch(t *testing.T) {
	root := t.TempDir()
	e, st := newSearchEngine(t, root, config.Default().Retrieval)
	indexTextFixture(t, st, "limiter.go", "package widget\n\nfunc RateLimit() {}\n")

	results, err := e.Search(context.Background(), "RateLimit", SearchOptions{MinScore: 0})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "limiter.go", results[0].Path)
}

func TestSearch_ResultIsCachedAcrossIdenticalCalls(t *testing.T) {
	root := t.TempDir()
	e, st := newSearchEngine(t, root, config.Default().Retrieval)
	indexTextFixture(t, st, "limiter.go", "package widget\n\nfunc RateLimit() {}\n")

	first, err := e.Search(context.Background(), "RateLimit", SearchOptions{MinScore: 0})
	require.NoError(t, err)

	// Remove the chunk from the store; a cache hit should still return the
	// earlier result set without re-querying the (now-empty) index.
	_, err = st.ReplaceFile(store.FileUpdate{
		Path: "limiter.go", ContentHash: "h2", SizeBytes: 0,
		ModifiedAt: time.Now(), Language: "go",
	})
	require.NoError(t, err)

	second, err := e.Search(context.Background(), "RateLimit", SearchOptions{MinScore: 0})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearch_DifferentOptionsBypassCache(t *testing.T) {
	root := t.TempDir()
	e, st := newSearchEngine(t, root, config.Default().Retrieval)
	indexTextFixture(t, st, "limiter.go", "package widget\n\nfunc RateLimit() {}\n")

	_, err := e.Search(context.Background(), "RateLimit", SearchOptions{MinScore: 0, ActiveFile: "a.go"})
	require.NoError(t, err)

	results, err := e.Search(context.Background(), "RateLimit", SearchOptions{MinScore: 0, ActiveFile: "limiter.go"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestSearch_SemanticSourceContributesWhenEmbedderPresent(t *testing.T) {
	root := t.TempDir()
	source := "package widget\n\nfunc RateLimit() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "limiter.go"), []byte(source), 0o644))

	st := openTestStore(t)
	_, err := st.ReplaceFile(store.FileUpdate{
		Path: "limiter.go", ContentHash: "h1", SizeBytes: uint64(len(source)),
		ModifiedAt: time.Now(), Language: "go",
		Chunks: []model.Chunk{
			{Content: source, LineStart: 1, LineEnd: 3, ContextLabel: "function RateLimit",
				Embedding: make([]float32, model.EmbeddingDimensions)},
		},
	})
	require.NoError(t, err)

	embedder := &stubEmbedder{vector: make([]float32, model.EmbeddingDimensions)}
	e, err := New(st, embedder, config.Default().Retrieval, config.Default().Calibration, root)
	require.NoError(t, err)

	results, err := e.Search(context.Background(), "throughput shaping", SearchOptions{MinScore: 0})
	require.NoError(t, err)
	require.NotEmpty(t, results)
}

func TestSearch_EmbedderFailureStillReturnsOtherSources(t *testing.T) {
	root := t.TempDir()
	st := openTestStore(t)
	indexTextFixture(t, st, "limiter.go", "package widget\n\nfunc RateLimit() {}\n")

	embedder := &stubEmbedder{err: errors.New("embedder unavailable")}
	e, err := New(st, embedder, config.Default().Retrieval, config.Default().Calibration, root)
	require.NoError(t, err)

	results, err := e.Search(context.Background(), "RateLimit", SearchOptions{MinScore: 0})
	require.NoError(t, err)
	require.NotEmpty(t, results)
}

func TestSearch_RespectsWallClockBudgetTimeout(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "limiter.go"), []byte("package widget\n\nfunc RateLimit() {}\n"), 0o644))

	cfg := config.Default().Retrieval
	cfg.WallClockBudget = 1 * time.Nanosecond
	cfg.SubSearchTimeout = 1 * time.Nanosecond

	e, _ := newSearchEngine(t, root, cfg)
	_, err := e.Search(context.Background(), "RateLimit", SearchOptions{MinScore: 0})
	require.Error(t, err)
	assert.Equal(t, apperr.Timeout, apperr.KindOf(err))
}

func TestSymbolKindAllowed_EmptyAllowListAllowsEverything(t *testing.T) {
	assert.True(t, symbolKindAllowed(model.SymbolFunction, nil))
}

func TestSymbolKindAllowed_FiltersToNamedKinds(t *testing.T) {
	assert.True(t, symbolKindAllowed(model.SymbolClass, []string{"class", "struct"}))
	assert.False(t, symbolKindAllowed(model.SymbolFunction, []string{"class", "struct"}))
}

func TestFileTypeAllowed_DefaultBlocklistRejectsMarkdown(t *testing.T) {
	assert.False(t, fileTypeAllowed("README.md", SearchOptions{}))
	assert.True(t, fileTypeAllowed("main.go", SearchOptions{}))
}

func TestFileTypeAllowed_ExplicitFileTypeOverridesBlocklist(t *testing.T) {
	assert.True(t, fileTypeAllowed("README.md", SearchOptions{FileType: []string{"md"}}))
}

func TestCacheKey_DiffersByActiveFileAndFilters(t *testing.T) {
	a := cacheKey("foo", SearchOptions{ActiveFile: "a.go"})
	b := cacheKey("foo", SearchOptions{ActiveFile: "b.go"})
	assert.NotEqual(t, a, b)
}

func TestRecordDistanceObservation_SamplesAfterBootstrapThreshold(t *testing.T) {
	root := t.TempDir()
	source := "package widget\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "f.go"), []byte(source), 0o644))

	st := openTestStore(t)
	_, err := st.ReplaceFile(store.FileUpdate{
		Path: "f.go", ContentHash: "h1", SizeBytes: uint64(len(source)),
		ModifiedAt: time.Now(), Language: "go",
	})
	require.NoError(t, err)

	cfg := config.Default().Calibration
	cfg.BootstrapThreshold = 0
	cfg.ProductionSampleRate = 0

	e, err := New(st, nil, config.Default().Retrieval, cfg, root)
	require.NoError(t, err)

	e.recordDistanceObservation("f.go", 0.42)
	count, err := st.CountObservations("go")
	require.NoError(t, err)
	assert.Equal(t, 0, count, "production sampling at rate 0 should reject every observation past the bootstrap threshold")
}

func TestRecordDistanceObservation_UnknownFileIsNoop(t *testing.T) {
	e, _ := newSearchEngine(t, t.TempDir(), config.Default().Retrieval)
	e.recordDistanceObservation("does-not-exist.go", 0.1)
}
