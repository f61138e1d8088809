package retrieval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/config"
	"github.com/so-keyldzn/semantiq/internal/model"
)

func testRetrievalConfig() config.RetrievalConfig {
	return config.Default().Retrieval
}

func TestFuse_CombinesWeightedRanksAcrossSources(t *testing.T) {
	cfg := testRetrievalConfig()

	symbol := []rankedItem{{path: "a.go", lineStart: 1, lineEnd: 3, rank: 0}}
	text := []rankedItem{{path: "a.go", lineStart: 1, lineEnd: 3, rank: 0}}

	out := fuse(cfg, symbol, text, nil, nil)
	require.Len(t, out, 1)

	want := cfg.SymbolWeight*(1.0/(float64(cfg.RRFConstant)+1)) + cfg.LexicalWeight*(1.0/(float64(cfg.RRFConstant)+1))
	assert.InDelta(t, want, out[0].Score, 1e-9)
}

func TestFuse_DistinctLocationsStaySeparateCandidates(t *testing.T) {
	cfg := testRetrievalConfig()
	symbol := []rankedItem{
		{path: "a.go", lineStart: 1, lineEnd: 3, rank: 0},
		{path: "b.go", lineStart: 10, lineEnd: 12, rank: 1},
	}
	out := fuse(cfg, symbol, nil, nil, nil)
	assert.Len(t, out, 2)
}

func TestFuse_SourceWithNoHitsContributesNothing(t *testing.T) {
	cfg := testRetrievalConfig()
	out := fuse(cfg, nil, nil, nil, nil)
	assert.Empty(t, out)
}

func TestFuse_PreservesSnippetAndSymbolKindFromFirstSource(t *testing.T) {
	cfg := testRetrievalConfig()
	symbol := []rankedItem{{path: "a.go", lineStart: 1, lineEnd: 1, rank: 0, snippet: "func Foo()", symbolKind: model.SymbolFunction}}
	out := fuse(cfg, symbol, nil, nil, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "func Foo()", out[0].Snippet)
	assert.Equal(t, model.SymbolFunction, out[0].SymbolKind)
}

func TestFuse_CollectsSymbolNamesWithoutDuplicates(t *testing.T) {
	cfg := testRetrievalConfig()
	symbol := []rankedItem{{path: "a.go", lineStart: 1, lineEnd: 1, rank: 0, symbolName: "Foo"}}
	text := []rankedItem{{path: "a.go", lineStart: 1, lineEnd: 1, rank: 0, symbolName: "Foo"}}
	out := fuse(cfg, symbol, text, nil, nil)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"Foo"}, out[0].Symbols)
}

func TestApplyBoosts_TestPathPenalizedUnlessQueryMentionsTests(t *testing.T) {
	cfg := testRetrievalConfig()
	st := openTestStore(t)
	candidates := []Candidate{{Path: "pkg/foo_test.go", Score: 1.0}}

	penalized := applyBoosts(st, append([]Candidate{}, candidates...), "widget factory", SearchOptions{}, cfg)
	assert.InDelta(t, 1.0*(1-cfg.TestPathPenalty), penalized[0].Score, 1e-9)

	unpenalized := applyBoosts(st, append([]Candidate{}, candidates...), "test fixture for widget", SearchOptions{}, cfg)
	assert.InDelta(t, 1.0, unpenalized[0].Score, 1e-9)
}

func TestApplyBoosts_SameDirectoryAsActiveFileBoosted(t *testing.T) {
	cfg := testRetrievalConfig()
	st := openTestStore(t)
	candidates := []Candidate{{Path: "pkg/widget/foo.go", Score: 1.0}}
	out := applyBoosts(st, candidates, "anything", SearchOptions{ActiveFile: "pkg/widget/bar.go"}, cfg)
	assert.InDelta(t, 1.0*(1+cfg.SameDirBoost), out[0].Score, 1e-9)
}

func TestFilterAndRank_DropsBelowMinScoreAndTruncatesToLimit(t *testing.T) {
	candidates := []Candidate{
		{Path: "a.go", Score: 0.9},
		{Path: "b.go", Score: 0.1},
		{Path: "c.go", Score: 0.5},
	}
	out := filterAndRank(candidates, SearchOptions{MinScore: 0.4, Limit: 1})
	require.Len(t, out, 1)
	assert.Equal(t, "a.go", out[0].Path)
}

func TestFilterAndRank_TieBreaksBySemanticThenPathLength(t *testing.T) {
	candidates := []Candidate{
		{Path: "longer/path.go", Score: 0.5, Semantic: 0.5},
		{Path: "short.go", Score: 0.5, Semantic: 0.5},
	}
	out := filterAndRank(candidates, SearchOptions{MinScore: 0, Limit: 10})
	require.Len(t, out, 2)
	assert.Equal(t, "short.go", out[0].Path)
}

func TestFilterAndRank_AppliesFileTypeFilter(t *testing.T) {
	candidates := []Candidate{
		{Path: "a.go", Score: 1},
		{Path: "b.md", Score: 1},
	}
	out := filterAndRank(candidates, SearchOptions{MinScore: 0, Limit: 10, FileType: []string{"go"}})
	require.Len(t, out, 1)
	assert.Equal(t, "a.go", out[0].Path)
}

func TestFilterAndRank_DefaultBlocklistExcludesDocsAndLockfiles(t *testing.T) {
	candidates := []Candidate{
		{Path: "a.go", Score: 1},
		{Path: "README.md", Score: 1},
		{Path: "yarn.lock", Score: 1},
	}
	out := filterAndRank(candidates, SearchOptions{MinScore: 0, Limit: 10})
	require.Len(t, out, 1)
	assert.Equal(t, "a.go", out[0].Path)
}

func TestLooksLikeTestPath_MatchesCommonConventions(t *testing.T) {
	assert.True(t, looksLikeTestPath("internal/store/store_test.go"))
	assert.True(t, looksLikeTestPath("src/tests/helpers.py"))
	assert.False(t, looksLikeTestPath("internal/store/store.go"))
}

func TestQueryMentionsTests_CaseInsensitive(t *testing.T) {
	assert.True(t, queryMentionsTests("Where are the MOCK responses?"))
	assert.False(t, queryMentionsTests("connection pool sizing"))
}

func TestRecentWindowDuration_IsSevenDays(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, testRetrievalConfig().RecentWindow)
}
