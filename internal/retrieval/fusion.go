package retrieval

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/so-keyldzn/semantiq/internal/config"
	"github.com/so-keyldzn/semantiq/internal/store"
)

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// fusionKey identifies one candidate location across sources: a fine
// enough granularity (path + line span) that a symbol hit and a text hit
// on the same function merge into one fused candidate rather than two.
type fusionKey struct {
	path      string
	lineStart int
	lineEnd   int
}

// fuse implements §4.5.1's Reciprocal Rank Fusion: score(item) =
// Σ_source w_source · 1/(K + rank_source(item) + 1). A source that
// produced no results contributes nothing, rather than, say, imputing a
// worst-case rank for every other source's hits.
func fuse(cfg config.RetrievalConfig, symbol, text, semantic, graph []rankedItem) []Candidate {
	scores := make(map[fusionKey]*Candidate)

	apply := func(items []rankedItem, weight float64) {
		for _, item := range items {
			key := fusionKey{path: item.path, lineStart: item.lineStart, lineEnd: item.lineEnd}
			c, ok := scores[key]
			if !ok {
				c = &Candidate{
					Path: item.path, LineStart: item.lineStart, LineEnd: item.lineEnd,
					Snippet: item.snippet, SymbolKind: item.symbolKind,
				}
				scores[key] = c
			}
			if item.snippet != "" && c.Snippet == "" {
				c.Snippet = item.snippet
			}
			if item.symbolKind != "" && c.SymbolKind == "" {
				c.SymbolKind = item.symbolKind
			}
			if item.symbolName != "" && !containsString(c.Symbols, item.symbolName) {
				c.Symbols = append(c.Symbols, item.symbolName)
			}
			if item.semanticSim > c.Semantic {
				c.Semantic = item.semanticSim
			}
			c.Score += weight * (1.0 / (float64(cfg.RRFConstant) + float64(item.rank) + 1))
		}
	}

	apply(text, cfg.LexicalWeight)
	apply(semantic, cfg.SemanticWeight)
	apply(symbol, cfg.SymbolWeight)
	apply(graph, cfg.GraphWeight)

	out := make([]Candidate, 0, len(scores))
	for _, c := range scores {
		out = append(out, *c)
	}
	return out
}

// applyBoosts applies the post-fusion multiplicative adjustments named in
// §4.5.1: +20% for files modified in the last 7 days, +15% for files
// sharing a directory with opts.ActiveFile, -30% for test-path files
// unless the query itself looks test-related.
func applyBoosts(st *store.Store, candidates []Candidate, query string, opts SearchOptions, cfg config.RetrievalConfig) []Candidate {
	activeDir := ""
	if opts.ActiveFile != "" {
		activeDir = filepath.Dir(opts.ActiveFile)
	}
	queryWantsTests := queryMentionsTests(query)

	for i := range candidates {
		c := &candidates[i]

		if file, ok, err := st.GetFileByPath(c.Path); err == nil && ok {
			if time.Since(file.ModifiedAt) <= cfg.RecentWindow {
				c.Score *= 1 + cfg.RecentBoost
			}
		}

		if activeDir != "" && filepath.Dir(c.Path) == activeDir {
			c.Score *= 1 + cfg.SameDirBoost
		}

		if looksLikeTestPath(c.Path) && !queryWantsTests {
			c.Score *= 1 - cfg.TestPathPenalty
		}
	}
	return candidates
}

// filterAndRank drops items below opts' min_score, applies FileType and
// SymbolKind filters (symbol-kind filtering already happened per-source
// before fusion; FileType applies here since every source shares the
// same path-extension rule), sorts by score descending with the
// documented tie-break (higher raw semantic similarity, then shorter
// path), and truncates to opts.Limit.
func filterAndRank(candidates []Candidate, opts SearchOptions) []Candidate {
	threshold := opts.minScore()
	limit := opts.limit()

	filtered := candidates[:0]
	for _, c := range candidates {
		if c.Score < float64(threshold) {
			continue
		}
		if !fileTypeAllowed(c.Path, opts) {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score > filtered[j].Score
		}
		if filtered[i].Semantic != filtered[j].Semantic {
			return filtered[i].Semantic > filtered[j].Semantic
		}
		return len(filtered[i].Path) < len(filtered[j].Path)
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
