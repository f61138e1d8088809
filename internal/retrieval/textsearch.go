package retrieval

import (
	"context"
)

// runTextSearch is the "Text" sub-search (§4.5.1): an FTS5 query over the
// Index Store's chunks_fts table, the same table replaceChunksTx keeps in
// sync on every write. Each query variant is ORed into a single MATCH
// expression, so a chunk matching any phrasing of the query counts as a
// hit.
func (e *Engine) runTextSearch(ctx context.Context, variants []string, opts SearchOptions) []rankedItem {
	subCtx, cancel := context.WithTimeout(ctx, e.cfg.SubSearchTimeout)
	defer cancel()

	done := make(chan []rankedItem, 1)
	go func() {
		done <- e.searchTextChunks(variants)
	}()

	select {
	case hits := <-done:
		return hits
	case <-subCtx.Done():
		return nil
	}
}

func (e *Engine) searchTextChunks(variants []string) []rankedItem {
	rows, err := e.store.SearchTextAnyVariant(variants, e.cfg.TextCandidateCap, "")
	if err != nil {
		return nil
	}

	out := make([]rankedItem, 0, len(rows))
	for i, r := range rows {
		out = append(out, rankedItem{
			path: r.Path, lineStart: r.LineStart, lineEnd: r.LineEnd,
			snippet: r.Content, rank: i,
		})
	}
	return out
}
