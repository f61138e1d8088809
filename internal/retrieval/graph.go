package retrieval

import (
	"github.com/dominikbraun/graph"
)

// runGraphSearch is the "graph" RRF source: a one-hop expansion from the
// files already surfaced by the symbol/text/semantic sub-searches
// (seedPaths) along the dependency edges resolved by deps(), ranked by
// how many distinct seeds reference each neighbor. A file several seeds
// import in common is more likely relevant than one only one seed
// touches, even if no search term appears in its text.
//
// The dependency graph built here is transient and in-memory, scoped to
// one call — dominikbraun/graph gives a safe way to walk it without
// hand-rolling cycle detection for a codebase that may have import
// cycles.
func (e *Engine) runGraphSearch(seedPaths map[string]struct{}) []rankedItem {
	if len(seedPaths) == 0 {
		return nil
	}

	g := graph.New(graph.StringHash, graph.Directed())
	neighborHits := make(map[string]int)

	for seed := range seedPaths {
		_ = g.AddVertex(seed)

		file, ok, err := e.store.GetFileByPath(seed)
		if err != nil || !ok {
			continue
		}

		for _, dep := range mustListDependencies(e.store, file.ID) {
			target := resolveDependencyPath(e.store, dep, file)
			if target == "" || target == seed {
				continue
			}
			_ = g.AddVertex(target)
			if err := g.AddEdge(seed, target); err == nil {
				if _, isSeed := seedPaths[target]; !isSeed {
					neighborHits[target]++
				}
			}
		}

		for _, dependent := range mustGetDependents(e.store, seed) {
			_ = g.AddVertex(dependent.FromPath)
			if err := g.AddEdge(dependent.FromPath, seed); err == nil {
				if _, isSeed := seedPaths[dependent.FromPath]; !isSeed {
					neighborHits[dependent.FromPath]++
				}
			}
		}
	}

	return rankNeighbors(neighborHits)
}

func rankNeighbors(hits map[string]int) []rankedItem {
	if len(hits) == 0 {
		return nil
	}
	paths := make([]string, 0, len(hits))
	for p := range hits {
		paths = append(paths, p)
	}
	// Selection sort by hit count descending (not stable: paths with equal
	// counts keep no particular order) keeps this small and
	// dependency-free; neighbor sets here are a handful of seeds' worth of
	// edges, never search-index-sized.
	for i := 0; i < len(paths); i++ {
		best := i
		for j := i + 1; j < len(paths); j++ {
			if hits[paths[j]] > hits[paths[best]] {
				best = j
			}
		}
		paths[i], paths[best] = paths[best], paths[i]
	}

	out := make([]rankedItem, len(paths))
	for i, p := range paths {
		out[i] = rankedItem{path: p, rank: i}
	}
	return out
}
