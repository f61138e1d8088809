package retrieval

import (
	"context"
	"fmt"
	"regexp"

	"github.com/so-keyldzn/semantiq/internal/apperr"
)

// RefRole distinguishes a find_refs hit's provenance (§4.5.2).
type RefRole string

const (
	RoleDefinition RefRole = "definition"
	RoleUsage      RefRole = "usage"
)

// Ref is one find_refs result, the same §6 search-result shape
// (`{path, score?, role, symbols, line_start?, line_end?, snippet?}`)
// Candidate uses, specialized to carry the one symbol find_refs was
// called for.
type Ref struct {
	Path      string   `json:"path"`
	LineStart int      `json:"line_start,omitempty"`
	LineEnd   int      `json:"line_end,omitempty"`
	Snippet   string   `json:"snippet,omitempty"`
	Role      RefRole  `json:"role"`
	Symbols   []string `json:"symbols,omitempty"`
}

// FindRefs implements §4.5.2: exact Symbol-name definitions plus
// \bsymbol\b text usages, deduplicated by (file, line).
func (e *Engine) FindRefs(ctx context.Context, symbol string, limit int) ([]Ref, error) {
	if symbol == "" {
		return nil, apperr.New(apperr.InvalidInput, "symbol must not be empty")
	}
	if limit <= 0 {
		limit = e.cfg.FindRefsLimit
	}

	defs, err := e.exactSymbolMatches(symbol, limit)
	if err != nil {
		return nil, err
	}

	usagePattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(symbol) + `\b`)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "compile usage pattern for %q", symbol)
	}
	usages := e.runTextSearch(ctx, []string{symbol}, SearchOptions{Limit: limit})

	seen := make(map[string]struct{}, len(defs)+len(usages))
	var out []Ref

	for _, d := range defs {
		key := fmt.Sprintf("%s:%d", d.Path, d.LineStart)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}

	for _, u := range usages {
		if !usagePattern.MatchString(u.snippet) {
			continue
		}
		key := fmt.Sprintf("%s:%d", u.path, u.lineStart)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Ref{Path: u.path, LineStart: u.lineStart, LineEnd: u.lineEnd, Snippet: u.snippet, Role: RoleUsage, Symbols: []string{symbol}})
		if len(out) >= limit {
			break
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// exactSymbolMatches returns every Symbol row whose name equals symbol
// exactly, tagged as definitions. SearchSymbols runs an FTS match (a
// superset of exact-name hits), so results are filtered down to an exact
// name comparison here.
func (e *Engine) exactSymbolMatches(symbol string, limit int) ([]Ref, error) {
	hits, err := e.store.SearchSymbols(symbol, e.cfg.SymbolCandidateCap)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "search symbols for find_refs %q", symbol)
	}

	var out []Ref
	for _, h := range hits {
		if h.Symbol.Name != symbol {
			continue
		}
		out = append(out, Ref{
			Path: h.Path, LineStart: h.Symbol.LineStart, LineEnd: h.Symbol.LineEnd,
			Snippet: h.Symbol.Signature, Role: RoleDefinition, Symbols: []string{h.Symbol.Name},
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
