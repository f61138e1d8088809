package retrieval

import (
	"context"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

// SymbolExplanation is one Symbol row matching a name, carrying its
// defining file and usages (§4.5.4).
type SymbolExplanation struct {
	Path       string           `json:"path"`
	LineStart  int              `json:"line_start,omitempty"`
	LineEnd    int              `json:"line_end,omitempty"`
	Signature  string           `json:"signature,omitempty"`
	DocComment string           `json:"doc_comment,omitempty"`
	Kind       model.SymbolKind `json:"kind,omitempty"`
	Usages     []Ref            `json:"usages,omitempty"`
}

// Explain implements §4.5.4: every Symbol row named symbol, each paired
// with up to usageLimit usages from find_refs.
func (e *Engine) Explain(ctx context.Context, symbol string, usageLimit int) ([]SymbolExplanation, error) {
	if symbol == "" {
		return nil, apperr.New(apperr.InvalidInput, "symbol must not be empty")
	}
	if usageLimit <= 0 {
		usageLimit = 10
	}

	refs, err := e.FindRefs(ctx, symbol, e.cfg.FindRefsLimit)
	if err != nil {
		return nil, err
	}

	var usages []Ref
	for _, r := range refs {
		if r.Role == RoleUsage {
			usages = append(usages, r)
			if len(usages) >= usageLimit {
				break
			}
		}
	}

	hits, err := e.store.SearchSymbols(symbol, e.cfg.SymbolCandidateCap)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "search symbols for explain %q", symbol)
	}

	var out []SymbolExplanation
	for _, h := range hits {
		if h.Symbol.Name != symbol {
			continue
		}
		out = append(out, SymbolExplanation{
			Path: h.Path, LineStart: h.Symbol.LineStart, LineEnd: h.Symbol.LineEnd,
			Signature: h.Symbol.Signature, DocComment: h.Symbol.DocComment,
			Kind: h.Symbol.Kind, Usages: usages,
		})
	}
	if len(out) == 0 {
		return nil, apperr.New(apperr.PathNotFound, "no symbol named %q is indexed", symbol)
	}
	return out, nil
}
