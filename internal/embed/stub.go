package embed

import (
	"context"
	"sync"
)

// stubProvider is the "alternative stub" named in §4.3: it returns all-zero
// vectors and never fails, so the retrieval engine can run with the
// semantic sub-search deliberately disabled (zero vectors sort as maximally
// distant and the fusion stage simply gets nothing back from that source).
// It requires no model file, subprocess, or network and is the default when
// no embedding provider is configured.
type stubProvider struct {
	mu     sync.Mutex
	closed bool
}

func newStubProvider() *stubProvider {
	return &stubProvider{}
}

func (p *stubProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = make([]float32, Dimensions)
	}
	return out, nil
}

func (p *stubProvider) Dimensions() int { return Dimensions }

// SkipVectorSearch implements the capability the Retrieval Engine type-
// asserts for: "an alternative stub returns zero vectors (and the engine
// skips vector search)" (§4.3). A real Provider has no such method, so
// the engine runs its semantic sub-search against any other
// implementation unconditionally.
func (p *stubProvider) SkipVectorSearch() bool { return true }

func (p *stubProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *stubProvider) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
