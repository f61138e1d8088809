// Package embed implements the Embedder (§4.3): a single operation,
// embed_batch, turning text chunks into unit-normalized dense vectors of a
// compile-time-fixed width.
package embed

import (
	"context"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// Dimensions is the D the Index Store's vector index and every Provider
// agree on at compile time.
const Dimensions = model.EmbeddingDimensions

// Provider embeds text into L2-normalized f32 vectors of length Dimensions.
// Output length always equals input length; a Provider never reorders or
// drops inputs.
type Provider interface {
	// EmbedBatch converts texts into their vector representations.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions reports the vector width this Provider produces.
	Dimensions() int

	// Close releases any resources held by the provider (connections,
	// subprocess handles). Safe to call on an already-closed Provider.
	Close() error
}
