package embed

import (
	"context"
	"fmt"
)

// MaxAutoIndexerBatch is the batch size ceiling the auto-indexer applies
// when embedding chunks during a sweep (§4.3: "auto-indexer uses ≤32").
const MaxAutoIndexerBatch = 32

// BatchProgress reports progress through a multi-batch EmbedBatches call.
type BatchProgress struct {
	BatchIndex      int
	TotalBatches    int
	ProcessedChunks int
	TotalChunks     int
}

// EmbedBatches splits texts into sequential batches of at most batchSize
// and embeds each in turn, preserving input order. progressCh may be nil
// to disable progress reporting. A batchSize <= 0 defaults to
// MaxAutoIndexerBatch.
func EmbedBatches(ctx context.Context, provider Provider, texts []string, batchSize int, progressCh chan<- BatchProgress) ([][]float32, error) {
	total := len(texts)
	if total == 0 {
		return [][]float32{}, nil
	}
	if batchSize <= 0 {
		batchSize = MaxAutoIndexerBatch
	}

	numBatches := (total + batchSize - 1) / batchSize
	results := make([][]float32, total)
	processed := 0

	for batchIdx := 0; batchIdx < numBatches; batchIdx++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		start := batchIdx * batchSize
		end := start + batchSize
		if end > total {
			end = total
		}

		batch, err := provider.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d/%d: %w", batchIdx+1, numBatches, err)
		}
		copy(results[start:end], batch)

		processed += end - start
		if progressCh != nil {
			progressCh <- BatchProgress{
				BatchIndex:      batchIdx + 1,
				TotalBatches:    numBatches,
				ProcessedChunks: processed,
				TotalChunks:     total,
			}
		}
	}

	return results, nil
}
