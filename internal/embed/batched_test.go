package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedBatches_SplitsAndPreservesOrder(t *testing.T) {
	t.Parallel()

	p := newStubProvider()
	texts := make([]string, 10)
	for i := range texts {
		texts[i] = "t"
	}

	progressCh := make(chan BatchProgress, 10)
	out, err := EmbedBatches(context.Background(), p, texts, 3, progressCh)
	close(progressCh)
	require.NoError(t, err)
	require.Len(t, out, 10)

	var lastBatch BatchProgress
	count := 0
	for prog := range progressCh {
		count++
		lastBatch = prog
	}
	assert.Equal(t, 4, count)
	assert.Equal(t, 10, lastBatch.ProcessedChunks)
	assert.Equal(t, 4, lastBatch.TotalBatches)
}

func TestEmbedBatches_DefaultsBatchSize(t *testing.T) {
	t.Parallel()

	p := newStubProvider()
	texts := make([]string, 40)
	out, err := EmbedBatches(context.Background(), p, texts, 0, nil)
	require.NoError(t, err)
	assert.Len(t, out, 40)
}

func TestEmbedBatches_EmptyInput(t *testing.T) {
	t.Parallel()

	p := newStubProvider()
	out, err := EmbedBatches(context.Background(), p, nil, 8, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEmbedBatches_CancellationStopsEarly(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newStubProvider()
	_, err := EmbedBatches(ctx, p, []string{"a", "b"}, 1, nil)
	assert.Error(t, err)
}
