package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubProvider_EmbedBatchReturnsZeroVectors(t *testing.T) {
	t.Parallel()

	p := newStubProvider()
	out, err := p.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, vec := range out {
		require.Len(t, vec, Dimensions)
		for _, x := range vec {
			assert.Equal(t, float32(0), x)
		}
	}
}

func TestStubProvider_EmbedBatchEmptyInput(t *testing.T) {
	t.Parallel()

	p := newStubProvider()
	out, err := p.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStubProvider_EmbedBatchRespectsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newStubProvider()
	_, err := p.EmbedBatch(ctx, []string{"x"})
	assert.Error(t, err)
}

func TestStubProvider_Dimensions(t *testing.T) {
	t.Parallel()

	p := newStubProvider()
	assert.Equal(t, 384, p.Dimensions())
}

func TestStubProvider_SkipVectorSearchReportsTrue(t *testing.T) {
	t.Parallel()

	p := newStubProvider()
	assert.True(t, p.SkipVectorSearch())
}

func TestStubProvider_Close(t *testing.T) {
	t.Parallel()

	p := newStubProvider()
	assert.False(t, p.isClosed())
	require.NoError(t, p.Close())
	assert.True(t, p.isClosed())
}
