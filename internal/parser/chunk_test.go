package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/model"
)

func TestChunkLines_SymbolChunkCoversItsOwnSpan(t *testing.T) {
	t.Parallel()

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "x"
	}
	symbols := []model.Symbol{{Name: "f", LineStart: 5, LineEnd: 10, Kind: model.SymbolFunction}}

	chunks := chunkLines(lines, symbols)

	var found bool
	for _, c := range chunks {
		if c.LineStart == 5 && c.LineEnd == 10 {
			found = true
			assert.Contains(t, c.ContextLabel, "f")
		}
	}
	assert.True(t, found, "expected a chunk exactly spanning the symbol")
}

func TestChunkLines_SkipsSymbolsShorterThanMinimum(t *testing.T) {
	t.Parallel()

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "x"
	}
	// 2-line symbol, below minSymbolChunkLines: its lines fall into the
	// sliding-window pass instead of getting a dedicated chunk.
	symbols := []model.Symbol{{Name: "tiny", LineStart: 3, LineEnd: 4, Kind: model.SymbolVariable}}

	chunks := chunkLines(lines, symbols)
	for _, c := range chunks {
		assert.False(t, c.LineStart == 3 && c.LineEnd == 4)
	}
}

func TestChunkLines_SlidingWindowCoversUncoveredGap(t *testing.T) {
	t.Parallel()

	total := 120
	lines := make([]string, total)
	for i := range lines {
		lines[i] = "x"
	}

	chunks := chunkLines(lines, nil)
	require.NotEmpty(t, chunks)

	assert.Equal(t, 1, chunks[0].LineStart)
	assert.Equal(t, slidingWindowSize, chunks[0].LineEnd)

	last := chunks[len(chunks)-1]
	assert.Equal(t, total, last.LineEnd)
}

func TestChunkLines_SmallGapBelowMinimumIsDropped(t *testing.T) {
	t.Parallel()

	total := 20
	lines := make([]string, total)
	for i := range lines {
		lines[i] = "x"
	}
	// Symbol covers everything except a 2-line gap, below minGapRunLines.
	symbols := []model.Symbol{{Name: "big", LineStart: 1, LineEnd: 18, Kind: model.SymbolFunction}}

	chunks := chunkLines(lines, symbols)
	for _, c := range chunks {
		if c.ContextLabel == "code block" {
			t.Fatalf("did not expect a sliding-window chunk for a %d-line gap", total-18)
		}
	}
}

func TestChunkLines_EmptyFileYieldsNoChunks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, chunkLines(nil, nil))
}

func TestJoinLines_ClampsOutOfRangeBounds(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "b", "c"}
	assert.Equal(t, "a\nb\nc", joinLines(lines, 0, 10))
	assert.Equal(t, "", joinLines(lines, 5, 2))
}

func TestSlidingWindowChunks_OverlapsByConfiguredAmount(t *testing.T) {
	t.Parallel()

	lines := make([]string, 60)
	for i := range lines {
		lines[i] = "line"
	}
	chunks := slidingWindowChunks(lines, 1, 60)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, chunks[0].LineEnd-slidingWindowOverlap, chunks[1].LineStart-1)
	assert.True(t, strings.Count(chunks[0].Content, "\n") > 0)
}
