package retrieval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/config"
	"github.com/so-keyldzn/semantiq/internal/model"
	"github.com/so-keyldzn/semantiq/internal/store"
)

func newTextEngine(t *testing.T, root string) (*Engine, *store.Store) {
	t.Helper()
	st := openTestStore(t)
	e, err := New(st, nil, config.Default().Retrieval, config.Default().Calibration, root)
	require.NoError(t, err)
	return e, st
}

func indexChunk(t *testing.T, st *store.Store, path, content string) {
	t.Helper()
	_, err := st.ReplaceFile(store.FileUpdate{
		Path: path, ContentHash: path, SizeBytes: uint64(len(content)),
		ModifiedAt: time.Now(), Language: "go",
		Chunks: []model.Chunk{{Content: content, LineStart: 1, LineEnd: 3}},
	})
	require.NoError(t, err)
}

func TestSearchTextChunks_FindsMatchAcrossIndexedFiles(t *testing.T) {
	e, st := newTextEngine(t, t.TempDir())
	indexChunk(t, st, "widget.go", "package widget\n\nfunc RateLimit() {}\n")
	indexChunk(t, st, "notes.txt", "RateLimit appears here too\n")

	hits := e.searchTextChunks([]string{"RateLimit"})

	require.Len(t, hits, 2)
}

func TestSearchTextChunks_ORsAcrossQueryVariants(t *testing.T) {
	e, st := newTextEngine(t, t.TempDir())
	indexChunk(t, st, "throttle.go", "package widget\n\nfunc Throttle() {}\n")

	hits := e.searchTextChunks([]string{"nonexistent-phrase", "Throttle"})

	require.Len(t, hits, 1)
	assert.Equal(t, "throttle.go", hits[0].path)
}

func TestSearchTextChunks_CapsAtTextCandidateLimit(t *testing.T) {
	e, st := newTextEngine(t, t.TempDir())
	for i := 0; i < 5; i++ {
		indexChunk(t, st, string(rune('a'+i))+".go", "package p\n\nfunc Needle() {}\n")
	}
	e.cfg.TextCandidateCap = 2

	hits := e.searchTextChunks([]string{"Needle"})

	assert.Len(t, hits, 2)
}

func TestRunTextSearch_ReturnsNilOnContextTimeout(t *testing.T) {
	e, _ := newTextEngine(t, t.TempDir())
	e.cfg.SubSearchTimeout = 1 * time.Nanosecond

	hits := e.runTextSearch(context.Background(), []string{"anything"}, SearchOptions{})
	assert.Nil(t, hits)
}
