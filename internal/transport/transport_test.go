package transport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/config"
	"github.com/so-keyldzn/semantiq/internal/embed"
	"github.com/so-keyldzn/semantiq/internal/retrieval"
	"github.com/so-keyldzn/semantiq/internal/store"
)

func testRetrievalEngine(t *testing.T) *retrieval.Engine {
	t.Helper()
	root := t.TempDir()
	dbPath := filepath.Join(root, "index.db")
	st, err := store.Open(store.Options{Path: dbPath, BusyTimeoutMS: 5000, MmapSizeBytes: 64 << 20})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	embedder, err := embed.NewProvider(embed.Config{Provider: "stub"})
	require.NoError(t, err)

	cfg := config.Default()
	retr, err := retrieval.New(st, embedder, cfg.Retrieval, cfg.Calibration, root)
	require.NoError(t, err)
	return retr
}

func TestNewServer_RegistersAllFourToolsWithoutPanicking(t *testing.T) {
	var s any
	require.NotPanics(t, func() {
		s = NewServer(testRetrievalEngine(t), "test")
	})
	assert.NotNil(t, s)
}

func TestNewServer_SucceedsWithUnopenedRootDirectory(t *testing.T) {
	root := filepath.Join(os.TempDir(), "semantiq-transport-test-missing")
	dbPath := filepath.Join(t.TempDir(), "index.db")
	st, err := store.Open(store.Options{Path: dbPath, BusyTimeoutMS: 5000, MmapSizeBytes: 64 << 20})
	require.NoError(t, err)
	defer st.Close()

	embedder, err := embed.NewProvider(embed.Config{Provider: "stub"})
	require.NoError(t, err)

	cfg := config.Default()
	retr, err := retrieval.New(st, embedder, cfg.Retrieval, cfg.Calibration, root)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		NewServer(retr, "test")
	})
}
