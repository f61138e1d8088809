package retrieval

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	s, err := store.Open(store.Options{Path: path, BusyTimeoutMS: 5000, MmapSizeBytes: 64 << 20})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
