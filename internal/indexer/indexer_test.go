package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/embed"
	"github.com/so-keyldzn/semantiq/internal/store"
)

func newTestIndexer(t *testing.T, root string) (*Indexer, *store.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "index.db")
	st, err := store.Open(store.Options{Path: dbPath, BusyTimeoutMS: 5000, MmapSizeBytes: 64 << 20})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	embedder, err := embed.NewProvider(embed.Config{Provider: "stub"})
	require.NoError(t, err)

	ix := New(st, embedder, Config{Root: root, WorkerPoolSize: 2, ProgressEvery: 1}, nil)
	return ix, st
}

func TestSweep_IndexesEligibleFilesAndSkipsIneligibleOnes(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nfunc Run() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.unknown"), []byte("not code"), 0o644))

	ix, st := newTestIndexer(t, root)
	stats, err := ix.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesIndexed)

	_, ok, err := st.GetFileByPath("main.go")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSweep_SkipsFileWhoseFingerprintAlreadyMatches(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nfunc Run() {}\n"), 0o644))

	ix, _ := newTestIndexer(t, root)
	first, err := ix.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.FilesIndexed)

	second, err := ix.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.FilesIndexed)
	assert.Equal(t, 1, second.FilesSkipped)
}

func TestSweep_ReindexesFileWhoseContentChanged(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc Run() {}\n"), 0o644))

	ix, _ := newTestIndexer(t, root)
	_, err := ix.Sweep(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc Run() {}\n\nfunc Stop() {}\n"), 0o644))
	second, err := ix.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.FilesIndexed)
}

func TestSweep_PrunesRowsForFilesRemovedFromDisk(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc Run() {}\n"), 0o644))

	ix, st := newTestIndexer(t, root)
	_, err := ix.Sweep(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	stats, err := ix.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesRemoved)

	_, ok, err := st.GetFileByPath("main.go")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSweep_PrunesBlockedDirectoriesWithoutDescending(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "pkg", "lib.go"), []byte("package pkg\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nfunc Run() {}\n"), 0o644))

	ix, _ := newTestIndexer(t, root)
	stats, err := ix.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesSeen)
}

func TestReindexPath_SymlinkIsSkippedNotFollowed(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real.go")
	require.NoError(t, os.WriteFile(target, []byte("package main\n\nfunc Run() {}\n"), 0o644))

	link := filepath.Join(root, "link.go")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported in this environment: %v", err)
	}

	ix, st := newTestIndexer(t, root)
	skipped, err := ix.reindexPath(context.Background(), "link.go")
	require.NoError(t, err)
	assert.True(t, skipped)

	_, ok, err := st.GetFileByPath("link.go")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoOpProgressReporter_SatisfiesInterfaceWithoutPanicking(t *testing.T) {
	var r ProgressReporter = NoOpProgressReporter{}
	r.OnSweepStart(10)
	r.OnSweepProgress(5, 10)
	r.OnSweepComplete(SweepStats{})
}

func TestWatch_ReindexesCreatedFileAfterDebounce(t *testing.T) {
	root := t.TempDir()
	ix, st := newTestIndexer(t, root)
	ix.cfg.DebounceWindow = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- ix.Watch(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "new.go"), []byte("package main\n\nfunc Run() {}\n"), 0o644))

	deadline := time.Now().Add(1500 * time.Millisecond)
	var found bool
	for time.Now().Before(deadline) {
		if _, ok, _ := st.GetFileByPath("new.go"); ok {
			found = true
			break
		}
		time.Sleep(25 * time.Millisecond)
	}
	cancel()
	<-done
	assert.True(t, found, "expected watch phase to reindex the new file")
}
