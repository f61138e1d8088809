package retrieval

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/config"
	"github.com/so-keyldzn/semantiq/internal/model"
	"github.com/so-keyldzn/semantiq/internal/store"
)

func newFindRefsEngine(t *testing.T, root string) (*Engine, *store.Store) {
	t.Helper()
	st := openTestStore(t)
	e, err := New(st, nil, config.Default().Retrieval, config.Default().Calibration, root)
	require.NoError(t, err)
	return e, st
}

func TestFindRefs_CombinesDefinitionAndUsageAndDedups(t *testing.T) {
	root := t.TempDir()
	source := "package widget\n\nfunc RateLimit() {}\n\nfunc caller() {\n\tRateLimit()\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "widget.go"), []byte(source), 0o644))

	e, st := newFindRefsEngine(t, root)
	_, err := st.ReplaceFile(store.FileUpdate{
		Path: "widget.go", ContentHash: "h1", SizeBytes: uint64(len(source)),
		ModifiedAt: time.Now(), Language: "go",
		Symbols: []model.Symbol{
			{Name: "RateLimit", Kind: model.SymbolFunction, LineStart: 3, LineEnd: 3, Signature: "func RateLimit()"},
		},
	})
	require.NoError(t, err)

	refs, err := e.FindRefs(context.Background(), "RateLimit", 10)
	require.NoError(t, err)
	require.NotEmpty(t, refs)

	var sawDefinition, sawUsage bool
	for _, r := range refs {
		if r.Role == RoleDefinition {
			sawDefinition = true
		}
		if r.Role == RoleUsage {
			sawUsage = true
		}
	}
	assert.True(t, sawDefinition)
	assert.True(t, sawUsage)
}

func TestFindRefs_UsagePatternHonorsWordBoundary(t *testing.T) {
	root := t.TempDir()
	source := "package widget\n\nfunc Rate() {}\n\nfunc RateLimit() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "widget.go"), []byte(source), 0o644))

	e, _ := newFindRefsEngine(t, root)
	refs, err := e.FindRefs(context.Background(), "Rate", 10)
	require.NoError(t, err)

	for _, r := range refs {
		assert.NotContains(t, r.Snippet, "RateLimit")
	}
}

func TestFindRefs_EmptySymbolIsInvalidInput(t *testing.T) {
	e, _ := newFindRefsEngine(t, t.TempDir())
	_, err := e.FindRefs(context.Background(), "", 10)
	assert.Error(t, err)
}

func TestFindRefs_TruncatesToLimit(t *testing.T) {
	root := t.TempDir()
	var source string
	for i := 0; i < 5; i++ {
		source += "func caller() {\n\tNeedle()\n}\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "widget.go"), []byte(source), 0o644))

	e, _ := newFindRefsEngine(t, root)
	refs, err := e.FindRefs(context.Background(), "Needle", 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(refs), 2)
}
