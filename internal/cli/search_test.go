package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSearch_FindsASymbolIndexedByRunIndex(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "main.go"),
		[]byte("package main\n\nfunc FrobulateWidgets() {}\n"),
		0o644,
	))
	t.Chdir(root)

	indexQuiet = true
	cfgFile = ""
	t.Cleanup(func() { indexQuiet = false; cfgFile = ""; searchJSON = false })

	require.NoError(t, runIndex(indexCmd, nil))

	searchJSON = true
	var buf bytes.Buffer
	searchCmd.SetOut(&buf)

	err := runSearch(searchCmd, []string{"FrobulateWidgets"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "main.go")
}
