package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIndex_IndexesProjectUnderWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "main.go"),
		[]byte("package main\n\nfunc Run() {}\n"),
		0o644,
	))
	t.Chdir(root)

	indexQuiet = true
	indexWatch = false
	cfgFile = ""
	t.Cleanup(func() { indexQuiet = false; cfgFile = "" })

	err := runIndex(indexCmd, nil)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(root, ".semantiq.db"))
	assert.NoError(t, statErr)
}
