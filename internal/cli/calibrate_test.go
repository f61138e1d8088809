package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/so-keyldzn/semantiq/internal/engine"
)

func TestRunCalibrate_DryRunReportsProposalWithoutPersisting(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfgFile = ""
	t.Cleanup(func() { cfgFile = ""; calibrateDryRun = false; calibrateLanguage = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	e, err := engine.Open(root, cfg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, e.Store.RecordObservation("go", 0.1*float32(i)))
	}
	require.NoError(t, e.Close())

	calibrateLanguage = "go"
	calibrateDryRun = true
	var buf bytes.Buffer
	calibrateCmd.SetOut(&buf)

	require.NoError(t, runCalibrate(calibrateCmd, nil))
	assert.Contains(t, buf.String(), "dry run")

	cfg2, err := loadConfig()
	require.NoError(t, err)
	e2, err := engine.Open(root, cfg2)
	require.NoError(t, err)
	defer e2.Close()
	_, ok, err := e2.Store.GetCalibration("go")
	require.NoError(t, err)
	assert.False(t, ok, "dry run must not persist a calibration row")
}
