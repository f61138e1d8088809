package cli

import (
	"testing"

	"github.com/so-keyldzn/semantiq/internal/indexer"
)

func TestCLIProgressReporter_QuietModeNeverPanics(t *testing.T) {
	r := NewProgressReporter(true)
	r.OnSweepStart(10)
	r.OnSweepProgress(5, 10)
	r.OnSweepComplete(indexer.SweepStats{})
}

func TestCLIProgressReporter_VerboseModeNeverPanics(t *testing.T) {
	r := NewProgressReporter(false)
	r.OnSweepStart(10)
	r.OnSweepProgress(5, 10)
	r.OnSweepComplete(indexer.SweepStats{})
}
