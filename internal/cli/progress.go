package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/so-keyldzn/semantiq/internal/indexer"
)

// CLIProgressReporter renders the Auto-Indexer's sweep progress (§4.6) as
// a progress bar, grounded on the teacher's internal/cli/progress.go. A
// quiet instance renders nothing.
type CLIProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewProgressReporter builds a CLIProgressReporter; quiet suppresses all
// output, matching the `index --quiet` flag.
func NewProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (p *CLIProgressReporter) OnSweepStart(totalFiles int) {
	if p.quiet {
		return
	}
	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Indexing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)
}

func (p *CLIProgressReporter) OnSweepProgress(processed, total int) {
	if p.quiet || p.bar == nil {
		return
	}
	_ = p.bar.Set(processed)
}

func (p *CLIProgressReporter) OnSweepComplete(stats indexer.SweepStats) {
	if p.quiet || p.bar == nil {
		return
	}
	p.bar.Finish()
}

var _ indexer.ProgressReporter = (*CLIProgressReporter)(nil)
