package indexer

// ProgressReporter receives callbacks as the sweep phase runs. Watch-phase
// reindexes are not reported — they are meant to be silent background
// upkeep, not a one-off batch job with a start and end.
type ProgressReporter interface {
	// OnSweepStart is called once discovery has produced the file count.
	OnSweepStart(totalFiles int)

	// OnSweepProgress is called every cfg.ProgressEvery files (§4.6).
	OnSweepProgress(processed, total int)

	// OnSweepComplete is called once, after every file (and every removed
	// row) has been handled.
	OnSweepComplete(stats SweepStats)
}

// SweepStats summarizes one completed sweep.
type SweepStats struct {
	FilesSeen     int
	FilesIndexed  int
	FilesSkipped  int
	FilesRemoved  int
	FilesFailed   int
}

// NoOpProgressReporter reports nothing; the zero value is ready to use.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnSweepStart(int)             {}
func (NoOpProgressReporter) OnSweepProgress(int, int)     {}
func (NoOpProgressReporter) OnSweepComplete(SweepStats)   {}
