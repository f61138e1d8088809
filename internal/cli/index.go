package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/so-keyldzn/semantiq/internal/engine"
	"github.com/so-keyldzn/semantiq/internal/logging"
)

var (
	indexQuiet bool
	indexWatch bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Run the initial sweep (and optionally watch) over the project",
	Long: `index runs the Auto-Indexer's sweep phase: it discovers every eligible
file under the project root, reindexes any whose fingerprint has changed,
and prunes rows for files removed from disk.

With --watch, the sweep is followed by the watch phase: file-system events
are debounced and reindexed incrementally until interrupted.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&indexQuiet, "quiet", "q", false, "disable progress output")
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "watch for file changes after the initial sweep")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\ninterrupted, finishing current file...")
		cancel()
	}()

	logger := logging.New(false)

	root, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	e, err := engine.Open(root, cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	e.SetIndexerProgress(NewProgressReporter(indexQuiet))

	logger.Info("starting sweep", "root", root)
	stats, err := e.Reindex(ctx)
	if err != nil {
		return err
	}

	if !indexQuiet {
		fmt.Printf("indexed %d, skipped %d, removed %d, failed %d (seen %d)\n",
			stats.FilesIndexed, stats.FilesSkipped, stats.FilesRemoved, stats.FilesFailed, stats.FilesSeen)
	}

	if !indexWatch {
		return nil
	}

	if !indexQuiet {
		fmt.Println("watching for changes, press Ctrl+C to stop...")
	}
	if err := e.Watch(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
