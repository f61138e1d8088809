package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/so-keyldzn/semantiq/internal/engine"
	"github.com/so-keyldzn/semantiq/internal/retrieval"
)

var (
	searchLimit      int
	searchMinScore   float32
	searchActiveFile string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the indexed codebase",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (default 20)")
	searchCmd.Flags().Float32Var(&searchMinScore, "min-score", 0, "minimum fused score")
	searchCmd.Flags().StringVar(&searchActiveFile, "active-file", "", "path of the file currently open, for the same-directory boost")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

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

	results, err := e.Retrieval.Search(context.Background(), query, retrieval.SearchOptions{
		Limit:      searchLimit,
		MinScore:   searchMinScore,
		ActiveFile: searchActiveFile,
	})
	if err != nil && results == nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	bold := color.New(color.Bold)
	for _, r := range results {
		bold.Printf("%s:%d-%d", r.Path, r.LineStart, r.LineEnd)
		fmt.Printf("  score=%.3f\n", r.Score)
		if r.Snippet != "" {
			fmt.Printf("  %s\n", r.Snippet)
		}
	}
	if len(results) == 0 {
		fmt.Println("no results")
	}
	return err
}
