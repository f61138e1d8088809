package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/so-keyldzn/semantiq/internal/engine"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show Index Store row counts and calibration state",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
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

	s, err := e.Store.Stats()
	if err != nil {
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	label := color.New(color.FgCyan)
	label.Print("files        ")
	fmt.Println(s.FileCount)
	label.Print("symbols      ")
	fmt.Println(s.SymbolCount)
	label.Print("chunks       ")
	fmt.Printf("%d (%d embedded)\n", s.ChunkCount, s.ChunksWithVector)
	label.Print("dependencies ")
	fmt.Println(s.DependencyCount)

	if len(s.CalibrationByLang) > 0 {
		label.Println("calibration:")
		langs := make([]string, 0, len(s.CalibrationByLang))
		for lang := range s.CalibrationByLang {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		for _, lang := range langs {
			fmt.Printf("  %-12s %d samples\n", lang, s.CalibrationByLang[lang])
		}
	}
	return nil
}
