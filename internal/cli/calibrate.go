package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/engine"
)

var (
	calibrateLanguage string
	calibrateDryRun   bool
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Recompute a language's distance thresholds from recorded observations",
	Long: `calibrate manually triggers the Threshold Calibrator (§4.7) for one
language, deriving max_distance (p90) and min_similarity (1-p10) from its
recorded semantic-search distance observations. This is the same
computation that runs automatically once a language crosses the
bootstrap sample threshold; calibrate lets an operator re-run it, or
preview it with --dry-run.`,
	RunE: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
	calibrateCmd.Flags().StringVar(&calibrateLanguage, "language", "", "language to calibrate (required)")
	calibrateCmd.Flags().BoolVar(&calibrateDryRun, "dry-run", false, "compute and print the proposal without persisting it")
	calibrateCmd.MarkFlagRequired("language")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	if calibrateLanguage == "" {
		return apperr.New(apperr.InvalidInput, "--language is required")
	}

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

	proposal, err := e.Calibrator.Calibrate(calibrateLanguage, calibrateDryRun)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(proposal)
	if err != nil {
		return apperr.Internalf(err, "marshal calibration proposal")
	}

	if calibrateDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "# dry run, not persisted")
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
