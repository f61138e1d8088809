// Package cli implements the cobra command tree the spec's process
// surface names (§6): index, serve, search, stats, calibrate, plus the
// root command's shared --config/--verbose flags, grounded on the
// teacher's own internal/cli/root.go skeleton.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/so-keyldzn/semantiq/internal/apperr"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "semantiq",
	Short: "Local-first semantic code search and navigation",
	Long: `semantiq indexes a codebase's symbols, chunks, and dependencies into a
single embedded database and serves fused lexical/semantic/symbol/graph
search over it, either directly or as an MCP tool server.`,
}

func init() {
	cobra.OnInitialize(loadDotEnv)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .semantiq/config.yml under the project root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadDotEnv loads an optional .env file before viper reads the
// environment, so LOG/UPDATE_CHECK-style overrides work the same
// whether exported by the shell or dropped in a .env beside the project.
// A missing .env is not an error; a malformed one is reported on stderr
// and otherwise ignored so a bad .env never blocks the CLI from running.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}
}

// Execute runs the root command and translates a returned error into the
// exit codes §6 names: 0 success, 1 user error, 2 internal error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.InvalidInput, apperr.PathNotFound:
		return 1
	case apperr.Internal, apperr.Timeout, apperr.IndexNotReady, apperr.EmbedderUnavailable, apperr.EmbedderTransient, apperr.ParserInternal:
		return 2
	default:
		return 2
	}
}
