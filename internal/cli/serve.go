package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/so-keyldzn/semantiq/internal/engine"
	"github.com/so-keyldzn/semantiq/internal/logging"
	"github.com/so-keyldzn/semantiq/internal/transport"
)

var serveVersion = "dev"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the four semantiq_* MCP tools over stdio",
	Long: `serve starts the MCP stdio transport (§6), exposing semantiq_search,
semantiq_find_refs, semantiq_deps, and semantiq_explain to an AI client.
Stdout is reserved for MCP frames; all logging goes to stderr as JSON.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.New(true)

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

	logger.Info("starting mcp server", "root", root)
	fmt.Fprintln(cmd.ErrOrStderr(), "semantiq MCP server starting on stdio")

	server := transport.NewServer(e.Retrieval, serveVersion)
	return transport.Serve(server)
}
