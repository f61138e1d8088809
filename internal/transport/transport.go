// Package transport adapts the Retrieval Engine to mark3labs/mcp-go's
// stdio server, registering the four tools named in §6:
// semantiq_search, semantiq_find_refs, semantiq_deps, semantiq_explain.
// It is the request transport the Retrieval Engine is otherwise only
// contracted against (§6 calls it an external collaborator); this package
// is the concrete wiring, grounded on the teacher's internal/mcp package.
package transport

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/so-keyldzn/semantiq/internal/retrieval"
)

// NewServer builds an MCP server with all four semantiq_* tools
// registered against retr. version is reported to MCP clients during
// initialization.
func NewServer(retr *retrieval.Engine, version string) *server.MCPServer {
	s := server.NewMCPServer("semantiq", version, server.WithToolCapabilities(true))

	addSearchTool(s, retr)
	addFindRefsTool(s, retr)
	addDepsTool(s, retr)
	addExplainTool(s, retr)

	return s
}

// Serve blocks serving s over stdio, the transport the spec names for
// this collaborator (stdout is reserved for MCP frames; logging must go
// to stderr, per the ambient logging setup).
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
