package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/so-keyldzn/semantiq/internal/retrieval"
)

type depsArgs struct {
	Path string `json:"path"`
}

// addDepsTool registers semantiq_deps (§4.5.3, §6): a file's resolved
// outgoing imports and its incoming dependents.
func addDepsTool(s *server.MCPServer, retr *retrieval.Engine) {
	tool := mcp.NewTool(
		"semantiq_deps",
		mcp.WithDescription("List a file's outgoing dependencies and the files that depend on it."),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path relative to the project root")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var a depsArgs
		if err := bindArguments(req, &a); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if a.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		result, err := retr.Deps(a.Path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("deps failed: %v", err)), nil
		}

		body, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", marshalErr)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	})
}
