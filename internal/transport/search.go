package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/so-keyldzn/semantiq/internal/retrieval"
)

type searchArgs struct {
	Query      string  `json:"query"`
	Limit      int     `json:"limit"`
	MinScore   float32 `json:"min_score"`
	ActiveFile string  `json:"active_file"`
}

// addSearchTool registers semantiq_search (§4.5.1, §6): fused
// lexical/semantic/symbol/graph search over the indexed codebase.
func addSearchTool(s *server.MCPServer, retr *retrieval.Engine) {
	tool := mcp.NewTool(
		"semantiq_search",
		mcp.WithDescription("Search the indexed codebase by fusing lexical, semantic, symbol, and dependency-graph signals."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language or keyword search query")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default 20)")),
		mcp.WithNumber("min_score", mcp.Description("Minimum fused score to include a result")),
		mcp.WithString("active_file", mcp.Description("Path of the file currently open, used for the same-directory boost")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var a searchArgs
		if err := bindArguments(req, &a); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if a.Query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		results, err := retr.Search(ctx, a.Query, retrieval.SearchOptions{
			Limit:      a.Limit,
			MinScore:   a.MinScore,
			ActiveFile: a.ActiveFile,
		})
		if err != nil && results == nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		body, marshalErr := json.Marshal(results)
		if marshalErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", marshalErr)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	})
}
