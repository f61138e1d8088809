package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/so-keyldzn/semantiq/internal/retrieval"
)

type findRefsArgs struct {
	Symbol string `json:"symbol"`
	Limit  int    `json:"limit"`
}

// addFindRefsTool registers semantiq_find_refs (§4.5.2, §6): exact
// symbol-name definitions plus \bsymbol\b text usages.
func addFindRefsTool(s *server.MCPServer, retr *retrieval.Engine) {
	tool := mcp.NewTool(
		"semantiq_find_refs",
		mcp.WithDescription("Find an exact symbol's definitions and usages across the indexed codebase."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Exact symbol name to look up")),
		mcp.WithNumber("limit", mcp.Description("Maximum references to return (default 200)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var a findRefsArgs
		if err := bindArguments(req, &a); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if a.Symbol == "" {
			return mcp.NewToolResultError("symbol parameter is required"), nil
		}

		refs, err := retr.FindRefs(ctx, a.Symbol, a.Limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("find_refs failed: %v", err)), nil
		}

		body, marshalErr := json.Marshal(refs)
		if marshalErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", marshalErr)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	})
}
