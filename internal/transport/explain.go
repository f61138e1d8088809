package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/so-keyldzn/semantiq/internal/retrieval"
)

type explainArgs struct {
	Symbol     string `json:"symbol"`
	UsageLimit int    `json:"usage_limit"`
}

// addExplainTool registers semantiq_explain (§4.5.4, §6): a symbol's
// definition sites plus a sample of its usages.
func addExplainTool(s *server.MCPServer, retr *retrieval.Engine) {
	tool := mcp.NewTool(
		"semantiq_explain",
		mcp.WithDescription("Explain a symbol: its definition site(s), signature, doc comment, and a sample of usages."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Exact symbol name to explain")),
		mcp.WithNumber("usage_limit", mcp.Description("Maximum usage samples to include (default 10)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var a explainArgs
		if err := bindArguments(req, &a); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if a.Symbol == "" {
			return mcp.NewToolResultError("symbol parameter is required"), nil
		}

		explanations, err := retr.Explain(ctx, a.Symbol, a.UsageLimit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("explain failed: %v", err)), nil
		}

		body, marshalErr := json.Marshal(explanations)
		if marshalErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", marshalErr)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	})
}
