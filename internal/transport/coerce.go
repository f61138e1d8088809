package transport

import (
	"github.com/go-viper/mapstructure/v2"
)

// argumentGetter matches mcp.CallToolRequest.GetArguments without
// importing mcp-go's concrete request type here.
type argumentGetter interface {
	GetArguments() map[string]interface{}
}

// bindArguments binds an MCP tool call's raw arguments onto target.
// Most MCP clients send well-typed JSON, but some send every scalar as
// a string, so WeaklyTypedInput is load-bearing: a plain type assertion
// on args["limit"] would silently drop a user-supplied limit instead of
// honoring it.
func bindArguments[T any](req argumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(req.GetArguments())
}
