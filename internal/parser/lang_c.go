package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// extractC extracts structs, unions, enums, and function definitions,
// grounded on the teacher's c.go (also the parser cpp maps to, since this
// module's grammar set has no separate C++ grammar).
func extractC(n *sitter.Node, source []byte, symbols *[]model.Symbol, deps *[]model.Dependency) bool {
	switch n.Kind() {
	case "preproc_include":
		if path := childOfKind(n, "string_literal"); path != nil {
			*deps = append(*deps, model.Dependency{ToPathOrModule: trimQuotesOrBrackets(nodeText(path, source)), Kind: model.DependencyImport})
		} else if path := childOfKind(n, "system_lib_string"); path != nil {
			*deps = append(*deps, model.Dependency{ToPathOrModule: trimQuotesOrBrackets(nodeText(path, source)), Kind: model.DependencyImport})
		}
	case "struct_specifier":
		appendNamedSymbol(n, source, symbols, model.SymbolStruct)
	case "union_specifier":
		appendNamedSymbol(n, source, symbols, model.SymbolType)
	case "enum_specifier":
		appendNamedSymbol(n, source, symbols, model.SymbolEnum)
	case "function_definition":
		appendCFunction(n, source, symbols)
	}
	return true
}

func trimQuotesOrBrackets(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

func appendCFunction(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return
	}
	name := findCFunctionName(declarator, source)
	if name == "" {
		return
	}
	start, end := nodeLines(n)

	*symbols = append(*symbols, model.Symbol{
		Name: name, Kind: model.SymbolFunction,
		LineStart: start, LineEnd: end, Signature: nodeText(declarator, source),
	})
}

// findCFunctionName recurses through pointer/function declarator wrappers
// to the innermost identifier, matching the teacher's findFunctionName.
func findCFunctionName(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case "identifier":
		return nodeText(n, source)
	case "function_declarator", "pointer_declarator":
		return findCFunctionName(n.ChildByFieldName("declarator"), source)
	default:
		return ""
	}
}
