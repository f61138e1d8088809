package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// extractTypeScript extracts classes, interfaces, type aliases, functions,
// and top-level const/let/var declarations, grounded on the teacher's
// typescript.go (shared with JavaScript, since both use the TypeScript
// grammar in permissive mode). Arrow/function-expression initializers are
// left tagged SymbolVariable here; rewriteFunctionVariables reclassifies
// them after the walk, per §4.2's function-variable rewrite pass.
func extractTypeScript(n *sitter.Node, source []byte, symbols *[]model.Symbol, deps *[]model.Dependency) bool {
	switch n.Kind() {
	case "import_statement":
		if src := n.ChildByFieldName("source"); src != nil {
			*deps = append(*deps, model.Dependency{ToPathOrModule: unquote(nodeText(src, source)), Kind: model.DependencyImport})
		}
	case "class_declaration":
		appendNamedSymbol(n, source, symbols, model.SymbolClass)
	case "interface_declaration":
		appendNamedSymbol(n, source, symbols, model.SymbolInterface)
	case "type_alias_declaration":
		appendNamedSymbol(n, source, symbols, model.SymbolType)
	case "function_declaration":
		appendTSFunction(n, source, symbols)
	case "lexical_declaration", "variable_declaration":
		appendTSVariables(n, source, symbols)
	}
	return true
}

func appendTSFunction(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)
	start, end := nodeLines(n)

	sig := name + "("
	if params := n.ChildByFieldName("parameters"); params != nil {
		sig += nodeText(params, source)
	} else {
		sig += ")"
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		sig += ": " + nodeText(ret, source)
	}

	*symbols = append(*symbols, model.Symbol{Name: name, Kind: model.SymbolFunction, LineStart: start, LineEnd: end, Signature: sig})
}

func appendTSVariables(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if child.Kind() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		start, end := nodeLines(child)
		var signature string
		if value := child.ChildByFieldName("value"); value != nil {
			signature = nodeText(value, source)
		}
		*symbols = append(*symbols, model.Symbol{
			Name: nodeText(nameNode, source), Kind: model.SymbolVariable,
			LineStart: start, LineEnd: end, Signature: signature,
		})
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'' || s[0] == '`') {
		return s[1 : len(s)-1]
	}
	return s
}
