package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// extractPHP extracts classes, interfaces, and traits (with nested
// methods), free functions, and const declarations, grounded on the
// teacher's php.go.
func extractPHP(n *sitter.Node, source []byte, symbols *[]model.Symbol, deps *[]model.Dependency) bool {
	switch n.Kind() {
	case "namespace_use_declaration":
		extractPHPUse(n, source, deps)
	case "class_declaration":
		extractPHPTypeWithMethods(n, source, symbols, model.SymbolClass)
		return false
	case "interface_declaration":
		extractPHPTypeWithMethods(n, source, symbols, model.SymbolInterface)
		return false
	case "trait_declaration":
		extractPHPTypeWithMethods(n, source, symbols, model.SymbolTrait)
		return false
	case "function_definition":
		appendNamedSymbol(n, source, symbols, model.SymbolFunction)
	case "const_declaration":
		extractPHPConst(n, source, symbols)
	}
	return true
}

func extractPHPUse(n *sitter.Node, source []byte, deps *[]model.Dependency) {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(uint(i)); child.Kind() == "namespace_use_clause" {
			*deps = append(*deps, model.Dependency{ToPathOrModule: nodeText(child, source), Kind: model.DependencyImport})
		}
	}
}

func extractPHPTypeWithMethods(n *sitter.Node, source []byte, symbols *[]model.Symbol, kind model.SymbolKind) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	appendNamedSymbol(n, source, symbols, kind)

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		if child := body.Child(uint(i)); child.Kind() == "method_declaration" {
			appendNamedSymbol(child, source, symbols, model.SymbolMethod)
		}
	}
}

func extractPHPConst(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if child.Kind() != "const_element" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		start, end := nodeLines(child)
		*symbols = append(*symbols, model.Symbol{Name: nodeText(nameNode, source), Kind: model.SymbolConstant, LineStart: start, LineEnd: end})
	}
}
