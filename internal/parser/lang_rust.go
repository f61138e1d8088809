package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// extractRust extracts structs, enums, traits, impl methods, and
// free functions, grounded on the teacher's rust.go walkTree switch.
func extractRust(n *sitter.Node, source []byte, symbols *[]model.Symbol, deps *[]model.Dependency) bool {
	switch n.Kind() {
	case "use_declaration":
		if path := childOfKind(n, "scoped_identifier"); path != nil {
			*deps = append(*deps, model.Dependency{ToPathOrModule: nodeText(path, source), Kind: model.DependencyImport})
		} else if path := childOfKind(n, "identifier"); path != nil {
			*deps = append(*deps, model.Dependency{ToPathOrModule: nodeText(path, source), Kind: model.DependencyImport})
		}
	case "struct_item":
		appendNamedSymbol(n, source, symbols, model.SymbolStruct)
	case "enum_item":
		appendNamedSymbol(n, source, symbols, model.SymbolEnum)
	case "trait_item":
		appendNamedSymbol(n, source, symbols, model.SymbolTrait)
	case "impl_item":
		extractRustImpl(n, source, symbols)
		return false // methods handled explicitly; don't also visit as free functions
	case "function_item":
		appendRustFunction(n, source, symbols, model.SymbolFunction, "")
	case "const_item":
		appendNamedSymbol(n, source, symbols, model.SymbolConstant)
	case "static_item":
		appendNamedSymbol(n, source, symbols, model.SymbolVariable)
	}
	return true
}

func extractRustImpl(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	typeNode := n.ChildByFieldName("type")
	typeName := nodeText(typeNode, source)

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child.Kind() == "function_item" {
			appendRustFunction(child, source, symbols, model.SymbolMethod, typeName)
		}
	}
}

func appendRustFunction(n *sitter.Node, source []byte, symbols *[]model.Symbol, kind model.SymbolKind, typeName string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)
	start, end := nodeLines(n)

	sig := name
	if typeName != "" {
		sig = typeName + "::" + name
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		sig += nodeText(params, source)
	} else {
		sig += "()"
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		sig += " " + nodeText(ret, source)
	}

	*symbols = append(*symbols, model.Symbol{Name: name, Kind: kind, LineStart: start, LineEnd: end, Signature: sig})
}

func appendNamedSymbol(n *sitter.Node, source []byte, symbols *[]model.Symbol, kind model.SymbolKind) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	start, end := nodeLines(n)
	*symbols = append(*symbols, model.Symbol{Name: nodeText(nameNode, source), Kind: kind, LineStart: start, LineEnd: end})
}
