package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// extractJava extracts classes, interfaces, and enums (with their nested
// methods and static fields; instance fields are skipped), grounded on the
// teacher's java.go.
func extractJava(n *sitter.Node, source []byte, symbols *[]model.Symbol, deps *[]model.Dependency) bool {
	switch n.Kind() {
	case "import_declaration":
		if name := findJavaImportName(n); name != nil {
			*deps = append(*deps, model.Dependency{ToPathOrModule: nodeText(name, source), Kind: model.DependencyImport})
		}
	case "class_declaration":
		extractJavaTypeWithMethods(n, source, symbols, model.SymbolClass)
		return false
	case "interface_declaration":
		extractJavaTypeWithMethods(n, source, symbols, model.SymbolInterface)
		return false
	case "enum_declaration":
		appendNamedSymbol(n, source, symbols, model.SymbolEnum)
		return false
	case "field_declaration":
		extractJavaField(n, source, symbols)
	}
	return true
}

func findJavaImportName(n *sitter.Node) *sitter.Node {
	if name := childOfKind(n, "scoped_identifier"); name != nil {
		return name
	}
	return childOfKind(n, "identifier")
}

func extractJavaTypeWithMethods(n *sitter.Node, source []byte, symbols *[]model.Symbol, kind model.SymbolKind) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	typeName := nodeText(nameNode, source)
	appendNamedSymbol(n, source, symbols, kind)

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		switch child := body.Child(uint(i)); child.Kind() {
		case "method_declaration":
			appendJavaMethod(child, source, symbols, typeName)
		case "field_declaration":
			extractJavaField(child, source, symbols)
		}
	}
}

func appendJavaMethod(n *sitter.Node, source []byte, symbols *[]model.Symbol, typeName string) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)
	start, end := nodeLines(n)

	sig := typeName + "." + name
	if params := n.ChildByFieldName("parameters"); params != nil {
		sig += nodeText(params, source)
	} else {
		sig += "()"
	}
	if ret := n.ChildByFieldName("type"); ret != nil {
		sig += ": " + nodeText(ret, source)
	}

	*symbols = append(*symbols, model.Symbol{Name: name, Kind: model.SymbolMethod, LineStart: start, LineEnd: end, Signature: sig})
}

func extractJavaField(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	modifiers := n.ChildByFieldName("modifiers")
	isStatic, isFinal := false, false
	if modifiers != nil {
		text := nodeText(modifiers, source)
		isStatic = strings.Contains(text, "static")
		isFinal = strings.Contains(text, "final")
	}
	if !isStatic {
		return // instance fields aren't module-level symbols in this schema
	}

	kind := model.SymbolVariable
	if isFinal {
		kind = model.SymbolConstant
	}

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
		*symbols = append(*symbols, model.Symbol{Name: nodeText(nameNode, source), Kind: kind, LineStart: start, LineEnd: end})
	}
}
