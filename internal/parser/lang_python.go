package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// extractPython extracts classes (and their methods), top-level functions,
// and top-level assignments, grounded on the teacher's python.go: a class
// body is walked explicitly for its direct function_definition children
// rather than via the generic recursive walk, so extractPython returns
// false on class_definition to avoid double-counting those methods as
// free-standing functions.
func extractPython(n *sitter.Node, source []byte, symbols *[]model.Symbol, deps *[]model.Dependency) bool {
	switch n.Kind() {
	case "import_statement", "import_from_statement":
		extractPythonImport(n, source, deps)
	case "class_definition":
		extractPythonClass(n, source, symbols)
		return false
	case "function_definition":
		if isTopLevelPython(n) {
			appendPythonFunction(n, source, symbols, model.SymbolFunction)
		}
	case "assignment":
		if isTopLevelPython(n) {
			appendPythonAssignment(n, source, symbols)
		}
	}
	return true
}

// isTopLevelPython reports whether node sits directly at module scope,
// i.e. no enclosing class or function, matching the teacher's isTopLevel.
func isTopLevelPython(node *sitter.Node) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "class_definition", "function_definition":
			return false
		case "module":
			return true
		}
	}
	return true
}

func extractPythonImport(n *sitter.Node, source []byte, deps *[]model.Dependency) {
	if moduleNode := n.ChildByFieldName("module_name"); moduleNode != nil {
		*deps = append(*deps, model.Dependency{ToPathOrModule: nodeText(moduleNode, source), Kind: model.DependencyImport})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(uint(i)); child.Kind() == "dotted_name" {
			*deps = append(*deps, model.Dependency{ToPathOrModule: nodeText(child, source), Kind: model.DependencyImport})
		}
	}
}

func extractPythonClass(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	appendNamedSymbol(n, source, symbols, model.SymbolClass)

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		if child := body.Child(uint(i)); child.Kind() == "function_definition" {
			appendPythonFunction(child, source, symbols, model.SymbolMethod)
		}
	}
}

func appendPythonFunction(n *sitter.Node, source []byte, symbols *[]model.Symbol, kind model.SymbolKind) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)
	start, end := nodeLines(n)

	sig := name
	if params := n.ChildByFieldName("parameters"); params != nil {
		sig += nodeText(params, source)
	} else {
		sig += "()"
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		sig += " -> " + nodeText(ret, source)
	}

	*symbols = append(*symbols, model.Symbol{Name: name, Kind: kind, LineStart: start, LineEnd: end, Signature: sig})
}

func appendPythonAssignment(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	left := n.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return
	}
	start, end := nodeLines(n)
	*symbols = append(*symbols, model.Symbol{Name: nodeText(left, source), Kind: model.SymbolVariable, LineStart: start, LineEnd: end})
}
