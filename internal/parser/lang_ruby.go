package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// extractRuby extracts classes, modules (recursing into nested
// classes/modules/methods), top-level methods, and top-level assignments,
// grounded on the teacher's ruby.go. Ruby's grammar nests a class/module's
// statements inside an intermediate body_statement node, so method lookup
// checks both a container's direct children and one body_statement level.
func extractRuby(n *sitter.Node, source []byte, symbols *[]model.Symbol, deps *[]model.Dependency) bool {
	switch n.Kind() {
	case "call":
		extractRubyRequire(n, source, deps)
	case "class":
		extractRubyContainer(n, source, symbols, model.SymbolClass)
		return false
	case "module":
		extractRubyContainer(n, source, symbols, model.SymbolModule)
		return false
	case "method":
		if isTopLevelRuby(n) {
			appendNamedSymbol(n, source, symbols, model.SymbolFunction)
		}
	case "assignment":
		if isTopLevelRuby(n) {
			appendRubyAssignment(n, source, symbols)
		}
	}
	return true
}

func extractRubyRequire(n *sitter.Node, source []byte, deps *[]model.Dependency) {
	method := n.ChildByFieldName("method")
	if method == nil || method.Kind() != "identifier" {
		return
	}
	name := nodeText(method, source)
	if name != "require" && name != "require_relative" {
		return
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	for i := 0; i < int(args.ChildCount()); i++ {
		if child := args.Child(uint(i)); child.Kind() == "string" {
			*deps = append(*deps, model.Dependency{ToPathOrModule: trimQuotesOrBrackets(nodeText(child, source)), Kind: model.DependencyImport})
		}
	}
}

func isTopLevelRuby(node *sitter.Node) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "class", "module", "method":
			return false
		case "program":
			return true
		}
	}
	return true
}

func extractRubyContainer(n *sitter.Node, source []byte, symbols *[]model.Symbol, kind model.SymbolKind) {
	appendNamedSymbol(n, source, symbols, kind)
	for _, child := range rubyContainerStatements(n) {
		switch child.Kind() {
		case "class":
			extractRubyContainer(child, source, symbols, model.SymbolClass)
		case "module":
			extractRubyContainer(child, source, symbols, model.SymbolModule)
		case "method":
			appendNamedSymbol(child, source, symbols, model.SymbolMethod)
		}
	}
}

// rubyContainerStatements returns n's direct children, expanding one level
// into a body_statement child if present (the grammar wraps multi-statement
// bodies that way).
func rubyContainerStatements(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if child.Kind() == "body_statement" {
			for j := 0; j < int(child.ChildCount()); j++ {
				out = append(out, child.Child(uint(j)))
			}
			continue
		}
		out = append(out, child)
	}
	return out
}

func appendRubyAssignment(n *sitter.Node, source []byte, symbols *[]model.Symbol) {
	left := n.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" && left.Kind() != "constant" {
		return
	}
	start, end := nodeLines(n)
	kind := model.SymbolVariable
	if left.Kind() == "constant" {
		kind = model.SymbolConstant
	}
	*symbols = append(*symbols, model.Symbol{Name: nodeText(left, source), Kind: kind, LineStart: start, LineEnd: end})
}
