package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

// extractor walks one tree-sitter node, appending to symbols/deps as it
// recognizes node kinds, and reports whether the walk should still recurse
// into this node's children (false skips a subtree already fully handled,
// mirroring the teacher's impl-block short-circuit in rust.go).
type extractor func(n *sitter.Node, source []byte, symbols *[]model.Symbol, deps *[]model.Dependency) bool

func grammarFor(languageName string) (*sitter.Language, error) {
	switch languageName {
	case "rust":
		return sitter.NewLanguage(rust.Language()), nil
	case "typescript", "javascript":
		return sitter.NewLanguage(typescript.LanguageTypescript()), nil
	case "python":
		return sitter.NewLanguage(python.Language()), nil
	case "java":
		return sitter.NewLanguage(java.Language()), nil
	case "c", "cpp":
		return sitter.NewLanguage(c.Language()), nil
	case "php":
		return sitter.NewLanguage(php.LanguagePHP()), nil
	case "ruby":
		return sitter.NewLanguage(ruby.Language()), nil
	default:
		return nil, apperr.New(apperr.InvalidInput, "no tree-sitter grammar registered for %q", languageName)
	}
}

func extractorFor(languageName string) extractor {
	switch languageName {
	case "rust":
		return extractRust
	case "typescript", "javascript":
		return extractTypeScript
	case "python":
		return extractPython
	case "java":
		return extractJava
	case "c", "cpp":
		return extractC
	case "php":
		return extractPHP
	case "ruby":
		return extractRuby
	default:
		return func(*sitter.Node, []byte, *[]model.Symbol, *[]model.Dependency) bool { return true }
	}
}

// parseTreeSitter parses source with languageName's grammar and walks the
// resulting tree with that language's extractor.
func parseTreeSitter(languageName string, source []byte) ([]model.Symbol, []model.Dependency, error) {
	grammar, err := grammarFor(languageName)
	if err != nil {
		return nil, nil, err
	}

	p := sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(grammar); err != nil {
		return nil, nil, err
	}

	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, nil, apperr.New(apperr.ParserInternal, "tree-sitter produced no parse tree")
	}
	defer tree.Close()

	extract := extractorFor(languageName)
	var symbols []model.Symbol
	var deps []model.Dependency
	walkBounded(tree.RootNode(), 0, func(n *sitter.Node) bool {
		return extract(n, source, &symbols, &deps)
	})
	return symbols, deps, nil
}

// walkBounded recurses depth-first, silently truncating subtrees below
// maxASTDepth (§4.2).
func walkBounded(node *sitter.Node, depth int, visit func(*sitter.Node) bool) {
	if node == nil || depth > maxASTDepth {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkBounded(node.Child(uint(i)), depth+1, visit)
	}
}

func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return safeString(source, int(n.StartByte()), int(n.EndByte()))
}

func nodeLines(n *sitter.Node) (start, end int) {
	return int(n.StartPosition().Row) + 1, int(n.EndPosition().Row) + 1
}

func childOfKind(node *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}
