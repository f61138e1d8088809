// Package parser implements the Parser (§4.2): turns a file's raw bytes
// into Symbols, Dependencies, and Chunks, dispatching on the Language
// Registry's ASTFamily tag rather than a second per-language switch.
package parser

import (
	"strings"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/lang"
	"github.com/so-keyldzn/semantiq/internal/model"
)

// maxASTDepth bounds AST recursion; deeper branches are truncated silently
// rather than risking a stack blowup on pathological input (§4.2).
const maxASTDepth = 500

// minSymbolChunkLines is the shortest symbol span that earns its own chunk;
// shorter symbols fall into the sliding-window pass over uncovered lines.
const minSymbolChunkLines = 4

// Result is one file's extracted structure, with Chunks carrying no
// embeddings yet — the Auto-Indexer attaches those after calling the
// Embedder.
type Result struct {
	Symbols      []model.Symbol
	Dependencies []model.Dependency
	Chunks       []model.Chunk
}

// Parse extracts Result from source, dispatching by languageName's
// registered ASTFamily. An unregistered languageName is InvalidInput; a
// grammar-level failure inside a tree-sitter or go/ast parse is
// ParserInternal and should leave the file skipped, not the sweep
// aborted (§4.2).
func Parse(languageName string, path string, source []byte) (Result, error) {
	l, ok := lang.Get(languageName)
	if !ok {
		return Result{}, apperr.New(apperr.InvalidInput, "unknown language tag %q for %s", languageName, path)
	}

	lines := splitLinesSafe(source)

	var symbols []model.Symbol
	var deps []model.Dependency

	switch l.Family {
	case lang.FamilyGoAST:
		s, d, err := parseGo(path, source)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.ParserInternal, err, "parse go file %s", path)
		}
		symbols, deps = s, d
	case lang.FamilyTreeSitter:
		s, d, err := parseTreeSitter(l.Name, source)
		if err != nil {
			return Result{}, apperr.Wrap(apperr.ParserInternal, err, "parse %s file %s", l.Name, path)
		}
		symbols, deps = s, d
	case lang.FamilyHeuristic:
		symbols = parseHeuristic(l.Name, lines)
	case lang.FamilyChunkOnly:
		// No symbols or dependencies; chunks still feed the embedder below.
	}

	rewriteFunctionVariables(l.Name, symbols)

	chunks := chunkLines(lines, symbols)

	return Result{Symbols: symbols, Dependencies: deps, Chunks: chunks}, nil
}

// rewriteFunctionVariables applies the TS/JS "function variable" post-pass
// (§4.2): a variable symbol whose Signature looks like an arrow function or
// function expression initializer is reclassified as a function. Symbols of
// every other language are left unchanged.
func rewriteFunctionVariables(languageName string, symbols []model.Symbol) {
	if languageName != "typescript" && languageName != "javascript" {
		return
	}
	for i := range symbols {
		if symbols[i].Kind != model.SymbolVariable {
			continue
		}
		sig := symbols[i].Signature
		if looksLikeFunctionInitializer(sig) {
			symbols[i].Kind = model.SymbolFunction
		}
	}
}

func looksLikeFunctionInitializer(signature string) bool {
	return strings.Contains(signature, "=>") ||
		strings.Contains(signature, "function(") ||
		strings.Contains(signature, "function (")
}
