// Package lang is the Language Registry (§4.1): the extension→language
// table the Auto-Indexer consults to decide whether a file is eligible at
// all, and the Parser consults to decide which AST family to use.
package lang

import (
	"path/filepath"
	"strings"
)

// ASTFamily tags how the Parser should handle a language, so dispatch is a
// single switch on this tag rather than a second per-language table.
type ASTFamily string

const (
	// FamilyGoAST is parsed with go/parser + go/ast (stdlib), the one
	// language where the teacher itself prefers the stdlib over
	// tree-sitter.
	FamilyGoAST ASTFamily = "goast"
	// FamilyTreeSitter is parsed with a tree-sitter grammar.
	FamilyTreeSitter ASTFamily = "treesitter"
	// FamilyHeuristic has no tree-sitter grammar in this module's
	// dependency set; it gets a conservative regex-based symbol scan.
	FamilyHeuristic ASTFamily = "heuristic"
	// FamilyChunkOnly languages contribute chunks to the embedder but no
	// symbols or dependencies.
	FamilyChunkOnly ASTFamily = "chunkonly"
)

// Language describes one entry in the registry. The Parser's per-language
// sub-parsers walk the AST directly (switching on node kind, as the
// teacher's tree-sitter sub-parsers do) rather than running a declarative
// query string, so Family is the only dispatch key this registry carries.
type Language struct {
	Name   string
	Family ASTFamily
}

var registry = map[string]Language{
	"rust":       {Name: "rust", Family: FamilyTreeSitter},
	"typescript": {Name: "typescript", Family: FamilyTreeSitter},
	"javascript": {Name: "javascript", Family: FamilyTreeSitter},
	"python":     {Name: "python", Family: FamilyTreeSitter},
	"go":         {Name: "go", Family: FamilyGoAST},
	"java":       {Name: "java", Family: FamilyTreeSitter},
	"c":          {Name: "c", Family: FamilyTreeSitter},
	"cpp":        {Name: "cpp", Family: FamilyTreeSitter},
	"php":        {Name: "php", Family: FamilyTreeSitter},
	"ruby":       {Name: "ruby", Family: FamilyTreeSitter},
	"csharp":     {Name: "csharp", Family: FamilyHeuristic},
	"kotlin":     {Name: "kotlin", Family: FamilyHeuristic},
	"scala":      {Name: "scala", Family: FamilyHeuristic},
	"bash":       {Name: "bash", Family: FamilyHeuristic},
	"elixir":     {Name: "elixir", Family: FamilyHeuristic},
	"html":       {Name: "html", Family: FamilyChunkOnly},
	"json":       {Name: "json", Family: FamilyChunkOnly},
	"yaml":       {Name: "yaml", Family: FamilyChunkOnly},
	"toml":       {Name: "toml", Family: FamilyChunkOnly},
}

// extByLanguage maps every case-normalized extension (without the dot) to
// the language name it selects.
var extByLanguage = map[string]string{
	"rs":    "rust",
	"ts":    "typescript",
	"tsx":   "typescript",
	"js":    "javascript",
	"jsx":   "javascript",
	"mjs":   "javascript",
	"py":    "python",
	"pyi":   "python",
	"go":    "go",
	"java":  "java",
	"c":     "c",
	"h":     "c",
	"cpp":   "cpp",
	"cc":    "cpp",
	"hpp":   "cpp",
	"php":   "php",
	"phtml": "php",
	"rb":    "ruby",
	"rake":  "ruby",
	"cs":    "csharp",
	"kt":    "kotlin",
	"kts":   "kotlin",
	"scala": "scala",
	"sc":    "scala",
	"sh":    "bash",
	"bash":  "bash",
	"zsh":   "bash",
	"ex":    "elixir",
	"exs":   "elixir",
	"html":  "html",
	"htm":   "html",
	"json":  "json",
	"yaml":  "yaml",
	"yml":   "yaml",
	"toml":  "toml",
}

// Detect resolves a file path's extension (case-insensitive) to a
// registered Language. ok is false for unknown extensions; the caller
// (Auto-Indexer) skips such files entirely.
func Detect(path string) (Language, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return Language{}, false
	}
	name, ok := extByLanguage[ext]
	if !ok {
		return Language{}, false
	}
	l, ok := registry[name]
	return l, ok
}

// Get resolves a language name (as stored on a File row) to its registry
// entry.
func Get(name string) (Language, bool) {
	l, ok := registry[name]
	return l, ok
}

// Extensions exposes the extension→language table for callers that need
// to go the other way: given a language, which extensions would a bare
// import literal plausibly resolve to (the Retrieval Engine's deps()
// basename-matching step, §4.5.3).
func Extensions() map[string]string {
	return extByLanguage
}
