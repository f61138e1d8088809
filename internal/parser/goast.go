package parser

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/so-keyldzn/semantiq/internal/model"
)

// parseGo extracts symbols and dependencies from Go source using go/ast,
// the one language where the teacher's own parser prefers the standard
// library over tree-sitter.
func parseGo(path string, source []byte) ([]model.Symbol, []model.Dependency, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, source, parser.ParseComments)
	if err != nil {
		return nil, nil, err
	}

	lines := splitLinesSafe(source)
	var symbols []model.Symbol
	var deps []model.Dependency

	for _, imp := range file.Imports {
		literal := strings.Trim(imp.Path.Value, `"`)
		deps = append(deps, model.Dependency{ToPathOrModule: literal, Kind: model.DependencyImport})
	}

	depth := 0
	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			depth--
			return false
		}
		depth++
		if depth > maxASTDepth {
			return false
		}

		switch decl := n.(type) {
		case *ast.FuncDecl:
			symbols = append(symbols, goFuncSymbol(decl, fset, lines, source))
		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					symbols = append(symbols, goTypeSymbol(s, fset, lines))
				case *ast.ValueSpec:
					symbols = append(symbols, goValueSymbols(s, fset, decl.Tok == token.CONST)...)
				}
			}
		}
		return true
	})

	return symbols, deps, nil
}

func goTypeSymbol(spec *ast.TypeSpec, fset *token.FileSet, lines []string) model.Symbol {
	kind := model.SymbolType
	switch spec.Type.(type) {
	case *ast.StructType:
		kind = model.SymbolStruct
	case *ast.InterfaceType:
		kind = model.SymbolInterface
	}
	start := fset.Position(spec.Pos()).Line
	end := fset.Position(spec.End()).Line
	return model.Symbol{
		Name:      spec.Name.Name,
		Kind:      kind,
		LineStart: start,
		LineEnd:   end,
		Signature: firstLine(lines, start),
	}
}

func goFuncSymbol(decl *ast.FuncDecl, fset *token.FileSet, lines []string, source []byte) model.Symbol {
	kind := model.SymbolFunction
	name := decl.Name.Name
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		kind = model.SymbolMethod
	}
	start := fset.Position(decl.Pos()).Line
	end := fset.Position(decl.End()).Line

	sigStart := fset.Position(decl.Pos()).Offset
	sigEnd := sigStart
	if decl.Body != nil {
		sigEnd = fset.Position(decl.Body.Pos()).Offset
	} else {
		sigEnd = fset.Position(decl.End()).Offset
	}
	signature := strings.TrimSpace(safeString(source, sigStart, sigEnd))

	var doc string
	if decl.Doc != nil {
		doc = decl.Doc.Text()
	}

	return model.Symbol{
		Name:       name,
		Kind:       kind,
		LineStart:  start,
		LineEnd:    end,
		Signature:  signature,
		DocComment: strings.TrimSpace(doc),
	}
}

func goValueSymbols(spec *ast.ValueSpec, fset *token.FileSet, isConst bool) []model.Symbol {
	kind := model.SymbolVariable
	if isConst {
		kind = model.SymbolConstant
	}
	start := fset.Position(spec.Pos()).Line
	end := fset.Position(spec.End()).Line

	out := make([]model.Symbol, 0, len(spec.Names))
	for _, name := range spec.Names {
		if name.Name == "_" {
			continue
		}
		out = append(out, model.Symbol{
			Name:      name.Name,
			Kind:      kind,
			LineStart: start,
			LineEnd:   end,
		})
	}
	return out
}

func firstLine(lines []string, lineNo int) string {
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[lineNo-1])
}
