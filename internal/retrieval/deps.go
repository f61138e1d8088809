package retrieval

import (
	"path/filepath"
	"strings"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/lang"
	"github.com/so-keyldzn/semantiq/internal/model"
	"github.com/so-keyldzn/semantiq/internal/store"
)

// ImportEdge is one outgoing dependency, resolved or not, for deps()
// (§4.5.3).
type ImportEdge struct {
	ToPathOrModule string               `json:"to_path_or_module"`
	Kind           model.DependencyKind `json:"kind"`
	Symbol         string               `json:"symbol,omitempty"`
	ResolvedPath   string               `json:"resolved_path,omitempty"`
	Resolved       bool                 `json:"resolved"`
}

// DepsResult is deps()'s return shape: this file's resolved imports and
// the files that import it back.
type DepsResult struct {
	Imports    []ImportEdge      `json:"imports"`
	ImportedBy []store.Dependent `json:"imported_by"`
}

// Deps implements §4.5.3: resolve this file's outgoing Dependency rows to
// File rows where possible, and list incoming dependents via the Index
// Store's basename-matching lookup.
func (e *Engine) Deps(filePath string) (DepsResult, error) {
	file, ok, err := e.store.GetFileByPath(filePath)
	if err != nil {
		return DepsResult{}, apperr.Wrap(apperr.Internal, err, "look up file %s", filePath)
	}
	if !ok {
		return DepsResult{}, apperr.New(apperr.PathNotFound, "no indexed file at %s", filePath)
	}

	rawDeps, err := e.store.ListDependencies(file.ID)
	if err != nil {
		return DepsResult{}, apperr.Wrap(apperr.Internal, err, "list dependencies for %s", filePath)
	}

	imports := make([]ImportEdge, 0, len(rawDeps))
	for _, d := range rawDeps {
		edge := ImportEdge{ToPathOrModule: d.ToPathOrModule, Kind: d.Kind, Symbol: d.Symbol}
		if resolved := resolveDependencyPath(e.store, d, file); resolved != "" {
			edge.ResolvedPath = resolved
			edge.Resolved = true
		}
		imports = append(imports, edge)
	}

	dependents, err := e.store.GetDependents(filePath)
	if err != nil {
		return DepsResult{}, apperr.Wrap(apperr.Internal, err, "get dependents of %s", filePath)
	}

	return DepsResult{Imports: imports, ImportedBy: dependents}, nil
}

// resolveDependencyPath implements §4.5.3's resolution order: first as a
// relative-path literal ('.', '..', '@/' alias) resolved against the
// owning file's directory, then by basename against the candidate
// extensions the owning file's language would use. Returns "" when
// neither resolves.
func resolveDependencyPath(st *store.Store, dep model.Dependency, owner store.FileRow) string {
	literal := dep.ToPathOrModule

	if candidate := resolveRelativeLiteral(st, literal, owner); candidate != "" {
		return candidate
	}
	return resolveBasenameLiteral(st, literal, owner)
}

func resolveRelativeLiteral(st *store.Store, literal string, owner store.FileRow) string {
	var raw string
	switch {
	case strings.HasPrefix(literal, "./") || strings.HasPrefix(literal, "../"):
		raw = filepath.Join(filepath.Dir(owner.Path), literal)
	case strings.HasPrefix(literal, "@/"):
		raw = strings.TrimPrefix(literal, "@/")
	default:
		return ""
	}

	if _, ok, err := st.GetFileByPath(raw); err == nil && ok {
		return raw
	}
	if l, ok := lang.Get(owner.Language); ok {
		for ext := range extensionsFor(l.Name) {
			candidate := raw + "." + ext
			if _, ok, err := st.GetFileByPath(candidate); err == nil && ok {
				return candidate
			}
		}
	}
	return ""
}

func resolveBasenameLiteral(st *store.Store, literal string, owner store.FileRow) string {
	base := filepath.Base(literal)
	dir := filepath.Dir(owner.Path)
	l, ok := lang.Get(owner.Language)
	if !ok {
		return ""
	}
	for ext := range extensionsFor(l.Name) {
		candidate := filepath.Join(dir, base+"."+ext)
		if _, ok, err := st.GetFileByPath(candidate); err == nil && ok {
			return candidate
		}
	}
	return ""
}

// extensionsFor returns every registry extension that maps to languageName,
// the candidate set §4.5.3 matches a bare import literal's basename
// against.
func extensionsFor(languageName string) map[string]struct{} {
	out := make(map[string]struct{})
	for ext, name := range lang.Extensions() {
		if name == languageName {
			out[ext] = struct{}{}
		}
	}
	return out
}

func mustListDependencies(st *store.Store, fileID int64) []model.Dependency {
	deps, err := st.ListDependencies(fileID)
	if err != nil {
		return nil
	}
	return deps
}

func mustGetDependents(st *store.Store, path string) []store.Dependent {
	dependents, err := st.GetDependents(path)
	if err != nil {
		return nil
	}
	return dependents
}
