package store

import (
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

func replaceDependenciesTx(tx *sql.Tx, fileID int64, deps []model.Dependency) error {
	if _, err := tx.Exec("DELETE FROM dependencies WHERE from_file_id = ?", fileID); err != nil {
		return apperr.Internalf(err, "delete existing dependencies for file %d", fileID)
	}
	if len(deps) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(
		`INSERT INTO dependencies (from_file_id, to_path_or_module, kind, symbol)
		 VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return apperr.Internalf(err, "prepare dependency insert")
	}
	defer stmt.Close()

	for _, d := range deps {
		if _, err := stmt.Exec(fileID, d.ToPathOrModule, string(d.Kind), d.Symbol); err != nil {
			return apperr.Internalf(err, "insert dependency to %s", d.ToPathOrModule)
		}
	}
	return nil
}

// Dependent is one row from GetDependents.
type Dependent struct {
	FromPath       string               `json:"from_path"`
	ToPathOrModule string               `json:"to_path_or_module"`
	Kind           model.DependencyKind `json:"kind"`
	Symbol         string               `json:"symbol,omitempty"`
}

// GetDependents resolves incoming edges for path by basename-with-extension
// matching against stored dependency literals (§4.4): a dependency literal
// like "./foo" or "pkg/foo" is compared against path's basename with each
// of its plausible source extensions, since the raw literal as written in
// source rarely includes the extension the Language Registry would add.
// Multiple LIKE patterns are ORed, then post-filtered in Go for an exact
// basename match to rule out unrelated files merely sharing a common
// substring.
func (s *Store) GetDependents(path string) ([]Dependent, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	rows, err := s.db.Query(
		`SELECT f.path, d.to_path_or_module, d.kind, d.symbol
		 FROM dependencies d
		 JOIN files f ON f.id = d.from_file_id
		 WHERE d.to_path_or_module LIKE ? ESCAPE '\' OR d.to_path_or_module LIKE ? ESCAPE '\'`,
		"%"+likeEscape(base), "%"+likeEscape(base)+".%",
	)
	if err != nil {
		return nil, apperr.Internalf(err, "get_dependents query for %s", path)
	}
	defer rows.Close()

	var out []Dependent
	for rows.Next() {
		var d Dependent
		var kind string
		if err := rows.Scan(&d.FromPath, &d.ToPathOrModule, &kind, &d.Symbol); err != nil {
			return nil, apperr.Internalf(err, "scan get_dependents row")
		}
		d.Kind = model.DependencyKind(kind)
		if literalBasenameMatches(d.ToPathOrModule, base) {
			out = append(out, d)
		}
	}
	return out, rows.Err()
}

// literalBasenameMatches reports whether literal's trailing path segment
// (stripped of any extension) equals base, ruling out a LIKE hit on an
// unrelated longer name that merely contains base as a substring.
func literalBasenameMatches(literal, base string) bool {
	segment := literal
	if idx := strings.LastIndexAny(literal, "/\\"); idx >= 0 {
		segment = literal[idx+1:]
	}
	segment = strings.TrimSuffix(segment, filepath.Ext(segment))
	return segment == base
}
