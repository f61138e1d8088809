package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

func replaceSymbolsTx(tx *sql.Tx, fileID int64, symbols []model.Symbol) error {
	if _, err := tx.Exec("DELETE FROM symbols WHERE file_id = ?", fileID); err != nil {
		return apperr.Internalf(err, "delete existing symbols for file %d", fileID)
	}
	if len(symbols) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(
		`INSERT INTO symbols (file_id, name, kind, line_start, line_end, signature, doc_comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return apperr.Internalf(err, "prepare symbol insert")
	}
	defer stmt.Close()

	for _, sym := range symbols {
		if _, err := stmt.Exec(fileID, sym.Name, string(sym.Kind), sym.LineStart, sym.LineEnd, sym.Signature, sym.DocComment); err != nil {
			return apperr.Internalf(err, "insert symbol %s", sym.Name)
		}
	}
	return nil
}

// SymbolResult is one ranked row from SearchSymbols.
type SymbolResult struct {
	Symbol model.Symbol
	Path   string
	Rank   float64 // BM25 rank, lower is more relevant (sqlite fts5 convention)
}

// SearchSymbols runs the FTS index over symbols.name and symbols.signature,
// returning up to limit ranked rows (§4.4). query is escaped so LIKE-style
// injection through FTS5 special characters cannot alter the query shape.
func (s *Store) SearchSymbols(query string, limit int) ([]SymbolResult, error) {
	escaped := escapeFTSQuery(query)

	rows, err := s.db.Query(
		`SELECT sy.id, sy.file_id, sy.name, sy.kind, sy.line_start, sy.line_end,
				sy.signature, sy.doc_comment, f.path, symbols_fts.rank
		 FROM symbols_fts
		 JOIN symbols sy ON sy.id = symbols_fts.rowid
		 JOIN files f ON f.id = sy.file_id
		 WHERE symbols_fts MATCH ?
		 ORDER BY symbols_fts.rank
		 LIMIT ?`,
		escaped, limit,
	)
	if err != nil {
		return nil, apperr.Internalf(err, "search_symbols query %q", query)
	}
	defer rows.Close()

	var results []SymbolResult
	for rows.Next() {
		var r SymbolResult
		var kind string
		if err := rows.Scan(&r.Symbol.ID, &r.Symbol.FileID, &r.Symbol.Name, &kind,
			&r.Symbol.LineStart, &r.Symbol.LineEnd, &r.Symbol.Signature, &r.Symbol.DocComment,
			&r.Path, &r.Rank); err != nil {
			return nil, apperr.Internalf(err, "scan search_symbols row")
		}
		r.Symbol.Kind = model.SymbolKind(kind)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internalf(err, "iterate search_symbols rows")
	}
	return results, nil
}

// escapeFTSQuery neutralizes FTS5 syntax characters in user input by
// quoting every term as its own phrase, so a query string can never be
// interpreted as a column filter or boolean operator — the
// injection-safety guarantee §4.4 requires of search_symbols.
func escapeFTSQuery(input string) string {
	terms := strings.Fields(input)
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = fmt.Sprintf(`"%s"`, strings.ReplaceAll(t, `"`, `""`))
	}
	return strings.Join(quoted, " ")
}
