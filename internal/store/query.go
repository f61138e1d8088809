package store

import (
	"database/sql"
	"time"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

// FileRow is one row from GetFileByPath.
type FileRow struct {
	ID         int64
	Path       string
	Language   string
	ModifiedAt time.Time
}

// GetFileByPath looks up a file's id, language, and modification time by
// exact path, used by the Retrieval Engine to resolve dependency literals
// and to compute the "modified in the last 7 days" fusion boost.
func (s *Store) GetFileByPath(path string) (FileRow, bool, error) {
	var row FileRow
	var modifiedAt string
	err := s.db.QueryRow(
		"SELECT id, path, language, modified_at FROM files WHERE path = ?", path,
	).Scan(&row.ID, &row.Path, &row.Language, &modifiedAt)
	if err == sql.ErrNoRows {
		return FileRow{}, false, nil
	}
	if err != nil {
		return FileRow{}, false, apperr.Internalf(err, "get_file_by_path query for %s", path)
	}
	t, err := parseRFC3339(modifiedAt)
	if err != nil {
		return FileRow{}, false, apperr.Internalf(err, "parse modified_at for %s", path)
	}
	row.ModifiedAt = t
	return row, true, nil
}

// ListDependencies returns every outgoing Dependency row recorded for
// fileID, used by the Retrieval Engine's deps() to build the imports list.
func (s *Store) ListDependencies(fileID int64) ([]model.Dependency, error) {
	rows, err := s.db.Query(
		`SELECT id, from_file_id, to_path_or_module, kind, symbol
		 FROM dependencies WHERE from_file_id = ?`,
		fileID,
	)
	if err != nil {
		return nil, apperr.Internalf(err, "list_dependencies query for file %d", fileID)
	}
	defer rows.Close()

	var out []model.Dependency
	for rows.Next() {
		var d model.Dependency
		var kind string
		if err := rows.Scan(&d.ID, &d.FromFileID, &d.ToPathOrModule, &kind, &d.Symbol); err != nil {
			return nil, apperr.Internalf(err, "scan list_dependencies row")
		}
		d.Kind = model.DependencyKind(kind)
		out = append(out, d)
	}
	return out, rows.Err()
}

// Fingerprint is a file's content hash and the parser version it was last
// indexed with, the pair the Auto-Indexer's sweep compares against a
// freshly hashed file to decide whether to skip it (§4.6).
type Fingerprint struct {
	ContentHash   string
	ParserVersion uint32
}

// GetFileFingerprint looks up path's stored content hash and parser
// version without touching symbols, chunks, or dependencies.
func (s *Store) GetFileFingerprint(path string) (Fingerprint, bool, error) {
	var fp Fingerprint
	err := s.db.QueryRow(
		"SELECT content_hash, parser_version FROM files WHERE path = ?", path,
	).Scan(&fp.ContentHash, &fp.ParserVersion)
	if err == sql.ErrNoRows {
		return Fingerprint{}, false, nil
	}
	if err != nil {
		return Fingerprint{}, false, apperr.Internalf(err, "get_file_fingerprint query for %s", path)
	}
	return fp, true, nil
}

// ListAllPaths returns every indexed file's path, used by the Auto-Indexer
// sweep to find rows whose on-disk file has disappeared.
func (s *Store) ListAllPaths() ([]string, error) {
	rows, err := s.db.Query("SELECT path FROM files")
	if err != nil {
		return nil, apperr.Internalf(err, "list_all_paths query")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, apperr.Internalf(err, "scan list_all_paths row")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ChunkRow is one row from ChunkByID.
type ChunkRow struct {
	ChunkID   int64
	FileID    int64
	Path      string
	Content   string
	LineStart int
	LineEnd   int
}

// ChunkByID resolves a chunks_vec hit (which carries only a chunk id and a
// distance) back to its owning file and text, so the Retrieval Engine's
// semantic sub-search can build a full candidate alongside the lexical and
// symbol ones.
func (s *Store) ChunkByID(chunkID int64) (ChunkRow, bool, error) {
	var row ChunkRow
	err := s.db.QueryRow(
		`SELECT c.id, c.file_id, f.path, c.content, c.line_start, c.line_end
		 FROM chunks c JOIN files f ON f.id = c.file_id
		 WHERE c.id = ?`,
		chunkID,
	).Scan(&row.ChunkID, &row.FileID, &row.Path, &row.Content, &row.LineStart, &row.LineEnd)
	if err == sql.ErrNoRows {
		return ChunkRow{}, false, nil
	}
	if err != nil {
		return ChunkRow{}, false, apperr.Internalf(err, "chunk_by_id query for %d", chunkID)
	}
	return row, true, nil
}
