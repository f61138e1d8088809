package store

import (
	"database/sql"
	"strings"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

func chunkIDsForFileTx(tx *sql.Tx, fileID int64) ([]int64, error) {
	rows, err := tx.Query("SELECT id FROM chunks WHERE file_id = ?", fileID)
	if err != nil {
		return nil, apperr.Internalf(err, "list chunk ids for file %d", fileID)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Internalf(err, "scan chunk id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// replaceChunksTx replaces every chunk row for fileID, syncing chunks_fts
// and chunks_vec in the same transaction. chunks_vec rows are only written
// for chunks carrying a non-nil embedding. The stub Embedder's zero vectors
// are non-nil and are written like any other; the Retrieval Engine skips
// vector search for that provider instead.
func replaceChunksTx(tx *sql.Tx, fileID int64, chunks []model.Chunk) error {
	oldIDs, err := chunkIDsForFileTx(tx, fileID)
	if err != nil {
		return err
	}
	if err := deleteChunkVectorsTx(tx, oldIDs); err != nil {
		return err
	}
	if err := deleteChunkFTSTx(tx, oldIDs); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM chunks WHERE file_id = ?", fileID); err != nil {
		return apperr.Internalf(err, "delete existing chunks for file %d", fileID)
	}
	if len(chunks) == 0 {
		return nil
	}

	insertChunk, err := tx.Prepare(
		`INSERT INTO chunks (file_id, content, line_start, line_end, embedding, context_label)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return apperr.Internalf(err, "prepare chunk insert")
	}
	defer insertChunk.Close()

	insertFTS, err := tx.Prepare("INSERT INTO chunks_fts (chunk_id, content) VALUES (?, ?)")
	if err != nil {
		return apperr.Internalf(err, "prepare chunk_fts insert")
	}
	defer insertFTS.Close()

	insertVec, err := tx.Prepare("INSERT INTO chunks_vec (chunk_id, embedding) VALUES (?, ?)")
	if err != nil {
		return apperr.Internalf(err, "prepare chunk_vec insert")
	}
	defer insertVec.Close()

	for _, c := range chunks {
		var embBlob []byte
		if c.Embedding != nil {
			embBlob = model.SerializeEmbedding(c.Embedding)
		}
		res, err := insertChunk.Exec(fileID, c.Content, c.LineStart, c.LineEnd, embBlob, c.ContextLabel)
		if err != nil {
			return apperr.Internalf(err, "insert chunk for file %d", fileID)
		}
		chunkID, err := res.LastInsertId()
		if err != nil {
			return apperr.Internalf(err, "read chunk id")
		}

		if _, err := insertFTS.Exec(chunkID, c.Content); err != nil {
			return apperr.Internalf(err, "insert chunk_fts for chunk %d", chunkID)
		}

		if c.Embedding != nil {
			vecBytes, err := sqlite_vec.SerializeFloat32(c.Embedding)
			if err != nil {
				return apperr.Internalf(err, "serialize embedding for chunk %d", chunkID)
			}
			if _, err := insertVec.Exec(chunkID, vecBytes); err != nil {
				return apperr.Internalf(err, "insert chunk_vec for chunk %d", chunkID)
			}
		}
	}
	return nil
}

func deleteChunkVectorsTx(tx *sql.Tx, chunkIDs []int64) error {
	if len(chunkIDs) == 0 {
		return nil
	}
	stmt, err := tx.Prepare("DELETE FROM chunks_vec WHERE chunk_id = ?")
	if err != nil {
		return apperr.Internalf(err, "prepare chunk_vec delete")
	}
	defer stmt.Close()
	for _, id := range chunkIDs {
		if _, err := stmt.Exec(id); err != nil {
			return apperr.Internalf(err, "delete chunk_vec for chunk %d", id)
		}
	}
	return nil
}

func deleteChunkFTSTx(tx *sql.Tx, chunkIDs []int64) error {
	if len(chunkIDs) == 0 {
		return nil
	}
	stmt, err := tx.Prepare("DELETE FROM chunks_fts WHERE chunk_id = ?")
	if err != nil {
		return apperr.Internalf(err, "prepare chunk_fts delete")
	}
	defer stmt.Close()
	for _, id := range chunkIDs {
		if _, err := stmt.Exec(id); err != nil {
			return apperr.Internalf(err, "delete chunk_fts for chunk %d", id)
		}
	}
	return nil
}

// TextSearchResult is one row from SearchText.
type TextSearchResult struct {
	ChunkID   int64
	FileID    int64
	Path      string
	Content   string
	LineStart int
	LineEnd   int
}

// SearchText runs the FTS index over chunk content, the Text sub-search's
// backing store (§4.5.1 item 2). query is escaped so FTS5 syntax
// characters in user input can never alter the query shape.
func (s *Store) SearchText(query string, limit int, pathFilter string) ([]TextSearchResult, error) {
	return s.searchChunksFTS(escapeFTSQuery(query), limit, pathFilter)
}

// SearchTextAnyVariant is SearchText for several equivalent phrasings of
// one query (the Retrieval Engine's camelCase/snake_case/synonym
// expansion, §4.5): each variant is escaped individually and the results
// OR'd together in a single FTS5 MATCH, so a file matching any phrasing
// is a hit, matching the grep-style streaming matcher's own semantics.
func (s *Store) SearchTextAnyVariant(variants []string, limit int, pathFilter string) ([]TextSearchResult, error) {
	terms := make([]string, 0, len(variants))
	for _, v := range variants {
		if strings.TrimSpace(v) == "" {
			continue
		}
		terms = append(terms, escapeFTSQuery(v))
	}
	if len(terms) == 0 {
		return nil, nil
	}
	return s.searchChunksFTS(strings.Join(terms, " OR "), limit, pathFilter)
}

func (s *Store) searchChunksFTS(matchQuery string, limit int, pathFilter string) ([]TextSearchResult, error) {
	sqlQuery := `
		SELECT cf.chunk_id, c.file_id, f.path, c.content, c.line_start, c.line_end
		FROM chunks_fts cf
		JOIN chunks c ON c.id = cf.chunk_id
		JOIN files f ON f.id = c.file_id
		WHERE chunks_fts MATCH ?`
	args := []any{matchQuery}
	if pathFilter != "" {
		sqlQuery += " AND f.path LIKE ? ESCAPE '\\'"
		args = append(args, likeEscape(pathFilter)+"%")
	}
	sqlQuery += " ORDER BY rank LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, apperr.Internalf(err, "search_text query %q", matchQuery)
	}
	defer rows.Close()

	var out []TextSearchResult
	for rows.Next() {
		var r TextSearchResult
		if err := rows.Scan(&r.ChunkID, &r.FileID, &r.Path, &r.Content, &r.LineStart, &r.LineEnd); err != nil {
			return nil, apperr.Internalf(err, "scan search_text row")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SimilarChunk is one row from SearchSimilarChunks.
type SimilarChunk struct {
	ChunkID  int64
	Distance float64
}

// SearchSimilarChunks runs a cosine-distance KNN query over chunks_vec
// (§4.4), optionally restricted to chunks belonging to files of the given
// language.
func (s *Store) SearchSimilarChunks(vector []float32, topK int, language string) ([]SimilarChunk, error) {
	queryBytes, err := sqlite_vec.SerializeFloat32(vector)
	if err != nil {
		return nil, apperr.Internalf(err, "serialize query vector")
	}

	sqlQuery := `
		SELECT cv.chunk_id, vec_distance_cosine(cv.embedding, ?) AS distance
		FROM chunks_vec cv`
	args := []any{queryBytes}
	if language != "" {
		sqlQuery += `
		JOIN chunks c ON c.id = cv.chunk_id
		JOIN files f ON f.id = c.file_id
		WHERE f.language = ?`
		args = append(args, language)
	}
	sqlQuery += " ORDER BY distance LIMIT ?"
	args = append(args, topK)

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, apperr.Internalf(err, "search_similar_chunks query")
	}
	defer rows.Close()

	var out []SimilarChunk
	for rows.Next() {
		var r SimilarChunk
		if err := rows.Scan(&r.ChunkID, &r.Distance); err != nil {
			return nil, apperr.Internalf(err, "scan search_similar_chunks row")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func likeEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
