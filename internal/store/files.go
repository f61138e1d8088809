package store

import (
	"database/sql"
	"time"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

// UpsertFile inserts or updates the files row for path, returning its id.
// It opens and commits its own transaction; ReplaceFile is the entry point
// that writes the files row together with the file's symbols, chunks, and
// dependencies in one transaction.
func (s *Store) UpsertFile(path, contentHash string, sizeBytes uint64, modifiedAt time.Time, language string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, apperr.Internalf(err, "begin upsert_file transaction")
	}
	defer tx.Rollback()

	id, err := upsertFileTx(tx, path, contentHash, sizeBytes, modifiedAt, language)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, apperr.Internalf(err, "commit upsert_file transaction")
	}
	return id, nil
}

func upsertFileTx(tx *sql.Tx, path, contentHash string, sizeBytes uint64, modifiedAt time.Time, language string) (int64, error) {
	now := nowRFC3339()
	res, err := tx.Exec(
		`INSERT INTO files (path, content_hash, modified_at, size_bytes, language, indexed_at, parser_version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			content_hash = excluded.content_hash,
			modified_at = excluded.modified_at,
			size_bytes = excluded.size_bytes,
			language = excluded.language,
			indexed_at = excluded.indexed_at,
			parser_version = excluded.parser_version`,
		path, contentHash, modifiedAt.UTC().Format(time.RFC3339), sizeBytes, language, now, model.ParserVersion,
	)
	if err != nil {
		return 0, apperr.Internalf(err, "upsert file row for %s", path)
	}

	// ON CONFLICT...DO UPDATE doesn't report a usable LastInsertId for the
	// update path in every driver; look the id up directly.
	var id int64
	if err := tx.QueryRow("SELECT id FROM files WHERE path = ?", path).Scan(&id); err != nil {
		return 0, apperr.Internalf(err, "read file id for %s", path)
	}
	_ = res
	return id, nil
}

// DeleteFile removes path's files row; ON DELETE CASCADE removes its
// symbols, chunks, and dependencies in the same statement. chunks_vec and
// chunks_fts have no FK, so their rows for the file's chunks are deleted
// first, in the same transaction.
func (s *Store) DeleteFile(path string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperr.Internalf(err, "begin delete_file transaction")
	}
	defer tx.Rollback()

	var fileID int64
	err = tx.QueryRow("SELECT id FROM files WHERE path = ?", path).Scan(&fileID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return apperr.Internalf(err, "read file id for %s", path)
	}

	chunkIDs, err := chunkIDsForFileTx(tx, fileID)
	if err != nil {
		return err
	}
	if err := deleteChunkVectorsTx(tx, chunkIDs); err != nil {
		return err
	}
	if err := deleteChunkFTSTx(tx, chunkIDs); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM files WHERE id = ?", fileID); err != nil {
		return apperr.Internalf(err, "delete file row for %s", path)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internalf(err, "commit delete_file transaction")
	}
	return nil
}
