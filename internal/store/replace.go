package store

import (
	"time"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

// FileUpdate bundles everything the Auto-Indexer extracts for one file
// (§4.2, §4.6) so ReplaceFile can persist it atomically.
type FileUpdate struct {
	Path         string
	ContentHash  string
	SizeBytes    uint64
	ModifiedAt   time.Time
	Language     string
	Symbols      []model.Symbol
	Chunks       []model.Chunk
	Dependencies []model.Dependency
}

// ReplaceFile upserts a file and replaces its symbols, chunks, and
// dependencies within a single transaction (§4.4: "within the same
// transaction that upserts the file"), so a reader never observes a file
// row whose derived data is half-updated. Returns the file's row id.
func (s *Store) ReplaceFile(u FileUpdate) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, apperr.Internalf(err, "begin replace_file transaction")
	}
	defer tx.Rollback()

	fileID, err := upsertFileTx(tx, u.Path, u.ContentHash, u.SizeBytes, u.ModifiedAt, u.Language)
	if err != nil {
		return 0, err
	}
	if err := replaceSymbolsTx(tx, fileID, u.Symbols); err != nil {
		return 0, err
	}
	if err := replaceChunksTx(tx, fileID, u.Chunks); err != nil {
		return 0, err
	}
	if err := replaceDependenciesTx(tx, fileID, u.Dependencies); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, apperr.Internalf(err, "commit replace_file transaction")
	}
	return fileID, nil
}
