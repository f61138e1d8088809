package store

import (
	"database/sql"
	"fmt"

	"github.com/so-keyldzn/semantiq/internal/model"
)

const createFilesTable = `
CREATE TABLE IF NOT EXISTS files (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	path           TEXT NOT NULL UNIQUE,
	content_hash   TEXT NOT NULL,
	modified_at    TEXT NOT NULL,
	size_bytes     INTEGER NOT NULL,
	language       TEXT NOT NULL DEFAULT '',
	indexed_at     TEXT NOT NULL,
	parser_version INTEGER NOT NULL
)
`

const createSymbolsTable = `
CREATE TABLE IF NOT EXISTS symbols (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id     INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	kind        TEXT NOT NULL,
	line_start  INTEGER NOT NULL,
	line_end    INTEGER NOT NULL,
	signature   TEXT NOT NULL DEFAULT '',
	doc_comment TEXT NOT NULL DEFAULT ''
)
`

const createSymbolsFTSTable = `
CREATE VIRTUAL TABLE IF NOT EXISTS symbols_fts USING fts5(
	name,
	signature,
	content='symbols',
	content_rowid='id',
	tokenize = 'unicode61 remove_diacritics 0'
)
`

const createChunksTable = `
CREATE TABLE IF NOT EXISTS chunks (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id       INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	content       TEXT NOT NULL,
	line_start    INTEGER NOT NULL,
	line_end      INTEGER NOT NULL,
	embedding     BLOB,
	context_label TEXT NOT NULL DEFAULT ''
)
`

const createDependenciesTable = `
CREATE TABLE IF NOT EXISTS dependencies (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	from_file_id      INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	to_path_or_module TEXT NOT NULL,
	kind              TEXT NOT NULL,
	symbol            TEXT NOT NULL DEFAULT ''
)
`

const createDistanceObservationsTable = `
CREATE TABLE IF NOT EXISTS distance_observations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	language   TEXT NOT NULL,
	distance   REAL NOT NULL,
	created_at TEXT NOT NULL
)
`

const createThresholdCalibrationTable = `
CREATE TABLE IF NOT EXISTS threshold_calibration (
	language       TEXT PRIMARY KEY,
	max_distance   REAL NOT NULL,
	min_similarity REAL NOT NULL,
	sample_count   INTEGER NOT NULL,
	calibrated_at  TEXT NOT NULL
)
`

const createMetaTable = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)
`

var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_symbols_file_id ON symbols(file_id)",
	"CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind)",
	"CREATE INDEX IF NOT EXISTS idx_chunks_file_id ON chunks(file_id)",
	"CREATE INDEX IF NOT EXISTS idx_dependencies_from_file_id ON dependencies(from_file_id)",
	"CREATE INDEX IF NOT EXISTS idx_dependencies_to ON dependencies(to_path_or_module)",
	"CREATE INDEX IF NOT EXISTS idx_distance_observations_language ON distance_observations(language, created_at)",
}

// symbolsFTSTriggers keep symbols_fts in sync with symbols via the
// external-content FTS5 pattern, mirroring the files_fts sync the teacher
// wires with AFTER triggers rather than a delete-then-insert upsert (that
// pattern is reserved for the chunks_fts/chunks_vec tables, which
// replaceChunksTx keeps in sync by hand instead of through triggers).
var symbolsFTSTriggers = []string{
	`CREATE TRIGGER IF NOT EXISTS symbols_ai AFTER INSERT ON symbols BEGIN
		INSERT INTO symbols_fts(rowid, name, signature) VALUES (new.id, new.name, new.signature);
	END`,
	`CREATE TRIGGER IF NOT EXISTS symbols_ad AFTER DELETE ON symbols BEGIN
		INSERT INTO symbols_fts(symbols_fts, rowid, name, signature) VALUES('delete', old.id, old.name, old.signature);
	END`,
	`CREATE TRIGGER IF NOT EXISTS symbols_au AFTER UPDATE ON symbols BEGIN
		INSERT INTO symbols_fts(symbols_fts, rowid, name, signature) VALUES('delete', old.id, old.name, old.signature);
		INSERT INTO symbols_fts(rowid, name, signature) VALUES (new.id, new.name, new.signature);
	END`,
}

func createVectorTable(db *sql.DB) error {
	createSQL := fmt.Sprintf(`
		CREATE VIRTUAL TABLE IF NOT EXISTS chunks_vec USING vec0(
			chunk_id INTEGER PRIMARY KEY,
			embedding float[%d]
		)
	`, model.EmbeddingDimensions)
	_, err := db.Exec(createSQL)
	return err
}

// createSchema creates every table, index, trigger, and virtual table
// named in §4.4, then bootstraps the meta row pair the on-disk catalog
// relies on (§6).
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []string{
		createFilesTable,
		createSymbolsTable,
		createChunksTable,
		createDependenciesTable,
		createDistanceObservationsTable,
		createThresholdCalibrationTable,
		createMetaTable,
	}
	for _, ddl := range tables {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, ddl := range indexStatements {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	if _, err := tx.Exec(createSymbolsFTSTable); err != nil {
		return fmt.Errorf("create symbols_fts: %w", err)
	}
	for _, trig := range symbolsFTSTriggers {
		if _, err := tx.Exec(trig); err != nil {
			return fmt.Errorf("create symbols_fts trigger: %w", err)
		}
	}
	if _, err := tx.Exec(createChunksFTSTable); err != nil {
		return fmt.Errorf("create chunks_fts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}

	// vec0 virtual tables must be created outside a transaction, matching
	// the teacher's own CreateVectorIndex call site.
	if err := createVectorTable(db); err != nil {
		return fmt.Errorf("create chunks_vec: %w", err)
	}

	return bootstrapMeta(db)
}

const createChunksFTSTable = `
CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
	chunk_id UNINDEXED,
	content,
	tokenize = 'unicode61 remove_diacritics 0'
)
`

func bootstrapMeta(db *sql.DB) error {
	_, err := db.Exec(
		`INSERT OR IGNORE INTO meta (key, value) VALUES
			('schema_version', ?),
			('parser_version', ?)`,
		fmt.Sprint(model.SchemaVersion), fmt.Sprint(model.ParserVersion),
	)
	return err
}

func getMeta(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func setMeta(db *sql.DB, key, value string) error {
	_, err := db.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
