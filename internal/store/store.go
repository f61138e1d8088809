// Package store implements the Index Store (§4.4): the single embedded
// SQLite database holding files, symbols, chunks, dependencies,
// calibration state, and the on-disk catalog's meta row pair.
package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

func init() {
	// Registers the vec0 virtual table module with every future
	// connection, mirroring the teacher's InitVectorExtension call site.
	sqlite_vec.Auto()
}

// Store owns the database handle and the process-level writer lock
// beside it (§4.4's "exclusive single-writer" carried across OS
// processes, not just goroutines).
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Options configures Open.
type Options struct {
	Path          string
	BusyTimeoutMS int
	MmapSizeBytes int64
}

// Open opens (creating if absent) the database at opts.Path, applies the
// connection settings named in §4.4 (WAL journaling, busy timeout,
// memory-mapped reads, 0600 file mode), takes the process-level exclusive
// writer lock, and ensures the schema exists.
func Open(opts Options) (*Store, error) {
	lockPath := opts.Path + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, apperr.Internalf(err, "acquire writer lock at %s", lockPath)
	}
	if !locked {
		return nil, apperr.New(apperr.Internal, "another process holds the writer lock at %s", lockPath)
	}

	dsn := fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_busy_timeout=%d&_mmap_size=%d",
		opts.Path, opts.BusyTimeoutMS, opts.MmapSizeBytes,
	)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		lock.Unlock()
		return nil, apperr.Internalf(err, "open database at %s", opts.Path)
	}
	db.SetMaxOpenConns(1)

	if err := chmodDatabaseFile(opts.Path); err != nil {
		db.Close()
		lock.Unlock()
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		lock.Unlock()
		return nil, apperr.Internalf(err, "enable foreign keys")
	}

	if err := createSchema(db); err != nil {
		db.Close()
		lock.Unlock()
		return nil, apperr.Internalf(err, "create schema")
	}

	return &Store{db: db, lock: lock, path: opts.Path}, nil
}

// Close releases the database handle and the writer lock.
func (s *Store) Close() error {
	dbErr := s.db.Close()
	lockErr := s.lock.Unlock()
	if dbErr != nil {
		return apperr.Internalf(dbErr, "close database")
	}
	if lockErr != nil {
		return apperr.Internalf(lockErr, "release writer lock")
	}
	return nil
}

// NeedsFullReindex reports whether the binary's compile-time
// schema_version or parser_version exceeds what's stored on disk — the
// Auto-Indexer's cue to treat every file as changed on its next sweep
// (§6).
func (s *Store) NeedsFullReindex() (bool, error) {
	storedSchema, ok, err := getMeta(s.db, "schema_version")
	if err != nil {
		return false, apperr.Internalf(err, "read schema_version")
	}
	if !ok {
		return true, nil
	}
	storedParser, ok, err := getMeta(s.db, "parser_version")
	if err != nil {
		return false, apperr.Internalf(err, "read parser_version")
	}
	if !ok {
		return true, nil
	}

	schemaN, err := strconv.ParseUint(storedSchema, 10, 32)
	if err != nil {
		return true, nil
	}
	parserN, err := strconv.ParseUint(storedParser, 10, 32)
	if err != nil {
		return true, nil
	}

	return uint32(schemaN) < model.SchemaVersion || uint32(parserN) < model.ParserVersion, nil
}

// RecordCurrentVersions persists the binary's current schema/parser
// versions, called once a full reindex driven by NeedsFullReindex
// completes.
func (s *Store) RecordCurrentVersions() error {
	if err := setMeta(s.db, "schema_version", fmt.Sprint(model.SchemaVersion)); err != nil {
		return apperr.Internalf(err, "persist schema_version")
	}
	if err := setMeta(s.db, "parser_version", fmt.Sprint(model.ParserVersion)); err != nil {
		return apperr.Internalf(err, "persist parser_version")
	}
	return nil
}

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }

func parseRFC3339(s string) (time.Time, error) { return time.Parse(time.RFC3339, s) }
