// Package model holds the domain entities shared by the store, parser,
// embedder and retrieval packages. These are plain data transfer structs,
// not an ORM layer — the Index Store owns their persisted form.
package model

import "time"

// SymbolKind enumerates the kinds a Symbol row may take (§3).
type SymbolKind string

const (
	SymbolFunction  SymbolKind = "function"
	SymbolMethod    SymbolKind = "method"
	SymbolClass     SymbolKind = "class"
	SymbolStruct    SymbolKind = "struct"
	SymbolEnum      SymbolKind = "enum"
	SymbolInterface SymbolKind = "interface"
	SymbolTrait     SymbolKind = "trait"
	SymbolModule    SymbolKind = "module"
	SymbolVariable  SymbolKind = "variable"
	SymbolConstant  SymbolKind = "constant"
	SymbolType      SymbolKind = "type"
)

// DependencyKind enumerates the two outgoing-edge flavors a Dependency row may take.
type DependencyKind string

const (
	DependencyImport   DependencyKind = "import"
	DependencyReexport DependencyKind = "re-export"
)

// File mirrors the files table (§3).
type File struct {
	ID            int64
	Path          string
	ContentHash   string
	ModifiedAt    time.Time
	SizeBytes     uint64
	Language      string // empty means unknown/unset
	IndexedAt     time.Time
	ParserVersion uint32
}

// Symbol mirrors the symbols table (§3).
type Symbol struct {
	ID         int64
	FileID     int64
	Name       string
	Kind       SymbolKind
	LineStart  int
	LineEnd    int
	Signature  string // empty means absent
	DocComment string // empty means absent
}

// Chunk mirrors the chunks table (§3). Embedding is nil until the chunk has
// been embedded; queries must ignore chunks without one.
type Chunk struct {
	ID           int64
	FileID       int64
	Content      string
	LineStart    int
	LineEnd      int
	Embedding    []float32
	ContextLabel string
}

// Dependency mirrors the dependencies table (§3). ToPathOrModule is the raw
// literal as written in source; resolution to a File happens at query time.
type Dependency struct {
	ID              int64
	FromFileID      int64
	ToPathOrModule  string
	Kind            DependencyKind
	Symbol          string // empty means absent
}

// DistanceObservation mirrors the distance_observations table (§3, §4.7).
type DistanceObservation struct {
	ID        int64
	Language  string
	Distance  float32
	CreatedAt time.Time
}

// ThresholdCalibration mirrors the threshold_calibration table (§3, §4.7).
// Language == GlobalLanguage is the sentinel row consulted when a
// per-language row is absent.
type ThresholdCalibration struct {
	Language      string
	MaxDistance   float32
	MinSimilarity float32
	SampleCount   uint32
	CalibratedAt  time.Time
}

// GlobalLanguage is the calibration sentinel consulted after a per-language
// miss and before the compile-time defaults (§4.7).
const GlobalLanguage = "_global_"

// Default compile-time calibration thresholds (§4.7).
const (
	DefaultMaxDistance   = 1.0
	DefaultMinSimilarity = 0.0
)

// EmbeddingDimensions is the fixed dense-vector width D the Embedder and the
// Index Store agree on at compile time (§2, §4.3).
const EmbeddingDimensions = 384

// SchemaVersion and ParserVersion are the on-disk catalog constants (§6).
// Bumping either forces a full reindex on the next sweep.
const (
	SchemaVersion uint32 = 3
	ParserVersion uint32 = 3
)
