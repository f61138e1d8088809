// Package config holds the process-wide configuration tree: the Database,
// Embedding, Retrieval, Calibration, and Indexer sections, loaded from
// .semantiq/config.yml (and environment overrides) by Load, or obtained
// directly from Default for tests and first-run bootstrapping.
package config

import "time"

// Config is the top-level configuration tree.
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database" yaml:"database"`
	Embedding   EmbeddingConfig   `mapstructure:"embedding" yaml:"embedding"`
	Retrieval   RetrievalConfig   `mapstructure:"retrieval" yaml:"retrieval"`
	Calibration CalibrationConfig `mapstructure:"calibration" yaml:"calibration"`
	Indexer     IndexerConfig     `mapstructure:"indexer" yaml:"indexer"`
}

// DatabaseConfig configures the Index Store's single SQLite file (§4.4).
type DatabaseConfig struct {
	Path           string `mapstructure:"path" yaml:"path" validate:"required"`
	BusyTimeoutMS  int    `mapstructure:"busy_timeout_ms" yaml:"busy_timeout_ms" validate:"min=1"`
	MmapSizeBytes  int64  `mapstructure:"mmap_size_bytes" yaml:"mmap_size_bytes" validate:"min=0"`
}

// EmbeddingConfig selects and configures the Embedder (§4.3).
type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider" yaml:"provider" validate:"omitempty,oneof=stub local"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	BatchSize int    `mapstructure:"batch_size" yaml:"batch_size" validate:"min=1,max=32"`
}

// RetrievalConfig configures the Retrieval Engine's fusion and timeout
// behavior (§4.5).
type RetrievalConfig struct {
	DefaultLimit          int     `mapstructure:"default_limit" yaml:"default_limit" validate:"min=1,max=50"`
	DefaultMinScore       float32 `mapstructure:"default_min_score" yaml:"default_min_score" validate:"min=0,max=1"`
	RRFConstant           int     `mapstructure:"rrf_constant" yaml:"rrf_constant" validate:"min=1"`
	LexicalWeight         float64 `mapstructure:"lexical_weight" yaml:"lexical_weight" validate:"min=0"`
	SemanticWeight        float64 `mapstructure:"semantic_weight" yaml:"semantic_weight" validate:"min=0"`
	SymbolWeight          float64 `mapstructure:"symbol_weight" yaml:"symbol_weight" validate:"min=0"`
	GraphWeight           float64 `mapstructure:"graph_weight" yaml:"graph_weight" validate:"min=0"`
	RecentBoost           float64 `mapstructure:"recent_boost" yaml:"recent_boost"`
	RecentWindow          time.Duration `mapstructure:"recent_window" yaml:"recent_window"`
	SameDirBoost          float64 `mapstructure:"same_dir_boost" yaml:"same_dir_boost"`
	TestPathPenalty       float64 `mapstructure:"test_path_penalty" yaml:"test_path_penalty"`
	SubSearchTimeout      time.Duration `mapstructure:"sub_search_timeout" yaml:"sub_search_timeout"`
	WallClockBudget       time.Duration `mapstructure:"wall_clock_budget" yaml:"wall_clock_budget"`
	SymbolCandidateCap    int     `mapstructure:"symbol_candidate_cap" yaml:"symbol_candidate_cap" validate:"min=1"`
	TextCandidateCap      int     `mapstructure:"text_candidate_cap" yaml:"text_candidate_cap" validate:"min=1"`
	FindRefsLimit         int     `mapstructure:"find_refs_limit" yaml:"find_refs_limit" validate:"min=1"`
	ResultCacheSize       int     `mapstructure:"result_cache_size" yaml:"result_cache_size" validate:"min=0"`
	ResultCacheTTL        time.Duration `mapstructure:"result_cache_ttl" yaml:"result_cache_ttl"`
}

// CalibrationConfig configures the Threshold Calibrator's bootstrap vs.
// production sampling switch (§4.7).
type CalibrationConfig struct {
	BootstrapThreshold  int     `mapstructure:"bootstrap_threshold" yaml:"bootstrap_threshold" validate:"min=1"`
	ProductionSampleRate float64 `mapstructure:"production_sample_rate" yaml:"production_sample_rate" validate:"min=0,max=1"`
}

// IndexerConfig configures the Auto-Indexer's sweep pool and watch debounce
// (§4.6).
type IndexerConfig struct {
	WorkerPoolSize int           `mapstructure:"worker_pool_size" yaml:"worker_pool_size" validate:"min=1"`
	DebounceWindow time.Duration `mapstructure:"debounce_window" yaml:"debounce_window"`
	ProgressEvery  int           `mapstructure:"progress_every" yaml:"progress_every" validate:"min=1"`
	EmbedBatchSize int           `mapstructure:"embed_batch_size" yaml:"embed_batch_size" validate:"min=1,max=32"`
}

// Default returns the compile-time configuration the spec names throughout
// §4: 2s debounce, 8-worker sweep pool, progress every 100 files, RRF K=60
// with the documented source weights and boosts, bootstrap/production
// calibration at the 500-sample line, 2s per-subsearch timeout with a 5s
// wall-clock budget.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:          ".semantiq.db",
			BusyTimeoutMS: 5000,
			MmapSizeBytes: 256 << 20,
		},
		Embedding: EmbeddingConfig{
			Provider:  "stub",
			BatchSize: 32,
		},
		Retrieval: RetrievalConfig{
			DefaultLimit:       20,
			DefaultMinScore:    0.35,
			RRFConstant:        60,
			LexicalWeight:      0.25,
			SemanticWeight:     0.40,
			SymbolWeight:       0.20,
			GraphWeight:        0.15,
			RecentBoost:        0.20,
			RecentWindow:       7 * 24 * time.Hour,
			SameDirBoost:       0.15,
			TestPathPenalty:    0.30,
			SubSearchTimeout:   2 * time.Second,
			WallClockBudget:    5 * time.Second,
			SymbolCandidateCap: 500,
			TextCandidateCap:   500,
			FindRefsLimit:      200,
			ResultCacheSize:    256,
			ResultCacheTTL:     30 * time.Second,
		},
		Calibration: CalibrationConfig{
			BootstrapThreshold:   500,
			ProductionSampleRate: 0.10,
		},
		Indexer: IndexerConfig{
			WorkerPoolSize: 8,
			DebounceWindow: 2 * time.Second,
			ProgressEvery:  100,
			EmbedBatchSize: 32,
		},
	}
}
