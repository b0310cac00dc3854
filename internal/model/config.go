package model

import "time"

// Config holds the full lapidary configuration.
//
// Hierarchy (highest to lowest priority):
//  1. CLI flags
//  2. Environment variables (LAPIDARY_*)
//  3. Config file (~/.lapidary/config.yaml)
//  4. Defaults
type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog" json:"catalog"`
	Tolerances  Tolerances        `yaml:"tolerances" json:"tolerances"`
	Matching    MatchingConfig    `yaml:"matching" json:"matching"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
}

// CatalogConfig selects the reference data source.
type CatalogConfig struct {
	// Path to the catalog: .sqlite/.db, .yaml/.yml or .json
	Path string `yaml:"path" json:"path"`
}

// MatchingConfig tunes the ranker.
type MatchingConfig struct {
	// MinConfidence filters results below this score (0-100).
	MinConfidence int `yaml:"min_confidence" json:"min_confidence"`
	// MaxResults truncates the ranked list; 0 means unlimited.
	MaxResults int `yaml:"max_results" json:"max_results"`
}

// CacheConfig controls the in-process catalog cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
	// MaxEvalRate caps identifications per second in batch mode;
	// 0 means unlimited.
	MaxEvalRate float64 `yaml:"max_eval_rate" json:"max_eval_rate"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
	// TopN limits the stdout summary table.
	TopN int `yaml:"top_n" json:"top_n"`
}

// LLMConfig configures the optional notes provider.
type LLMConfig struct {
	// Provider name: "openai", "ollama", "" (disabled)
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
	APIKey   string `yaml:"-" json:"-"` // from environment only
	BaseURL  string `yaml:"base_url" json:"base_url"`
	Timeout  int    `yaml:"timeout" json:"timeout"` // seconds
	// StrictCatalog restricts notes to minerals present in the result
	// list (should always be true).
	StrictCatalog bool `yaml:"strict_catalog" json:"strict_catalog"`
	MaxTokens     int  `yaml:"max_tokens" json:"max_tokens"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: "",
		},
		Tolerances: DefaultTolerances(),
		Matching: MatchingConfig{
			MinConfidence: 1,
			MaxResults:    0,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers:     4,
			MaxEvalRate: 0,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
			TopN:          10,
		},
		LLM: LLMConfig{
			Provider:      "", // Disabled by default
			Model:         "",
			Timeout:       30,
			StrictCatalog: true, // CRITICAL: Always enforce
			MaxTokens:     1000,
		},
	}
}
