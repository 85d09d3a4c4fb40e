// Package config defines service configuration structures and loading
// hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers an optional YAML file and DUEL_-prefixed env vars.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// DataDir holds the per-list item and rating files.
	DataDir string `koanf:"data_dir"`

	// KFactor is the Elo sensitivity constant applied to every
	// comparison.
	KFactor float64 `koanf:"k_factor"`

	// InitialRating is assigned to items that have never been compared.
	InitialRating float64 `koanf:"initial_rating"`

	// MaxRankingLimit caps GET /rankings?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// SelectorJitter is the random perturbation, in rating points,
	// applied when picking the closest-rated partner.
	SelectorJitter float64 `koanf:"selector_jitter"`

	// HistoryLimit bounds the in-memory comparison log per session.
	HistoryLimit int `koanf:"history_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8090",
		DataDir:         "data",
		KFactor:         32,
		InitialRating:   1500,
		MaxRankingLimit: 500,
		SelectorJitter:  8,
		HistoryLimit:    10_000,
	}
}
