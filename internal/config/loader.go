package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DUEL_CONFIG is set
//  3. env (prefix DUEL_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DUEL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: DUEL_ADDR, DUEL_K_FACTOR, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("DUEL_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "duel_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy of the defaults.
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.DataDir == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case cfg.KFactor <= 0 || math.IsNaN(cfg.KFactor) || math.IsInf(cfg.KFactor, 0):
		return fmt.Errorf("%w: k_factor must be a positive finite number", ErrInvalidConfig)
	case cfg.InitialRating <= 0 || math.IsNaN(cfg.InitialRating) || math.IsInf(cfg.InitialRating, 0):
		return fmt.Errorf("%w: initial_rating must be a positive finite number", ErrInvalidConfig)
	case cfg.MaxRankingLimit < 1:
		return fmt.Errorf("%w: max_ranking_limit must be at least 1", ErrInvalidConfig)
	case cfg.SelectorJitter < 0:
		return fmt.Errorf("%w: selector_jitter must not be negative", ErrInvalidConfig)
	case cfg.HistoryLimit < 1:
		return fmt.Errorf("%w: history_limit must be at least 1", ErrInvalidConfig)
	}
	return nil
}
