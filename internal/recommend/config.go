// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package recommend

import (
	"fmt"
	"time"
)

// Config holds recommendation engine settings.
type Config struct {
	// CacheTTL is how long a composed result stays valid. Within this
	// window a repeat request returns the cached result unchanged, even
	// if the underlying wardrobe changed. This is a deliberate staleness
	// for performance tradeoff.
	// Default: 30m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// MaxCandidates caps the ranked list before grouping to bound
	// downstream cost.
	// Default: 20
	MaxCandidates int `koanf:"max_candidates"`

	// TopN is the size of the global top selection across categories.
	// Default: 10
	TopN int `koanf:"top_n"`

	// EmbedTimeout bounds the external embedding call.
	// Default: 10s
	EmbedTimeout time.Duration `koanf:"embed_timeout"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:      30 * time.Minute,
		MaxCandidates: 20,
		TopN:          10,
		EmbedTimeout:  10 * time.Second,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", c.CacheTTL)
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("max_candidates must be positive, got %d", c.MaxCandidates)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.TopN > c.MaxCandidates {
		return fmt.Errorf("top_n (%d) cannot exceed max_candidates (%d)", c.TopN, c.MaxCandidates)
	}
	if c.EmbedTimeout <= 0 {
		return fmt.Errorf("embed_timeout must be positive, got %v", c.EmbedTimeout)
	}
	return nil
}
