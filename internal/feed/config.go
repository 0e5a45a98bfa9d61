// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package feed

import (
	"fmt"
	"time"
)

// Config contains all configuration for the feed pipeline.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Freshness contains age-based filtering and decay parameters.
	Freshness FreshnessConfig `json:"freshness" koanf:"freshness"`

	// Diversity contains post-selection diversity parameters.
	Diversity DiversityConfig `json:"diversity" koanf:"diversity"`

	// Boost contains score bonus parameters.
	Boost BoostConfig `json:"boost" koanf:"boost"`

	// Disabled lists component names switched off for this deployment.
	// A disabled component is skipped regardless of its per-query Enabled.
	Disabled []string `json:"disabled,omitempty" koanf:"disabled"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is the page size used when the request omits one.
	// Default: 20.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit is the maximum allowed page size.
	// Default: 100.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// MaxCandidates caps the candidate set entering the scoring stages.
	// Default: 500.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`

	// StageTimeout is the per-component timeout within parallel stages
	// (query hydration and sourcing).
	// Default: 3s.
	StageTimeout time.Duration `json:"stage_timeout" koanf:"stage_timeout"`

	// ScoreTimeout is the timeout for a single scorer pass.
	// Default: 5s.
	ScoreTimeout time.Duration `json:"score_timeout" koanf:"score_timeout"`

	// EffectTimeout bounds each side effect's execution.
	// Default: 10s.
	EffectTimeout time.Duration `json:"effect_timeout" koanf:"effect_timeout"`
}

// FreshnessConfig contains age-based filtering and decay parameters.
type FreshnessConfig struct {
	// HalfLife is the freshness decay half-life.
	// Default: 24h.
	HalfLife time.Duration `json:"half_life" koanf:"half_life"`

	// MaxAge is the age threshold of the age filter. Candidates older than
	// this are removed; candidates with no timestamp are always kept.
	// Default: 720h (30 days).
	MaxAge time.Duration `json:"max_age" koanf:"max_age"`
}

// DiversityConfig contains post-selection diversity parameters.
type DiversityConfig struct {
	// MaxPerCreator caps selected posts per creator; overflow is dropped in
	// ranked order.
	// Default: 3.
	MaxPerCreator int `json:"max_per_creator" koanf:"max_per_creator"`
}

// BoostConfig contains score bonus parameters.
type BoostConfig struct {
	// InNetworkBonus is the additive final-score bonus for candidates
	// sourced from followed creators.
	// Default: 0.5.
	InNetworkBonus float64 `json:"in_network_bonus" koanf:"in_network_bonus"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultLimit:  20,
			MaxLimit:      100,
			MaxCandidates: 500,
			StageTimeout:  3 * time.Second,
			ScoreTimeout:  5 * time.Second,
			EffectTimeout: 10 * time.Second,
		},
		Freshness: FreshnessConfig{
			HalfLife: 24 * time.Hour,
			MaxAge:   720 * time.Hour,
		},
		Diversity: DiversityConfig{
			MaxPerCreator: 3,
		},
		Boost: BoostConfig{
			InNetworkBonus: 0.5,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.MaxCandidates < c.Limits.MaxLimit {
		return fmt.Errorf("limits.max_candidates must be >= limits.max_limit, got %d < %d", c.Limits.MaxCandidates, c.Limits.MaxLimit)
	}
	if c.Limits.StageTimeout <= 0 {
		return fmt.Errorf("limits.stage_timeout must be positive, got %v", c.Limits.StageTimeout)
	}
	if c.Limits.ScoreTimeout <= 0 {
		return fmt.Errorf("limits.score_timeout must be positive, got %v", c.Limits.ScoreTimeout)
	}
	if c.Limits.EffectTimeout <= 0 {
		return fmt.Errorf("limits.effect_timeout must be positive, got %v", c.Limits.EffectTimeout)
	}
	if c.Freshness.HalfLife <= 0 {
		return fmt.Errorf("freshness.half_life must be positive, got %v", c.Freshness.HalfLife)
	}
	if c.Freshness.MaxAge <= 0 {
		return fmt.Errorf("freshness.max_age must be positive, got %v", c.Freshness.MaxAge)
	}
	if c.Diversity.MaxPerCreator < 1 {
		return fmt.Errorf("diversity.max_per_creator must be positive, got %d", c.Diversity.MaxPerCreator)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Disabled = append([]string(nil), c.Disabled...)
	return &clone
}

// componentEnabled reports whether a component name is switched on.
func (c *Config) componentEnabled(name string) bool {
	for _, d := range c.Disabled {
		if d == name {
			return false
		}
	}
	return true
}
