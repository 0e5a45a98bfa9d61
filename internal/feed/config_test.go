// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package feed

import (
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative default limit", func(c *Config) { c.Limits.DefaultLimit = -1 }, true},
		{"zero max limit", func(c *Config) { c.Limits.MaxLimit = 0 }, true},
		{"default above max", func(c *Config) { c.Limits.DefaultLimit = 200; c.Limits.MaxLimit = 100 }, true},
		{"zero max candidates", func(c *Config) { c.Limits.MaxCandidates = 0 }, true},
		{"zero stage timeout", func(c *Config) { c.Limits.StageTimeout = 0 }, true},
		{"zero half life", func(c *Config) { c.Freshness.HalfLife = 0 }, true},
		{"negative max age", func(c *Config) { c.Freshness.MaxAge = -time.Hour }, true},
		{"zero max per creator", func(c *Config) { c.Diversity.MaxPerCreator = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigCloneIndependent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []string{"trending"}

	c := cfg.Clone()
	c.Disabled[0] = "other"
	c.Limits.MaxLimit = 1

	if cfg.Disabled[0] != "trending" {
		t.Error("clone shares Disabled slice")
	}
	if cfg.Limits.MaxLimit == 1 {
		t.Error("clone shares Limits")
	}
}

func TestComponentEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []string{"trending", "seen"}

	if cfg.componentEnabled("trending") {
		t.Error("disabled component reported enabled")
	}
	if !cfg.componentEnabled("in_network") {
		t.Error("enabled component reported disabled")
	}
}
