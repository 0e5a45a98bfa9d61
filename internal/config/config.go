// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package config loads the service configuration with layered sources:
// built-in defaults, then an optional YAML file, then FEEDPIPE_ prefixed
// environment variables. ENV > file > defaults.
package config

import (
	"fmt"
	"time"

	"github.com/solshare/feedpipe/internal/cache"
	"github.com/solshare/feedpipe/internal/engagement"
	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/logging"
)

// Config is the full service configuration.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `json:"server" koanf:"server"`

	// Logging contains log output settings.
	Logging logging.Config `json:"logging" koanf:"logging"`

	// Pipeline contains ranking pipeline settings.
	Pipeline feed.Config `json:"pipeline" koanf:"pipeline"`

	// Engagement contains engagement service client settings.
	Engagement engagement.Config `json:"engagement" koanf:"engagement"`

	// Cache contains page cache settings.
	Cache cache.Config `json:"cache" koanf:"cache"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	// Default: 0.0.0.0.
	Host string `json:"host" koanf:"host"`

	// Port is the listen port.
	// Default: 8080.
	Port int `json:"port" koanf:"port"`

	// Timeout bounds request handling end to end.
	// Default: 30s.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 15s.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" koanf:"shutdown_timeout"`

	// RateLimitReqs is the allowed requests per client per window.
	// Default: 120.
	RateLimitReqs int `json:"rate_limit_reqs" koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window.
	// Default: 1m.
	RateLimitWindow time.Duration `json:"rate_limit_window" koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins.
	// Default: ["*"].
	CORSOrigins []string `json:"cors_origins" koanf:"cors_origins"`
}

// defaultConfig returns a Config with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging:    logging.DefaultConfig(),
		Pipeline:   *feed.DefaultConfig(),
		Engagement: engagement.DefaultConfig(),
		Cache:      cache.DefaultConfig(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("server.rate_limit_reqs must be positive, got %d", c.Server.RateLimitReqs)
	}
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if c.Engagement.Timeout <= 0 {
		return fmt.Errorf("engagement.timeout must be positive, got %v", c.Engagement.Timeout)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}
	return nil
}
