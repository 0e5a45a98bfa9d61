// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package cache provides the page cache backing the feed API: the first
// ranked page per viewer, written fire-and-forget after each pipeline run
// and served read-through on the next request.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/feed"
)

// ErrMiss is returned when no cached page exists for a viewer.
var ErrMiss = errors.New("cache: miss")

// Page is one cached ranked feed page.
type Page struct {
	RequestID  string           `json:"request_id"`
	Viewer     string           `json:"viewer"`
	Candidates []feed.Candidate `json:"candidates"`
	CachedAt   time.Time        `json:"cached_at"`
}

// PageStore stores ranked pages keyed by viewer. Entries expire after the
// TTL the store was created with.
type PageStore interface {
	// Get returns the cached page for a viewer, or ErrMiss.
	Get(ctx context.Context, viewer string) (*Page, error)

	// Set stores the page for a viewer, replacing any previous entry.
	Set(ctx context.Context, viewer string, page *Page) error

	// Delete removes the entry for a viewer. Missing entries are not an
	// error.
	Delete(ctx context.Context, viewer string) error

	// Close releases store resources.
	Close() error
}

// Config contains page cache configuration.
type Config struct {
	// Backend selects the store implementation: "memory" or "badger".
	// Default: memory.
	Backend string `json:"backend" koanf:"backend"`

	// Path is the on-disk location for the badger backend.
	Path string `json:"path" koanf:"path"`

	// TTL is how long a cached page stays valid.
	// Default: 60s.
	TTL time.Duration `json:"ttl" koanf:"ttl"`
}

// DefaultConfig returns page cache defaults.
func DefaultConfig() Config {
	return Config{
		Backend: "memory",
		TTL:     60 * time.Second,
	}
}

// NewPageStore creates the configured store backend.
func NewPageStore(cfg Config, logger zerolog.Logger) (PageStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "badger":
		return NewBadgerStore(cfg.Path, cfg.TTL, logger)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
