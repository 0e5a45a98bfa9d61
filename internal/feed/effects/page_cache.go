// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package effects provides the fire-and-forget side effects of the feed
// pipeline. Effects run detached from the request: their failures are
// logged and counted but never surface to the viewer.
package effects

import (
	"context"
	"fmt"
	"time"

	"github.com/solshare/feedpipe/internal/cache"
	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/metrics"
)

// PageCache writes the selected page to the page cache so the next
// first-page request for the viewer can skip the pipeline. Paginated
// requests are not cached; only the first page is worth reusing.
type PageCache struct {
	store cache.PageStore
}

// NewPageCache creates the page cache side effect.
func NewPageCache(store cache.PageStore) *PageCache {
	return &PageCache{store: store}
}

// Name implements feed.SideEffect.
func (e *PageCache) Name() string { return "page_cache" }

// Enabled implements feed.SideEffect.
func (e *PageCache) Enabled(q *feed.Query) bool {
	return e.store != nil && q.Cursor == "" && q.Viewer != ""
}

// Run implements feed.SideEffect.
func (e *PageCache) Run(ctx context.Context, q *feed.Query, selected []feed.Candidate) error {
	page := &cache.Page{
		RequestID:  q.RequestID,
		Viewer:     q.Viewer,
		Candidates: selected,
		CachedAt:   time.Now().UTC(),
	}
	if err := e.store.Set(ctx, q.Viewer, page); err != nil {
		return fmt.Errorf("cache page for %s: %w", q.Viewer, err)
	}
	metrics.PageCacheWrites.Inc()
	return nil
}
