// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package effects

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/cache"
	"github.com/solshare/feedpipe/internal/feed"
)

func TestPageCacheWritesFirstPage(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	e := NewPageCache(store)

	q := &feed.Query{RequestID: "r1", Viewer: "v"}
	if !e.Enabled(q) {
		t.Fatal("disabled for first-page request")
	}

	selected := []feed.Candidate{{ID: "p1", FinalScore: 0.8}}
	if err := e.Run(context.Background(), q, selected); err != nil {
		t.Fatalf("Run: %v", err)
	}

	page, err := store.Get(context.Background(), "v")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if page.RequestID != "r1" || len(page.Candidates) != 1 {
		t.Errorf("cached page = %+v", page)
	}
}

func TestPageCacheSkipsPaginatedRequests(t *testing.T) {
	e := NewPageCache(cache.NewMemoryStore(time.Minute))

	if e.Enabled(&feed.Query{Viewer: "v", Cursor: "page2"}) {
		t.Error("enabled for paginated request")
	}
	if e.Enabled(&feed.Query{}) {
		t.Error("enabled without viewer")
	}
}

func TestStatsRun(t *testing.T) {
	e := NewStats(zerolog.Nop())
	q := &feed.Query{RequestID: "r1", Viewer: "v"}

	selected := []feed.Candidate{
		{ID: "a", Source: feed.SourceInNetwork, FinalScore: 1.0},
		{ID: "b", Source: feed.SourceTrending, FinalScore: 0.5},
	}
	if err := e.Run(context.Background(), q, selected); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Empty pages are a no-op, not an error.
	if err := e.Run(context.Background(), q, nil); err != nil {
		t.Fatalf("Run with empty selection: %v", err)
	}
}
