// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package sources

import (
	"context"
	"fmt"

	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/store"
)

// Trending retrieves globally popular posts. Trending shifts between page
// loads, which would shuffle paginated sessions, so the source only runs on
// the first page of a session (no cursor).
type Trending struct {
	store store.ContentStore
	limit int
}

// NewTrending creates a trending source reading from the content store.
func NewTrending(s store.ContentStore, limit int) *Trending {
	return &Trending{store: s, limit: limit}
}

// Name implements feed.Source.
func (s *Trending) Name() string { return string(feed.SourceTrending) }

// Enabled implements feed.Source.
func (s *Trending) Enabled(q *feed.Query) bool { return q.Cursor == "" }

// Retrieve implements feed.Source.
func (s *Trending) Retrieve(ctx context.Context, _ *feed.Query) ([]feed.Candidate, error) {
	posts, err := s.store.TrendingPosts(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("trending retrieval: %w", err)
	}

	for i := range posts {
		posts[i].Source = feed.SourceTrending
	}
	return posts, nil
}
