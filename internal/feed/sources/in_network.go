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

// InNetwork retrieves recent posts from creators the viewer follows. It
// relies on the social graph hydrator having populated Query.Following and
// disables itself when the viewer follows nobody.
type InNetwork struct {
	store store.ContentStore
	limit int
}

// NewInNetwork creates an in-network source reading from the content store.
// The limit caps how many posts are retrieved per request.
func NewInNetwork(s store.ContentStore, limit int) *InNetwork {
	return &InNetwork{store: s, limit: limit}
}

// Name implements feed.Source.
func (s *InNetwork) Name() string { return string(feed.SourceInNetwork) }

// Enabled implements feed.Source.
func (s *InNetwork) Enabled(q *feed.Query) bool { return len(q.Following) > 0 }

// Retrieve implements feed.Source.
func (s *InNetwork) Retrieve(ctx context.Context, q *feed.Query) ([]feed.Candidate, error) {
	creators := make([]string, 0, len(q.Following))
	for c := range q.Following {
		creators = append(creators, c)
	}

	posts, err := s.store.PostsByCreators(ctx, creators, s.limit)
	if err != nil {
		return nil, fmt.Errorf("in-network retrieval: %w", err)
	}

	for i := range posts {
		posts[i].Source = feed.SourceInNetwork
	}
	return posts, nil
}
