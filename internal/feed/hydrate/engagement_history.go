// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package hydrate

import (
	"context"
	"fmt"

	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/store"
)

// EngagementHistory loads the posts the viewer has liked and recently been
// shown. The seen filter depends on this patch.
type EngagementHistory struct {
	store store.ContentStore
}

// NewEngagementHistory creates an engagement history hydrator.
func NewEngagementHistory(s store.ContentStore) *EngagementHistory {
	return &EngagementHistory{store: s}
}

// Name implements feed.QueryHydrator.
func (h *EngagementHistory) Name() string { return "engagement_history" }

// Enabled implements feed.QueryHydrator.
func (h *EngagementHistory) Enabled(q *feed.Query) bool { return q.Viewer != "" }

// Hydrate implements feed.QueryHydrator.
func (h *EngagementHistory) Hydrate(ctx context.Context, q *feed.Query) (*feed.QueryPatch, error) {
	liked, err := h.store.LikedPostIDs(ctx, q.Viewer)
	if err != nil {
		return nil, fmt.Errorf("liked posts: %w", err)
	}
	seen, err := h.store.SeenPostIDs(ctx, q.Viewer)
	if err != nil {
		return nil, fmt.Errorf("seen posts: %w", err)
	}

	return &feed.QueryPatch{
		Liked: toSet(liked),
		Seen:  toSet(seen),
	}, nil
}
