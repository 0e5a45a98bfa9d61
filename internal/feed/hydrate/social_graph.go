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

// SocialGraph loads the viewer's follow and block lists. The in-network
// source and the blocked-author filter both depend on this patch.
type SocialGraph struct {
	store store.ContentStore
}

// NewSocialGraph creates a social graph hydrator.
func NewSocialGraph(s store.ContentStore) *SocialGraph {
	return &SocialGraph{store: s}
}

// Name implements feed.QueryHydrator.
func (h *SocialGraph) Name() string { return "social_graph" }

// Enabled implements feed.QueryHydrator.
func (h *SocialGraph) Enabled(q *feed.Query) bool { return q.Viewer != "" }

// Hydrate implements feed.QueryHydrator.
func (h *SocialGraph) Hydrate(ctx context.Context, q *feed.Query) (*feed.QueryPatch, error) {
	follows, err := h.store.FollowedCreators(ctx, q.Viewer)
	if err != nil {
		return nil, fmt.Errorf("followed creators: %w", err)
	}
	blocks, err := h.store.BlockedCreators(ctx, q.Viewer)
	if err != nil {
		return nil, fmt.Errorf("blocked creators: %w", err)
	}

	return &feed.QueryPatch{
		Following: toSet(follows),
		Blocked:   toSet(blocks),
	}, nil
}

func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
