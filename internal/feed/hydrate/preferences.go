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

// TasteProvider resolves a viewer to their taste embedding and a profile
// label. Implemented by the engagement service client; nil disables
// embedding hydration and with it out-of-network discovery.
type TasteProvider interface {
	TasteEmbedding(ctx context.Context, viewer string) (embedding []float64, profile string, err error)
}

// Preferences loads the viewer's muted keywords and taste embedding. The
// muted-keyword filter and the out-of-network source depend on this patch.
type Preferences struct {
	store store.ContentStore
	taste TasteProvider
}

// NewPreferences creates a preferences hydrator. taste may be nil.
func NewPreferences(s store.ContentStore, taste TasteProvider) *Preferences {
	return &Preferences{store: s, taste: taste}
}

// Name implements feed.QueryHydrator.
func (h *Preferences) Name() string { return "preferences" }

// Enabled implements feed.QueryHydrator.
func (h *Preferences) Enabled(q *feed.Query) bool { return q.Viewer != "" }

// Hydrate implements feed.QueryHydrator.
func (h *Preferences) Hydrate(ctx context.Context, q *feed.Query) (*feed.QueryPatch, error) {
	keywords, err := h.store.MutedKeywords(ctx, q.Viewer)
	if err != nil {
		return nil, fmt.Errorf("muted keywords: %w", err)
	}

	patch := &feed.QueryPatch{MutedKeywords: keywords}

	// A missing embedding only costs out-of-network discovery, so it does
	// not fail the whole patch.
	if h.taste != nil {
		embedding, profile, err := h.taste.TasteEmbedding(ctx, q.Viewer)
		if err == nil {
			patch.TasteEmbedding = embedding
			patch.TasteProfile = profile
		}
	}
	return patch, nil
}
