// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package sources

import (
	"context"
	"fmt"

	"github.com/solshare/feedpipe/internal/feed"
)

// Retriever resolves a viewer's taste embedding to similar post IDs.
// Implemented by the engagement service client over its two-tower
// retrieval endpoint.
type Retriever interface {
	Retrieve(ctx context.Context, viewer string, embedding []float64, limit int) ([]string, error)
}

// PostLookup resolves post IDs to full candidates. Implemented by the
// content store.
type PostLookup interface {
	PostsByIDs(ctx context.Context, ids []string) ([]feed.Candidate, error)
}

// OutOfNetwork discovers posts outside the viewer's social graph using
// embedding similarity. It needs a taste embedding from the preferences
// hydrator and disables itself when none is available.
type OutOfNetwork struct {
	retriever Retriever
	lookup    PostLookup
	limit     int
}

// NewOutOfNetwork creates an out-of-network discovery source.
func NewOutOfNetwork(r Retriever, lookup PostLookup, limit int) *OutOfNetwork {
	return &OutOfNetwork{retriever: r, lookup: lookup, limit: limit}
}

// Name implements feed.Source.
func (s *OutOfNetwork) Name() string { return string(feed.SourceOutOfNetwork) }

// Enabled implements feed.Source.
func (s *OutOfNetwork) Enabled(q *feed.Query) bool { return len(q.TasteEmbedding) > 0 }

// Retrieve implements feed.Source.
func (s *OutOfNetwork) Retrieve(ctx context.Context, q *feed.Query) ([]feed.Candidate, error) {
	ids, err := s.retriever.Retrieve(ctx, q.Viewer, q.TasteEmbedding, s.limit)
	if err != nil {
		return nil, fmt.Errorf("out-of-network retrieval: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	posts, err := s.lookup.PostsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("out-of-network lookup: %w", err)
	}

	for i := range posts {
		posts[i].Source = feed.SourceOutOfNetwork
	}
	return posts, nil
}
