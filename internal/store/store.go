// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package store defines the read interface over platform content and
// viewer state that sources and hydrators consume.
package store

import (
	"context"

	"github.com/solshare/feedpipe/internal/feed"
)

// ContentStore is the read surface over posts and viewer relationships.
// Methods return candidates with content fields populated; the caller is
// responsible for tagging provenance.
type ContentStore interface {
	// PostsByCreators returns recent posts from the given creators, newest
	// first, up to limit.
	PostsByCreators(ctx context.Context, creators []string, limit int) ([]feed.Candidate, error)

	// PostsByIDs returns the posts with the given IDs. Unknown IDs are
	// omitted from the result.
	PostsByIDs(ctx context.Context, ids []string) ([]feed.Candidate, error)

	// TrendingPosts returns globally popular recent posts, most popular
	// first, up to limit.
	TrendingPosts(ctx context.Context, limit int) ([]feed.Candidate, error)

	// FollowedCreators returns the creators the viewer follows.
	FollowedCreators(ctx context.Context, viewer string) ([]string, error)

	// BlockedCreators returns the creators the viewer has blocked or muted.
	BlockedCreators(ctx context.Context, viewer string) ([]string, error)

	// LikedPostIDs returns the IDs of posts the viewer has liked.
	LikedPostIDs(ctx context.Context, viewer string) ([]string, error)

	// SeenPostIDs returns the IDs of posts recently shown to the viewer.
	SeenPostIDs(ctx context.Context, viewer string) ([]string, error)

	// MutedKeywords returns the viewer's muted keywords.
	MutedKeywords(ctx context.Context, viewer string) ([]string, error)
}
