// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package filters

import (
	"context"

	"github.com/solshare/feedpipe/internal/feed"
)

// BlockedAuthor removes posts from creators the viewer has blocked or
// muted. It activates only when query hydration produced a block list.
type BlockedAuthor struct{}

// NewBlockedAuthor creates a blocked-author filter.
func NewBlockedAuthor() *BlockedAuthor { return &BlockedAuthor{} }

// Name implements feed.Filter.
func (f *BlockedAuthor) Name() string { return "blocked_author" }

// Enabled implements feed.Filter.
func (f *BlockedAuthor) Enabled(q *feed.Query) bool { return len(q.Blocked) > 0 }

// Filter implements feed.Filter.
func (f *BlockedAuthor) Filter(_ context.Context, q *feed.Query, candidates []feed.Candidate) (feed.FilterResult, error) {
	var res feed.FilterResult
	for _, c := range candidates {
		if _, blocked := q.Blocked[c.Creator]; blocked {
			res.Removed = append(res.Removed, c)
			continue
		}
		res.Kept = append(res.Kept, c)
	}
	return res, nil
}
