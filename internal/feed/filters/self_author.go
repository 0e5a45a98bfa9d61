// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package filters

import (
	"context"

	"github.com/solshare/feedpipe/internal/feed"
)

// SelfAuthor removes the viewer's own posts. Creators see their content on
// their profile, not in their home feed.
type SelfAuthor struct{}

// NewSelfAuthor creates a self-author filter.
func NewSelfAuthor() *SelfAuthor { return &SelfAuthor{} }

// Name implements feed.Filter.
func (f *SelfAuthor) Name() string { return "self_author" }

// Enabled implements feed.Filter.
func (f *SelfAuthor) Enabled(q *feed.Query) bool { return q.Viewer != "" }

// Filter implements feed.Filter.
func (f *SelfAuthor) Filter(_ context.Context, q *feed.Query, candidates []feed.Candidate) (feed.FilterResult, error) {
	var res feed.FilterResult
	for _, c := range candidates {
		if c.Creator == q.Viewer {
			res.Removed = append(res.Removed, c)
			continue
		}
		res.Kept = append(res.Kept, c)
	}
	return res, nil
}
