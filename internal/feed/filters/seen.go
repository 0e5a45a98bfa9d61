// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package filters

import (
	"context"

	"github.com/solshare/feedpipe/internal/feed"
)

// Seen removes posts the viewer has already been shown. It activates only
// when query hydration produced impression history.
type Seen struct{}

// NewSeen creates a seen-post filter.
func NewSeen() *Seen { return &Seen{} }

// Name implements feed.Filter.
func (f *Seen) Name() string { return "seen" }

// Enabled implements feed.Filter.
func (f *Seen) Enabled(q *feed.Query) bool { return len(q.Seen) > 0 }

// Filter implements feed.Filter.
func (f *Seen) Filter(_ context.Context, q *feed.Query, candidates []feed.Candidate) (feed.FilterResult, error) {
	var res feed.FilterResult
	for _, c := range candidates {
		if _, seen := q.Seen[c.ID]; seen {
			res.Removed = append(res.Removed, c)
			continue
		}
		res.Kept = append(res.Kept, c)
	}
	return res, nil
}
