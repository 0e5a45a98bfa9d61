// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package filters

import (
	"context"

	"github.com/solshare/feedpipe/internal/feed"
)

// Dedup removes duplicate candidates by post ID, keeping the first
// occurrence. Sources overlap (a followed creator can also be trending), so
// this runs before any per-candidate filter.
type Dedup struct{}

// NewDedup creates a deduplication filter.
func NewDedup() *Dedup { return &Dedup{} }

// Name implements feed.Filter.
func (f *Dedup) Name() string { return "dedup" }

// Enabled implements feed.Filter.
func (f *Dedup) Enabled(*feed.Query) bool { return true }

// Filter implements feed.Filter.
func (f *Dedup) Filter(_ context.Context, _ *feed.Query, candidates []feed.Candidate) (feed.FilterResult, error) {
	seen := make(map[string]struct{}, len(candidates))
	var res feed.FilterResult
	for _, c := range candidates {
		if _, dup := seen[c.ID]; dup {
			res.Removed = append(res.Removed, c)
			continue
		}
		seen[c.ID] = struct{}{}
		res.Kept = append(res.Kept, c)
	}
	return res, nil
}
