// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package filters

import (
	"context"

	"github.com/solshare/feedpipe/internal/feed"
)

// AuthorDiversity caps how many posts a single creator can occupy in the
// selected page. It runs after selection, so the input is already ranked
// and overflow is dropped from the bottom of each creator's run.
type AuthorDiversity struct {
	maxPerCreator int
}

// NewAuthorDiversity creates a diversity filter from configuration.
func NewAuthorDiversity(cfg feed.DiversityConfig) *AuthorDiversity {
	return &AuthorDiversity{maxPerCreator: cfg.MaxPerCreator}
}

// Name implements feed.Filter.
func (f *AuthorDiversity) Name() string { return "author_diversity" }

// Enabled implements feed.Filter.
func (f *AuthorDiversity) Enabled(*feed.Query) bool { return f.maxPerCreator > 0 }

// Filter implements feed.Filter.
func (f *AuthorDiversity) Filter(_ context.Context, _ *feed.Query, candidates []feed.Candidate) (feed.FilterResult, error) {
	counts := make(map[string]int)
	var res feed.FilterResult
	for _, c := range candidates {
		if counts[c.Creator] >= f.maxPerCreator {
			res.Removed = append(res.Removed, c)
			continue
		}
		counts[c.Creator]++
		res.Kept = append(res.Kept, c)
	}
	return res, nil
}
