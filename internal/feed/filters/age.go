// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package filters

import (
	"context"
	"time"

	"github.com/solshare/feedpipe/internal/feed"
)

// Age removes candidates older than a configured threshold. Candidates with
// no timestamp (hydration failed or not yet run) are kept rather than
// guessed at.
type Age struct {
	maxAge time.Duration
	now    func() time.Time
}

// NewAge creates an age filter from freshness configuration.
func NewAge(cfg feed.FreshnessConfig) *Age {
	return &Age{maxAge: cfg.MaxAge, now: time.Now}
}

// Name implements feed.Filter.
func (f *Age) Name() string { return "age" }

// Enabled implements feed.Filter.
func (f *Age) Enabled(*feed.Query) bool { return f.maxAge > 0 }

// Filter implements feed.Filter.
func (f *Age) Filter(_ context.Context, _ *feed.Query, candidates []feed.Candidate) (feed.FilterResult, error) {
	now := f.now()
	var res feed.FilterResult
	for _, c := range candidates {
		age, known := c.AgeAt(now)
		if known && age > f.maxAge {
			res.Removed = append(res.Removed, c)
			continue
		}
		res.Kept = append(res.Kept, c)
	}
	return res, nil
}
