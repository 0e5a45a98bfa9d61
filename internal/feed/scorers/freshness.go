// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package scorers

import (
	"context"
	"math"
	"time"

	"github.com/solshare/feedpipe/internal/feed"
)

// Freshness decays final scores exponentially by post age. A post one
// half-life old keeps half its score, two half-lives a quarter, and so on.
// Candidates without a timestamp keep their full score.
type Freshness struct {
	halfLife time.Duration
	now      func() time.Time
}

// NewFreshness creates a freshness decay scorer from configuration.
func NewFreshness(cfg feed.FreshnessConfig) *Freshness {
	return &Freshness{halfLife: cfg.HalfLife, now: time.Now}
}

// Name implements feed.Scorer.
func (s *Freshness) Name() string { return "freshness" }

// Enabled implements feed.Scorer.
func (s *Freshness) Enabled(*feed.Query) bool { return s.halfLife > 0 }

// Score implements feed.Scorer.
func (s *Freshness) Score(_ context.Context, _ *feed.Query, candidates []feed.Candidate) ([]feed.Candidate, error) {
	now := s.now()
	out := append([]feed.Candidate(nil), candidates...)
	for i := range out {
		age, known := out[i].AgeAt(now)
		if !known || age <= 0 {
			continue
		}
		decay := math.Exp(-math.Ln2 * age.Hours() / s.halfLife.Hours())
		out[i].FinalScore *= decay
	}
	return out, nil
}
