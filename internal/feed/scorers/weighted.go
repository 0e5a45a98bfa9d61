// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package scorers

import (
	"context"

	"github.com/solshare/feedpipe/internal/feed"
)

// WeightProvider supplies per-action ranking weights. Implemented by the
// engagement service client, which falls back to a static table when the
// service cannot be reached.
type WeightProvider interface {
	Weights(ctx context.Context) (map[string]float64, error)
}

// Weighted collapses per-action probabilities into a final score: the sum
// of weight times probability over every predicted action. Negative weights
// (mute, report) push a candidate down the ranking.
type Weighted struct {
	weights WeightProvider
}

// NewWeighted creates a weighted-sum scorer.
func NewWeighted(w WeightProvider) *Weighted {
	return &Weighted{weights: w}
}

// Name implements feed.Scorer.
func (s *Weighted) Name() string { return "weighted" }

// Enabled implements feed.Scorer.
func (s *Weighted) Enabled(*feed.Query) bool { return s.weights != nil }

// Score implements feed.Scorer.
func (s *Weighted) Score(ctx context.Context, _ *feed.Query, candidates []feed.Candidate) ([]feed.Candidate, error) {
	weights, err := s.weights.Weights(ctx)
	if err != nil {
		return nil, err
	}

	out := append([]feed.Candidate(nil), candidates...)
	for i := range out {
		var total float64
		for action, p := range out[i].Scores {
			total += weights[action] * p
		}
		out[i].FinalScore = total
	}
	return out, nil
}
