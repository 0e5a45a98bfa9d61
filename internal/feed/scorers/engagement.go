// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package scorers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/feed"
)

// Predictor produces per-action engagement probabilities for candidates,
// keyed by action name. Implemented by the engagement service client.
type Predictor interface {
	Predict(ctx context.Context, viewer string, candidates []feed.Candidate) ([]map[string]float64, error)
}

// Engagement attaches per-action engagement probabilities to each
// candidate. When the prediction backend is unavailable the scorer degrades
// to zero probabilities instead of failing, so downstream scorers (and the
// freshness decay in particular) still produce a usable ordering.
type Engagement struct {
	predictor Predictor
	logger    zerolog.Logger
}

// NewEngagement creates an engagement scorer backed by the given predictor.
func NewEngagement(p Predictor, logger zerolog.Logger) *Engagement {
	return &Engagement{
		predictor: p,
		logger:    logger.With().Str("component", "engagement_scorer").Logger(),
	}
}

// Name implements feed.Scorer.
func (s *Engagement) Name() string { return "engagement" }

// Enabled implements feed.Scorer.
func (s *Engagement) Enabled(*feed.Query) bool { return s.predictor != nil }

// Score implements feed.Scorer.
func (s *Engagement) Score(ctx context.Context, q *feed.Query, candidates []feed.Candidate) ([]feed.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	out := append([]feed.Candidate(nil), candidates...)

	preds, err := s.predictor.Predict(ctx, q.Viewer, candidates)
	if err != nil || len(preds) != len(candidates) {
		s.logger.Warn().
			Err(err).
			Int("candidates", len(candidates)).
			Msg("prediction unavailable, degrading to zero scores")
		for i := range out {
			out[i].Scores = map[string]float64{}
		}
		return out, nil
	}

	for i := range out {
		out[i].Scores = preds[i]
		if out[i].Scores == nil {
			out[i].Scores = map[string]float64{}
		}
	}
	return out, nil
}
