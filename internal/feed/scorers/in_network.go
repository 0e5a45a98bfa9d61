// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package scorers

import (
	"context"

	"github.com/solshare/feedpipe/internal/feed"
)

// InNetwork adds a flat bonus to posts from creators the viewer follows, so
// the feed favors the social graph over pure engagement prediction.
type InNetwork struct {
	bonus float64
}

// NewInNetwork creates an in-network bonus scorer from configuration.
func NewInNetwork(cfg feed.BoostConfig) *InNetwork {
	return &InNetwork{bonus: cfg.InNetworkBonus}
}

// Name implements feed.Scorer.
func (s *InNetwork) Name() string { return "in_network_bonus" }

// Enabled implements feed.Scorer.
func (s *InNetwork) Enabled(*feed.Query) bool { return s.bonus != 0 }

// Score implements feed.Scorer.
func (s *InNetwork) Score(_ context.Context, q *feed.Query, candidates []feed.Candidate) ([]feed.Candidate, error) {
	out := append([]feed.Candidate(nil), candidates...)
	for i := range out {
		if s.inNetwork(q, &out[i]) {
			out[i].FinalScore += s.bonus
		}
	}
	return out, nil
}

func (s *InNetwork) inNetwork(q *feed.Query, c *feed.Candidate) bool {
	if c.Source == feed.SourceInNetwork {
		return true
	}
	_, followed := q.Following[c.Creator]
	return followed
}
