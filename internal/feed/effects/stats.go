// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package effects

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/metrics"
)

// Stats exports per-request serving statistics: how many selected
// candidates came from each source and the final score distribution. It
// runs as a side effect so the measurement cannot slow down the response.
type Stats struct {
	logger zerolog.Logger
}

// NewStats creates the serving statistics side effect.
func NewStats(logger zerolog.Logger) *Stats {
	return &Stats{logger: logger.With().Str("component", "serving_stats").Logger()}
}

// Name implements feed.SideEffect.
func (e *Stats) Name() string { return "serving_stats" }

// Enabled implements feed.SideEffect.
func (e *Stats) Enabled(*feed.Query) bool { return true }

// Run implements feed.SideEffect.
func (e *Stats) Run(_ context.Context, q *feed.Query, selected []feed.Candidate) error {
	if len(selected) == 0 {
		return nil
	}

	bySource := make(map[feed.SourceTag]int)
	var total float64
	for _, c := range selected {
		bySource[c.Source]++
		total += c.FinalScore
		metrics.SelectedFinalScore.Observe(c.FinalScore)
	}

	ev := e.logger.Debug().
		Str("request_id", q.RequestID).
		Str("viewer", q.Viewer).
		Int("selected", len(selected)).
		Float64("mean_score", total/float64(len(selected)))
	for src, n := range bySource {
		ev = ev.Int("from_"+string(src), n)
	}
	ev.Msg("page served")
	return nil
}
