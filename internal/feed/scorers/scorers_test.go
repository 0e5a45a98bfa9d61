// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package scorers

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/feed"
)

type fakePredictor struct {
	preds []map[string]float64
	err   error
}

func (p *fakePredictor) Predict(_ context.Context, _ string, _ []feed.Candidate) ([]map[string]float64, error) {
	return p.preds, p.err
}

type fakeWeights struct {
	weights map[string]float64
	err     error
}

func (w *fakeWeights) Weights(context.Context) (map[string]float64, error) {
	return w.weights, w.err
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEngagementAttachesScores(t *testing.T) {
	p := &fakePredictor{preds: []map[string]float64{
		{"like": 0.8, "tip": 0.1},
		{"like": 0.2},
	}}
	s := NewEngagement(p, zerolog.Nop())

	in := []feed.Candidate{{ID: "a"}, {ID: "b"}}
	out, err := s.Score(context.Background(), &feed.Query{Viewer: "v"}, in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d candidates, want 2", len(out))
	}
	if !almostEqual(out[0].Scores["like"], 0.8) {
		t.Errorf("like score = %v, want 0.8", out[0].Scores["like"])
	}
	if in[0].Scores != nil {
		t.Error("input candidates mutated")
	}
}

func TestEngagementDegradesToZeroOnFailure(t *testing.T) {
	s := NewEngagement(&fakePredictor{err: errors.New("model down")}, zerolog.Nop())

	out, err := s.Score(context.Background(), &feed.Query{}, []feed.Candidate{{ID: "a"}})
	if err != nil {
		t.Fatalf("Score returned error, want degraded success: %v", err)
	}
	if out[0].Scores == nil || len(out[0].Scores) != 0 {
		t.Errorf("Scores = %v, want empty map", out[0].Scores)
	}
}

func TestEngagementDegradesOnCardinalityMismatch(t *testing.T) {
	p := &fakePredictor{preds: []map[string]float64{{"like": 0.5}}}
	s := NewEngagement(p, zerolog.Nop())

	out, err := s.Score(context.Background(), &feed.Query{}, []feed.Candidate{{ID: "a"}, {ID: "b"}})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for _, c := range out {
		if len(c.Scores) != 0 {
			t.Errorf("candidate %s Scores = %v, want empty", c.ID, c.Scores)
		}
	}
}

func TestWeightedSumsWeightTimesProbability(t *testing.T) {
	s := NewWeighted(&fakeWeights{weights: map[string]float64{
		"like":   1.0,
		"tip":    3.0,
		"report": -10.0,
	}})

	in := []feed.Candidate{
		{ID: "good", Scores: map[string]float64{"like": 0.5, "tip": 0.2}},
		{ID: "bad", Scores: map[string]float64{"like": 0.5, "report": 0.3}},
		{ID: "unscored"},
	}

	out, err := s.Score(context.Background(), &feed.Query{}, in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !almostEqual(out[0].FinalScore, 0.5+0.6) {
		t.Errorf("good score = %v, want 1.1", out[0].FinalScore)
	}
	if !almostEqual(out[1].FinalScore, 0.5-3.0) {
		t.Errorf("bad score = %v, want -2.5", out[1].FinalScore)
	}
	if out[2].FinalScore != 0 {
		t.Errorf("unscored score = %v, want 0", out[2].FinalScore)
	}
}

func TestWeightedPropagatesWeightError(t *testing.T) {
	s := NewWeighted(&fakeWeights{err: errors.New("unavailable")})
	if _, err := s.Score(context.Background(), &feed.Query{}, []feed.Candidate{{ID: "a"}}); err == nil {
		t.Error("expected error when weights are unavailable")
	}
}

func TestFreshnessHalvesScorePerHalfLife(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewFreshness(feed.FreshnessConfig{HalfLife: 24 * time.Hour})
	s.now = func() time.Time { return now }

	in := []feed.Candidate{
		{ID: "new", CreatedAt: now, FinalScore: 1.0},
		{ID: "one_half_life", CreatedAt: now.Add(-24 * time.Hour), FinalScore: 1.0},
		{ID: "two_half_lives", CreatedAt: now.Add(-48 * time.Hour), FinalScore: 1.0},
		{ID: "no_timestamp", FinalScore: 1.0},
	}

	out, err := s.Score(context.Background(), &feed.Query{}, in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !almostEqual(out[0].FinalScore, 1.0) {
		t.Errorf("new score = %v, want 1.0", out[0].FinalScore)
	}
	if !almostEqual(out[1].FinalScore, 0.5) {
		t.Errorf("one half-life score = %v, want 0.5", out[1].FinalScore)
	}
	if !almostEqual(out[2].FinalScore, 0.25) {
		t.Errorf("two half-lives score = %v, want 0.25", out[2].FinalScore)
	}
	if !almostEqual(out[3].FinalScore, 1.0) {
		t.Errorf("no-timestamp score = %v, want 1.0", out[3].FinalScore)
	}
}

func TestInNetworkBonus(t *testing.T) {
	s := NewInNetwork(feed.BoostConfig{InNetworkBonus: 0.5})
	q := &feed.Query{Following: map[string]struct{}{"friend": {}}}

	in := []feed.Candidate{
		{ID: "tagged", Source: feed.SourceInNetwork, FinalScore: 1.0},
		{ID: "followed", Source: feed.SourceTrending, Creator: "friend", FinalScore: 1.0},
		{ID: "stranger", Source: feed.SourceOutOfNetwork, Creator: "other", FinalScore: 1.0},
	}

	out, err := s.Score(context.Background(), q, in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !almostEqual(out[0].FinalScore, 1.5) {
		t.Errorf("tagged score = %v, want 1.5", out[0].FinalScore)
	}
	if !almostEqual(out[1].FinalScore, 1.5) {
		t.Errorf("followed score = %v, want 1.5", out[1].FinalScore)
	}
	if !almostEqual(out[2].FinalScore, 1.0) {
		t.Errorf("stranger score = %v, want 1.0", out[2].FinalScore)
	}
}

func TestScorersPreserveCardinality(t *testing.T) {
	q := &feed.Query{}
	in := []feed.Candidate{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	all := []feed.Scorer{
		NewEngagement(&fakePredictor{err: errors.New("down")}, zerolog.Nop()),
		NewWeighted(&fakeWeights{weights: map[string]float64{}}),
		NewFreshness(feed.FreshnessConfig{HalfLife: time.Hour}),
		NewInNetwork(feed.BoostConfig{InNetworkBonus: 0.1}),
	}
	for _, s := range all {
		t.Run(s.Name(), func(t *testing.T) {
			out, err := s.Score(context.Background(), q, in)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if len(out) != len(in) {
				t.Errorf("got %d candidates, want %d", len(out), len(in))
			}
		})
	}
}
