// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package filters

import (
	"context"
	"testing"
	"time"

	"github.com/solshare/feedpipe/internal/feed"
)

func checkPartition(t *testing.T, in []feed.Candidate, res feed.FilterResult) {
	t.Helper()
	if len(res.Kept)+len(res.Removed) != len(in) {
		t.Fatalf("not a partition: %d kept + %d removed != %d input",
			len(res.Kept), len(res.Removed), len(in))
	}
}

func keptIDs(res feed.FilterResult) []string {
	out := make([]string, len(res.Kept))
	for i, c := range res.Kept {
		out[i] = c.ID
	}
	return out
}

func wantIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("kept %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kept %v, want %v", got, want)
		}
	}
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	in := []feed.Candidate{
		{ID: "a", Source: feed.SourceInNetwork},
		{ID: "b"},
		{ID: "a", Source: feed.SourceTrending},
		{ID: "b"},
	}

	res, err := NewDedup().Filter(context.Background(), &feed.Query{}, in)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	checkPartition(t, in, res)
	wantIDs(t, keptIDs(res), []string{"a", "b"})

	// First occurrence wins, so the in-network copy survives.
	if res.Kept[0].Source != feed.SourceInNetwork {
		t.Errorf("kept source = %s, want %s", res.Kept[0].Source, feed.SourceInNetwork)
	}
}

func TestAgeRemovesOldKeepsUnknown(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := NewAge(feed.FreshnessConfig{MaxAge: 24 * time.Hour})
	f.now = func() time.Time { return now }

	in := []feed.Candidate{
		{ID: "fresh", CreatedAt: now.Add(-time.Hour)},
		{ID: "stale", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "unknown"}, // never hydrated, kept
	}

	res, err := f.Filter(context.Background(), &feed.Query{}, in)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	checkPartition(t, in, res)
	wantIDs(t, keptIDs(res), []string{"fresh", "unknown"})
}

func TestSelfAuthor(t *testing.T) {
	q := &feed.Query{Viewer: "me"}
	in := []feed.Candidate{
		{ID: "mine", Creator: "me"},
		{ID: "theirs", Creator: "other"},
	}

	res, err := NewSelfAuthor().Filter(context.Background(), q, in)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	checkPartition(t, in, res)
	wantIDs(t, keptIDs(res), []string{"theirs"})
}

func TestBlockedAuthor(t *testing.T) {
	q := &feed.Query{Blocked: map[string]struct{}{"spammer": {}}}
	in := []feed.Candidate{
		{ID: "ok", Creator: "friend"},
		{ID: "spam", Creator: "spammer"},
	}

	f := NewBlockedAuthor()
	if !f.Enabled(q) {
		t.Fatal("filter disabled with non-empty block list")
	}
	if f.Enabled(&feed.Query{}) {
		t.Fatal("filter enabled with empty block list")
	}

	res, err := f.Filter(context.Background(), q, in)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	checkPartition(t, in, res)
	wantIDs(t, keptIDs(res), []string{"ok"})
}

func TestSeen(t *testing.T) {
	q := &feed.Query{Seen: map[string]struct{}{"old": {}}}
	in := []feed.Candidate{
		{ID: "old"},
		{ID: "new"},
	}

	f := NewSeen()
	if f.Enabled(&feed.Query{}) {
		t.Fatal("filter enabled with empty impression history")
	}

	res, err := f.Filter(context.Background(), q, in)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	checkPartition(t, in, res)
	wantIDs(t, keptIDs(res), []string{"new"})
}

func TestMutedKeyword(t *testing.T) {
	q := &feed.Query{MutedKeywords: []string{"Spoilers", " crypto "}}
	in := []feed.Candidate{
		{ID: "caption_hit", Caption: "major SPOILERS ahead"},
		{ID: "desc_hit", Description: "my crypto journey"},
		{ID: "tag_hit", Tags: []string{"live", "spoilers"}},
		{ID: "clean", Caption: "sunset timelapse"},
	}

	f := NewMutedKeyword()
	if f.Enabled(&feed.Query{}) {
		t.Fatal("filter enabled with no muted keywords")
	}

	res, err := f.Filter(context.Background(), q, in)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	checkPartition(t, in, res)
	wantIDs(t, keptIDs(res), []string{"clean"})
}

func TestAuthorDiversity(t *testing.T) {
	f := NewAuthorDiversity(feed.DiversityConfig{MaxPerCreator: 2})
	in := []feed.Candidate{
		{ID: "a1", Creator: "a"},
		{ID: "b1", Creator: "b"},
		{ID: "a2", Creator: "a"},
		{ID: "a3", Creator: "a"}, // third from creator a, dropped
		{ID: "b2", Creator: "b"},
	}

	res, err := f.Filter(context.Background(), &feed.Query{}, in)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	checkPartition(t, in, res)
	wantIDs(t, keptIDs(res), []string{"a1", "b1", "a2", "b2"})
}

func TestFiltersEmptyInput(t *testing.T) {
	q := &feed.Query{Viewer: "me", Blocked: map[string]struct{}{"x": {}}}
	all := []feed.Filter{
		NewDedup(),
		NewAge(feed.FreshnessConfig{MaxAge: time.Hour}),
		NewSelfAuthor(),
		NewBlockedAuthor(),
		NewSeen(),
		NewMutedKeyword(),
		NewAuthorDiversity(feed.DiversityConfig{MaxPerCreator: 1}),
	}
	for _, f := range all {
		t.Run(f.Name(), func(t *testing.T) {
			res, err := f.Filter(context.Background(), q, nil)
			if err != nil {
				t.Fatalf("Filter: %v", err)
			}
			if len(res.Kept) != 0 || len(res.Removed) != 0 {
				t.Errorf("non-empty result for empty input")
			}
		})
	}
}
