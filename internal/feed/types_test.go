// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package feed

import (
	"testing"
	"time"
)

func TestQueryCloneIsDeep(t *testing.T) {
	q := &Query{
		Viewer:        "v",
		Following:     map[string]struct{}{"alice": {}},
		MutedKeywords: []string{"spoilers"},
	}

	c := q.Clone()
	c.Following["bob"] = struct{}{}
	c.MutedKeywords[0] = "changed"

	if _, ok := q.Following["bob"]; ok {
		t.Error("clone shares Following map with original")
	}
	if q.MutedKeywords[0] != "spoilers" {
		t.Error("clone shares MutedKeywords slice with original")
	}
}

func TestQueryPatchApplyUnionsSets(t *testing.T) {
	q := &Query{Following: map[string]struct{}{"alice": {}}}
	p := &QueryPatch{Following: map[string]struct{}{"bob": {}}}
	p.apply(q)

	for _, want := range []string{"alice", "bob"} {
		if _, ok := q.Following[want]; !ok {
			t.Errorf("Following missing %q", want)
		}
	}
}

func TestQueryPatchApplyScalarOverwrite(t *testing.T) {
	q := &Query{TasteProfile: "old", TasteEmbedding: []float64{1}}

	(&QueryPatch{}).apply(q)
	if q.TasteProfile != "old" {
		t.Error("empty patch overwrote TasteProfile")
	}

	(&QueryPatch{TasteProfile: "new", TasteEmbedding: []float64{2, 3}}).apply(q)
	if q.TasteProfile != "new" {
		t.Errorf("TasteProfile = %q, want %q", q.TasteProfile, "new")
	}
	if len(q.TasteEmbedding) != 2 {
		t.Errorf("TasteEmbedding length = %d, want 2", len(q.TasteEmbedding))
	}
}

func TestCandidateAgeAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := Candidate{CreatedAt: now.Add(-2 * time.Hour)}
	age, ok := c.AgeAt(now)
	if !ok {
		t.Fatal("AgeAt reported unknown age for hydrated candidate")
	}
	if age != 2*time.Hour {
		t.Errorf("age = %v, want 2h", age)
	}

	var bare Candidate
	if _, ok := bare.AgeAt(now); ok {
		t.Error("AgeAt reported known age for zero CreatedAt")
	}
}
