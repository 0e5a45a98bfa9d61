// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package hydrate

import (
	"context"
	"fmt"

	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/store"
)

// CandidateCore backfills content fields on candidates that arrived as
// bare IDs, identified by a zero CreatedAt. Sources that read from the
// content store return fully populated candidates and are left alone;
// retrieval-only sources return IDs that need a lookup.
type CandidateCore struct {
	store store.ContentStore
}

// NewCandidateCore creates the core candidate hydrator.
func NewCandidateCore(s store.ContentStore) *CandidateCore {
	return &CandidateCore{store: s}
}

// Name implements feed.CandidateHydrator.
func (h *CandidateCore) Name() string { return "candidate_core" }

// Enabled implements feed.CandidateHydrator.
func (h *CandidateCore) Enabled(*feed.Query) bool { return true }

// Hydrate implements feed.CandidateHydrator. The output always has the
// same length and order as the input; candidates the store does not know
// pass through unhydrated and are left for the age filter to judge.
func (h *CandidateCore) Hydrate(ctx context.Context, _ *feed.Query, candidates []feed.Candidate) ([]feed.Candidate, error) {
	var missing []string
	for i := range candidates {
		if candidates[i].CreatedAt.IsZero() {
			missing = append(missing, candidates[i].ID)
		}
	}
	if len(missing) == 0 {
		return candidates, nil
	}

	posts, err := h.store.PostsByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("candidate lookup: %w", err)
	}

	byID := make(map[string]feed.Candidate, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	out := append([]feed.Candidate(nil), candidates...)
	for i := range out {
		if !out[i].CreatedAt.IsZero() {
			continue
		}
		p, ok := byID[out[i].ID]
		if !ok {
			continue
		}
		// Keep provenance and any scores, take content from the store.
		p.Source = out[i].Source
		p.Scores = out[i].Scores
		p.FinalScore = out[i].FinalScore
		out[i] = p
	}
	return out, nil
}
