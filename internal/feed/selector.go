// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package feed

import "sort"

// TopKSelector orders candidates by final score descending and keeps the
// best K. Ties preserve the incoming order, which is the configured source
// order, so ranking is deterministic for equal scores.
type TopKSelector struct {
	// K bounds the selected set. Zero means use the query page size.
	K int
}

// NewTopKSelector creates a selector keeping the k best candidates.
func NewTopKSelector(k int) *TopKSelector {
	return &TopKSelector{K: k}
}

// Name implements Selector.
func (s *TopKSelector) Name() string { return "top_k" }

// Select implements Selector. The input slice is not modified.
func (s *TopKSelector) Select(q *Query, candidates []Candidate) []Candidate {
	out := append([]Candidate(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})

	k := s.K
	if k <= 0 {
		k = q.Limit
	}
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
