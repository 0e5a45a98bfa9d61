// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package scorers provides the scoring stage of the feed pipeline.
//
// Scorers run in registration order and build on each other's output:
// Engagement attaches per-action probabilities, Weighted collapses them
// into a final score, Freshness decays that score by post age, and
// InNetwork adds a flat bonus for followed creators. Each scorer returns a
// slice of the same length as its input; candidates are value copies, so a
// scorer never mutates upstream state.
package scorers
