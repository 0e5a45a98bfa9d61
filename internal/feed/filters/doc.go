// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package filters provides the candidate filters of the feed pipeline.
//
// Every filter partitions its input into kept and removed candidates; the
// two sets always account for the full input. Filters that depend on
// hydrated viewer state (blocked authors, seen posts, muted keywords)
// disable themselves when that state is empty, so the pipeline skips them
// instead of walking the candidate set for nothing.
package filters
