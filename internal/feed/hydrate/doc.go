// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package hydrate provides the hydration stages of the feed pipeline.
//
// Query hydrators run concurrently and each returns a patch of viewer
// state (social graph, engagement history, preferences) that the pipeline
// merges into the query. The candidate hydrator runs after sourcing and
// backfills content fields on candidates that arrived as bare IDs.
package hydrate
