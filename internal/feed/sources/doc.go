// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package sources provides the candidate sources of the feed pipeline.
//
// Sources run concurrently and independently; each tags its candidates with
// its own provenance so later stages can tell in-network, out-of-network,
// and trending content apart. A source that cannot produce (backend down,
// empty social graph) fails or disables itself without affecting the rest.
package sources
