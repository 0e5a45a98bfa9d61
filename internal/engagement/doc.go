// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package engagement provides the client for the engagement prediction
// service: per-action probabilities, ranking weights, embedding-based
// retrieval, and viewer taste lookups. The service is optional at runtime;
// every caller has a documented fallback when it is unreachable.
package engagement
