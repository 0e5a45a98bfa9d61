// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package exposes instrumentation for:
  - Pipeline stage latency and candidate counts
  - Per-source retrieval volume
  - Per-filter removal volume
  - First-page cache efficiency
  - Engagement service calls and circuit breaker state
  - HTTP endpoint latency and throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage Example

	import "github.com/solshare/feedpipe/internal/metrics"

	start := time.Now()
	// ... run stage ...
	metrics.ObserveStage("scoring", time.Since(start), len(candidates))
	metrics.SourceCandidates.WithLabelValues("in_network").Add(float64(n))

Example PromQL queries:

	# Pipeline p95 latency per stage
	histogram_quantile(0.95, rate(feedpipe_stage_duration_seconds_bucket[5m]))

	# First-page cache hit rate
	sum(rate(feedpipe_page_cache_hits_total[5m]))
	/
	(sum(rate(feedpipe_page_cache_hits_total[5m])) + sum(rate(feedpipe_page_cache_misses_total[5m])))

# Cardinality Management

Stage, source, and filter names come from small fixed sets of registered
components; no user-derived values are used as labels.

# Thread Safety

All metric recording functions are safe for concurrent use. The Prometheus
client library handles synchronization internally.
*/
package metrics
