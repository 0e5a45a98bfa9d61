// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the feed pipeline:
// - Per-stage latency and candidate counts
// - Per-source retrieval volume
// - Filter removal volume
// - First-page cache efficiency
// - Engagement service circuit breaker state
// - HTTP endpoint latency and throughput

var (
	// Pipeline Metrics
	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedpipe_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	PipelineStageCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedpipe_stage_candidates",
			Help:    "Candidate count after each pipeline stage",
			Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"stage"},
	)

	PipelineRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedpipe_requests_total",
			Help: "Total number of pipeline executions",
		},
	)

	PipelineComponentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedpipe_component_failures_total",
			Help: "Total number of isolated component failures by stage and component",
		},
		[]string{"stage", "component"},
	)

	// Source Metrics
	SourceCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedpipe_source_candidates_total",
			Help: "Total number of candidates retrieved per source",
		},
		[]string{"source"},
	)

	// Filter Metrics
	FilterRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedpipe_filter_removed_total",
			Help: "Total number of candidates removed per filter",
		},
		[]string{"filter"},
	)

	// Selection Metrics
	SelectedFinalScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedpipe_selected_final_score",
			Help:    "Final score distribution of selected candidates",
			Buckets: []float64{-5, -1, 0, 0.5, 1, 2, 3, 5, 10},
		},
	)

	// Page Cache Metrics
	PageCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedpipe_page_cache_hits_total",
			Help: "Total number of first-page cache hits",
		},
	)

	PageCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedpipe_page_cache_misses_total",
			Help: "Total number of first-page cache misses",
		},
	)

	PageCacheWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedpipe_page_cache_writes_total",
			Help: "Total number of first-page cache writes",
		},
	)

	// Engagement Service Metrics
	EngagementRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedpipe_engagement_requests_total",
			Help: "Total number of engagement service requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"}, // outcome: "success", "failure", "rejected"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feedpipe_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedpipe_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"breaker", "from", "to"},
	)

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedpipe_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedpipe_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// ObserveStage records the duration and resulting candidate count for a
// pipeline stage.
func ObserveStage(stage string, duration time.Duration, candidates int) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	PipelineStageCandidates.WithLabelValues(stage).Observe(float64(candidates))
}

// ObserveHTTPRequest records metrics for a completed HTTP request.
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}
