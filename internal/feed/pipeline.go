// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package feed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/metrics"
)

// Stage names used for metrics and logging.
const (
	StageQueryHydration     = "query_hydration"
	StageSourcing           = "sourcing"
	StageCandidateHydration = "candidate_hydration"
	StageFiltering          = "filtering"
	StageScoring            = "scoring"
	StageSelection          = "selection"
	StagePostFiltering      = "post_filtering"
	StageSideEffects        = "side_effects"
)

// Pipeline wires sources, hydrators, filters, scorers, a selector, and side
// effects into one execution per feed request. It is safe for concurrent use
// once all components are registered.
//
// Execute never fails: every component failure is caught, logged, and
// treated as "produced nothing", so the caller always receives a Result.
type Pipeline struct {
	config *Config
	logger zerolog.Logger

	queryHydrators     []QueryHydrator
	sources            []Source
	candidateHydrators []CandidateHydrator
	filters            []Filter
	scorers            []Scorer
	selector           Selector
	postFilters        []Filter
	effects            []SideEffect

	requestCount atomic.Int64
	effectWG     sync.WaitGroup
}

// NewPipeline creates a pipeline with the given configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipeline(cfg *Config, logger zerolog.Logger) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Pipeline{
		config: cfg,
		logger: logger.With().Str("component", "pipeline").Logger(),
	}, nil
}

// RegisterQueryHydrator appends a query hydrator to the hydration stage.
func (p *Pipeline) RegisterQueryHydrator(h QueryHydrator) {
	p.queryHydrators = append(p.queryHydrators, h)
	p.logger.Info().Str("hydrator", h.Name()).Msg("registered query hydrator")
}

// RegisterSource appends a source to the sourcing stage.
func (p *Pipeline) RegisterSource(s Source) {
	p.sources = append(p.sources, s)
	p.logger.Info().Str("source", s.Name()).Msg("registered source")
}

// RegisterCandidateHydrator appends a candidate hydrator.
func (p *Pipeline) RegisterCandidateHydrator(h CandidateHydrator) {
	p.candidateHydrators = append(p.candidateHydrators, h)
	p.logger.Info().Str("hydrator", h.Name()).Msg("registered candidate hydrator")
}

// RegisterFilter appends a pre-selection filter.
func (p *Pipeline) RegisterFilter(f Filter) {
	p.filters = append(p.filters, f)
	p.logger.Info().Str("filter", f.Name()).Msg("registered filter")
}

// RegisterScorer appends a scorer. Scorers run in registration order and
// each reads the score state left by the previous one.
func (p *Pipeline) RegisterScorer(s Scorer) {
	p.scorers = append(p.scorers, s)
	p.logger.Info().Str("scorer", s.Name()).Msg("registered scorer")
}

// SetSelector installs the selector. A nil selector means passthrough.
func (p *Pipeline) SetSelector(s Selector) {
	p.selector = s
	if s != nil {
		p.logger.Info().Str("selector", s.Name()).Msg("selector configured")
	}
}

// RegisterPostFilter appends a post-selection filter, applied to the ranked
// and selected set only.
func (p *Pipeline) RegisterPostFilter(f Filter) {
	p.postFilters = append(p.postFilters, f)
	p.logger.Info().Str("filter", f.Name()).Msg("registered post-selection filter")
}

// RegisterSideEffect appends a fire-and-forget side effect.
func (p *Pipeline) RegisterSideEffect(e SideEffect) {
	p.effects = append(p.effects, e)
	p.logger.Info().Str("effect", e.Name()).Msg("registered side effect")
}

// Execute runs the full pipeline for one query and returns the result.
// It never returns an error: component failures degrade to smaller (possibly
// empty) candidate sets, which is a valid outcome.
func (p *Pipeline) Execute(ctx context.Context, q *Query) *Result {
	start := time.Now()
	p.requestCount.Add(1)
	metrics.PipelineRequests.Inc()

	q = p.prepareQuery(q)
	logger := p.requestLogger(q)
	logger.Debug().Msg("pipeline execution started")

	res := &Result{}

	q = p.hydrateQuery(ctx, q, res, logger)
	res.Query = q

	candidates := p.runSources(ctx, q, res, logger)
	res.Retrieved = append([]Candidate(nil), candidates...)

	candidates = p.hydrateCandidates(ctx, q, candidates, res, logger)
	candidates = p.capCandidates(candidates)

	candidates = p.applyFilters(ctx, StageFiltering, p.filters, q, candidates, res, logger)
	candidates = p.applyScorers(ctx, q, candidates, res, logger)

	selected := p.applySelector(q, candidates, res)
	selected = p.applyFilters(ctx, StagePostFiltering, p.postFilters, q, selected, res, logger)
	selected = p.truncate(q, selected)
	res.Selected = selected

	p.fireSideEffects(ctx, q, selected, logger)

	res.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().
		Int("retrieved", len(res.Retrieved)).
		Int("removed", len(res.Removed)).
		Int("selected", len(res.Selected)).
		Int64("latency_ms", res.LatencyMS).
		Msg("pipeline execution complete")

	return res
}

// WaitSideEffects blocks until all in-flight side effects have completed.
// Intended for graceful shutdown and tests; the request path never calls it.
func (p *Pipeline) WaitSideEffects() {
	p.effectWG.Wait()
}

// RequestCount returns the number of executions since startup.
func (p *Pipeline) RequestCount() int64 {
	return p.requestCount.Load()
}

// prepareQuery applies defaults and generates a request ID if needed.
func (p *Pipeline) prepareQuery(q *Query) *Query {
	q = q.Clone()
	if q.RequestID == "" {
		q.RequestID = uuid.New().String()
	}
	if q.Limit <= 0 {
		q.Limit = p.config.Limits.DefaultLimit
	}
	if q.Limit > p.config.Limits.MaxLimit {
		q.Limit = p.config.Limits.MaxLimit
	}
	return q
}

// requestLogger creates a logger with request context.
func (p *Pipeline) requestLogger(q *Query) zerolog.Logger {
	return p.logger.With().
		Str("request_id", q.RequestID).
		Str("viewer", q.Viewer).
		Logger()
}

// recordStage appends a stage metric to the result and exports it.
func (p *Pipeline) recordStage(res *Result, stage string, start time.Time, candidates int) {
	d := time.Since(start)
	res.Stages = append(res.Stages, StageMetric{
		Stage:      stage,
		DurationMS: d.Milliseconds(),
		Candidates: candidates,
	})
	metrics.ObserveStage(stage, d, candidates)
}

// recordFailure logs an isolated component failure and counts it.
func (p *Pipeline) recordFailure(logger zerolog.Logger, stage, component string, err error) {
	metrics.PipelineComponentFailures.WithLabelValues(stage, component).Inc()
	logger.Error().
		Str("stage", stage).
		Str("component", component).
		Err(err).
		Msg("component failed, treating as no-op")
}

// hydrateQuery runs all enabled query hydrators concurrently and merges
// their patches into a working copy in configured list order. Later
// hydrators win on overlapping scalar fields; set fields union.
func (p *Pipeline) hydrateQuery(ctx context.Context, q *Query, res *Result, logger zerolog.Logger) *Query {
	start := time.Now()
	defer func() { p.recordStage(res, StageQueryHydration, start, 0) }()

	hydrators := p.enabledQueryHydrators(q)
	if len(hydrators) == 0 {
		return q
	}

	patches := make([]*QueryPatch, len(hydrators))
	errs := make([]error, len(hydrators))

	var wg sync.WaitGroup
	for i, h := range hydrators {
		wg.Add(1)
		go func(idx int, h QueryHydrator) {
			defer wg.Done()
			patches[idx], errs[idx] = p.runQueryHydrator(ctx, h, q)
		}(i, h)
	}
	wg.Wait()

	merged := q.Clone()
	for i, h := range hydrators {
		if errs[i] != nil {
			p.recordFailure(logger, StageQueryHydration, h.Name(), errs[i])
			continue
		}
		if patches[i] != nil {
			patches[i].apply(merged)
		}
	}
	return merged
}

// runQueryHydrator invokes a single hydrator with panic isolation.
func (p *Pipeline) runQueryHydrator(ctx context.Context, h QueryHydrator, q *Query) (patch *QueryPatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hydrator panic: %v", r)
		}
	}()

	hctx, cancel := context.WithTimeout(ctx, p.config.Limits.StageTimeout)
	defer cancel()
	return h.Hydrate(hctx, q)
}

// enabledQueryHydrators returns the hydrators that should run for the query.
func (p *Pipeline) enabledQueryHydrators(q *Query) []QueryHydrator {
	out := make([]QueryHydrator, 0, len(p.queryHydrators))
	for _, h := range p.queryHydrators {
		if p.config.componentEnabled(h.Name()) && h.Enabled(q) {
			out = append(out, h)
		}
	}
	return out
}

// runSources fans out to all enabled sources concurrently and concatenates
// successes in configured list order. A failing source contributes nothing
// and never cancels its siblings.
func (p *Pipeline) runSources(ctx context.Context, q *Query, res *Result, logger zerolog.Logger) []Candidate {
	start := time.Now()

	sources := p.enabledSources(q)
	results := make([][]Candidate, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, s := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			results[idx], errs[idx] = p.runSingleSource(ctx, s, q)
		}(i, s)
	}
	wg.Wait()

	var candidates []Candidate
	for i, s := range sources {
		if errs[i] != nil {
			p.recordFailure(logger, StageSourcing, s.Name(), errs[i])
			continue
		}
		metrics.SourceCandidates.WithLabelValues(s.Name()).Add(float64(len(results[i])))
		candidates = append(candidates, results[i]...)
	}

	p.recordStage(res, StageSourcing, start, len(candidates))
	return candidates
}

// runSingleSource invokes a single source with panic isolation.
func (p *Pipeline) runSingleSource(ctx context.Context, s Source, q *Query) (out []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panic: %v", r)
		}
	}()

	sctx, cancel := context.WithTimeout(ctx, p.config.Limits.StageTimeout)
	defer cancel()
	return s.Retrieve(sctx, q)
}

// enabledSources returns the sources that should run for the query.
func (p *Pipeline) enabledSources(q *Query) []Source {
	out := make([]Source, 0, len(p.sources))
	for _, s := range p.sources {
		if p.config.componentEnabled(s.Name()) && s.Enabled(q) {
			out = append(out, s)
		}
	}
	return out
}

// hydrateCandidates runs candidate hydrators one at a time. A hydrator that
// fails or returns a wrong-cardinality slice is discarded and the prior set
// kept.
func (p *Pipeline) hydrateCandidates(ctx context.Context, q *Query, candidates []Candidate, res *Result, logger zerolog.Logger) []Candidate {
	start := time.Now()
	defer func() { p.recordStage(res, StageCandidateHydration, start, len(candidates)) }()

	for _, h := range p.candidateHydrators {
		if !p.config.componentEnabled(h.Name()) || !h.Enabled(q) {
			continue
		}

		out, err := p.runCandidateHydrator(ctx, h, q, candidates)
		if err != nil {
			p.recordFailure(logger, StageCandidateHydration, h.Name(), err)
			continue
		}
		if len(out) != len(candidates) {
			logger.Warn().
				Str("hydrator", h.Name()).
				Int("want", len(candidates)).
				Int("got", len(out)).
				Msg("hydrator returned wrong cardinality, output discarded")
			continue
		}
		candidates = out
	}
	return candidates
}

// runCandidateHydrator invokes a single candidate hydrator with panic isolation.
func (p *Pipeline) runCandidateHydrator(ctx context.Context, h CandidateHydrator, q *Query, candidates []Candidate) (out []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hydrator panic: %v", r)
		}
	}()

	hctx, cancel := context.WithTimeout(ctx, p.config.Limits.StageTimeout)
	defer cancel()
	return h.Hydrate(hctx, q, candidates)
}

// capCandidates bounds the candidate set entering the scoring stages.
func (p *Pipeline) capCandidates(candidates []Candidate) []Candidate {
	if len(candidates) > p.config.Limits.MaxCandidates {
		return candidates[:p.config.Limits.MaxCandidates]
	}
	return candidates
}

// applyFilters runs a filter list one at a time, each partitioning the
// current kept set. Removed candidates accumulate into the result. A failing
// filter is a no-op: the candidate set rolls back to its pre-filter state.
func (p *Pipeline) applyFilters(ctx context.Context, stage string, filters []Filter, q *Query, candidates []Candidate, res *Result, logger zerolog.Logger) []Candidate {
	start := time.Now()
	defer func() { p.recordStage(res, stage, start, len(candidates)) }()

	for _, f := range filters {
		if !p.config.componentEnabled(f.Name()) || !f.Enabled(q) {
			continue
		}

		fres, err := p.runFilter(ctx, f, q, candidates)
		if err != nil {
			p.recordFailure(logger, stage, f.Name(), err)
			continue
		}
		if len(fres.Kept)+len(fres.Removed) != len(candidates) {
			logger.Warn().
				Str("filter", f.Name()).
				Int("want", len(candidates)).
				Int("got", len(fres.Kept)+len(fres.Removed)).
				Msg("filter output is not a partition of its input, output discarded")
			continue
		}

		metrics.FilterRemoved.WithLabelValues(f.Name()).Add(float64(len(fres.Removed)))
		res.Removed = append(res.Removed, fres.Removed...)
		candidates = fres.Kept
	}
	return candidates
}

// runFilter invokes a single filter with panic isolation.
func (p *Pipeline) runFilter(ctx context.Context, f Filter, q *Query, candidates []Candidate) (fres FilterResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("filter panic: %v", r)
		}
	}()

	return f.Filter(ctx, q, candidates)
}

// applyScorers runs scorers one at a time with the same cardinality contract
// as candidate hydration.
func (p *Pipeline) applyScorers(ctx context.Context, q *Query, candidates []Candidate, res *Result, logger zerolog.Logger) []Candidate {
	start := time.Now()
	defer func() { p.recordStage(res, StageScoring, start, len(candidates)) }()

	for _, s := range p.scorers {
		if !p.config.componentEnabled(s.Name()) || !s.Enabled(q) {
			continue
		}

		out, err := p.runScorer(ctx, s, q, candidates)
		if err != nil {
			p.recordFailure(logger, StageScoring, s.Name(), err)
			continue
		}
		if len(out) != len(candidates) {
			logger.Warn().
				Str("scorer", s.Name()).
				Int("want", len(candidates)).
				Int("got", len(out)).
				Msg("scorer returned wrong cardinality, output discarded")
			continue
		}
		candidates = out
	}
	return candidates
}

// runScorer invokes a single scorer with panic isolation.
func (p *Pipeline) runScorer(ctx context.Context, s Scorer, q *Query, candidates []Candidate) (out []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scorer panic: %v", r)
		}
	}()

	sctx, cancel := context.WithTimeout(ctx, p.config.Limits.ScoreTimeout)
	defer cancel()
	return s.Score(sctx, q, candidates)
}

// applySelector runs the configured selector, passing through when none is
// configured or it is disabled.
func (p *Pipeline) applySelector(q *Query, candidates []Candidate, res *Result) []Candidate {
	start := time.Now()
	selected := candidates
	if p.selector != nil && p.config.componentEnabled(p.selector.Name()) {
		selected = p.selector.Select(q, candidates)
	}
	p.recordStage(res, StageSelection, start, len(selected))
	return selected
}

// truncate hard-caps the selected set to the requested page size regardless
// of what the selector already did.
func (p *Pipeline) truncate(q *Query, selected []Candidate) []Candidate {
	if len(selected) > q.Limit {
		return selected[:q.Limit]
	}
	return selected
}

// fireSideEffects dispatches every enabled effect on its own goroutine.
// Effects are detached from the request context so cancellation of the
// response path cannot suppress their completion or failure logging.
func (p *Pipeline) fireSideEffects(ctx context.Context, q *Query, selected []Candidate, logger zerolog.Logger) {
	start := time.Now()
	defer func() {
		d := time.Since(start)
		metrics.ObserveStage(StageSideEffects, d, len(selected))
	}()

	detached := context.WithoutCancel(ctx)
	for _, e := range p.effects {
		if !p.config.componentEnabled(e.Name()) || !e.Enabled(q) {
			continue
		}

		p.effectWG.Add(1)
		go func(e SideEffect) {
			defer p.effectWG.Done()
			if err := p.runSideEffect(detached, e, q, selected); err != nil {
				p.recordFailure(logger, StageSideEffects, e.Name(), err)
				return
			}
			logger.Debug().Str("effect", e.Name()).Msg("side effect complete")
		}(e)
	}
}

// runSideEffect invokes a single effect with panic isolation and a bounded
// execution window.
func (p *Pipeline) runSideEffect(ctx context.Context, e SideEffect, q *Query, selected []Candidate) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("side effect panic: %v", r)
		}
	}()

	ectx, cancel := context.WithTimeout(ctx, p.config.Limits.EffectTimeout)
	defer cancel()
	return e.Run(ectx, q, selected)
}
