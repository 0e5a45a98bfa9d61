// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

/*
Package feed implements the multi-stage candidate ranking pipeline behind
the SolShare home feed.

A single Execute call runs nine stages in order:

 1. Query hydration: enrich the query with viewer state (parallel)
 2. Sourcing: retrieve candidates from each source (parallel)
 3. Candidate hydration: attach features to candidates (sequential)
 4. Filtering: drop ineligible candidates (sequential)
 5. Scoring: attach per-action and final scores (sequential)
 6. Selection: rank and pick the best candidates
 7. Post-selection filtering: final visibility checks on the ranked set
 8. Truncation: cap to the requested page size
 9. Side effects: fire-and-forget work such as page caching

The pipeline is resilient by construction. Any component may fail or panic;
the orchestrator logs the failure, exports a metric, and continues with the
output of the previous stage. Execute never returns an error and never
propagates a panic.

Components implement one of the small interfaces in this package (Source,
QueryHydrator, CandidateHydrator, Filter, Scorer, Selector, SideEffect) and
are registered at startup. Per-component kill switches live in
Config.Disabled, on top of each component's own Enabled predicate.

Usage:

	p, err := feed.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	p.RegisterSource(sources.NewInNetwork(store))
	p.RegisterScorer(scorers.NewFreshness(cfg.Freshness))
	p.SetSelector(feed.NewTopKSelector(0))

	res := p.Execute(ctx, &feed.Query{Viewer: "wallet", Limit: 20})
*/
package feed
