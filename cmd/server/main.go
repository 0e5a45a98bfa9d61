// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package main is the entry point for the feedpipe server.
//
// Startup order: configuration (koanf: defaults, YAML file, FEEDPIPE_ env
// vars), logging, the page cache backend, the engagement service client,
// the ranking pipeline with its registered components, and finally the
// HTTP server. SIGINT/SIGTERM trigger graceful shutdown, which drains
// in-flight requests and waits for outstanding side effects.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/api"
	"github.com/solshare/feedpipe/internal/cache"
	"github.com/solshare/feedpipe/internal/config"
	"github.com/solshare/feedpipe/internal/engagement"
	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/feed/effects"
	"github.com/solshare/feedpipe/internal/feed/filters"
	"github.com/solshare/feedpipe/internal/feed/hydrate"
	"github.com/solshare/feedpipe/internal/feed/scorers"
	"github.com/solshare/feedpipe/internal/feed/sources"
	"github.com/solshare/feedpipe/internal/logging"
	"github.com/solshare/feedpipe/internal/store"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(cfg.Logging)
	logger := logging.Logger()
	logger.Info().Msg("feedpipe starting")

	pages, err := cache.NewPageStore(cfg.Cache, logger)
	if err != nil {
		return fmt.Errorf("init page cache: %w", err)
	}
	defer pages.Close()

	contentStore := store.NewMemory()
	client := engagement.NewClient(cfg.Engagement, logger)

	pipeline, err := buildPipeline(cfg, contentStore, client, pages, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	server := api.NewServer(cfg.Server, pipeline, pages, logger)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	// Side effects are fire-and-forget per request but not per process.
	pipeline.WaitSideEffects()
	logger.Info().Msg("feedpipe stopped")
	return nil
}

// buildPipeline registers every component in its serving order.
func buildPipeline(cfg *config.Config, contentStore store.ContentStore, client *engagement.Client, pages cache.PageStore, logger zerolog.Logger) (*feed.Pipeline, error) {
	p, err := feed.NewPipeline(&cfg.Pipeline, logger)
	if err != nil {
		return nil, err
	}

	p.RegisterQueryHydrator(hydrate.NewSocialGraph(contentStore))
	p.RegisterQueryHydrator(hydrate.NewEngagementHistory(contentStore))
	p.RegisterQueryHydrator(hydrate.NewPreferences(contentStore, client))

	sourceLimit := cfg.Pipeline.Limits.MaxCandidates
	p.RegisterSource(sources.NewInNetwork(contentStore, sourceLimit))
	p.RegisterSource(sources.NewOutOfNetwork(client, contentStore, sourceLimit))
	p.RegisterSource(sources.NewTrending(contentStore, sourceLimit))

	p.RegisterCandidateHydrator(hydrate.NewCandidateCore(contentStore))

	p.RegisterFilter(filters.NewDedup())
	p.RegisterFilter(filters.NewAge(cfg.Pipeline.Freshness))
	p.RegisterFilter(filters.NewSelfAuthor())
	p.RegisterFilter(filters.NewBlockedAuthor())
	p.RegisterFilter(filters.NewSeen())
	p.RegisterFilter(filters.NewMutedKeyword())

	p.RegisterScorer(scorers.NewEngagement(client, logger))
	p.RegisterScorer(scorers.NewWeighted(client))
	p.RegisterScorer(scorers.NewFreshness(cfg.Pipeline.Freshness))
	p.RegisterScorer(scorers.NewInNetwork(cfg.Pipeline.Boost))

	p.SetSelector(feed.NewTopKSelector(0))

	p.RegisterPostFilter(filters.NewAuthorDiversity(cfg.Pipeline.Diversity))

	p.RegisterSideEffect(effects.NewPageCache(pages))
	p.RegisterSideEffect(effects.NewStats(logger))

	return p, nil
}
