// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

// Package api exposes the feed pipeline over HTTP: a single ranked-feed
// endpoint plus health and metrics, behind the usual middleware stack.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/cache"
	"github.com/solshare/feedpipe/internal/config"
	"github.com/solshare/feedpipe/internal/feed"
)

// Server handles HTTP traffic for the feed service.
type Server struct {
	cfg      config.ServerConfig
	pipeline *feed.Pipeline
	pages    cache.PageStore
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewServer creates an HTTP server around a built pipeline. pages may be
// nil to disable the read-through page cache.
func NewServer(cfg config.ServerConfig, pipeline *feed.Pipeline, pages cache.PageStore, logger zerolog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		pipeline: pipeline,
		pages:    pages,
		validate: validator.New(),
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.cfg.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metricsMiddleware)
		r.Use(httprate.LimitByIP(s.cfg.RateLimitReqs, s.cfg.RateLimitWindow))

		r.Post("/feed", s.handleFeed)
	})

	return r
}
