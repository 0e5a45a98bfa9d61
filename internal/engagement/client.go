// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package engagement

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/metrics"
)

const breakerName = "engagement-api"

// Config contains engagement service client configuration.
type Config struct {
	// BaseURL is the engagement service base URL.
	BaseURL string `json:"base_url" koanf:"base_url"`

	// Timeout is the per-request HTTP timeout.
	// Default: 5s.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`

	// RateLimit is the maximum request rate in requests per second.
	// Default: 50.
	RateLimit float64 `json:"rate_limit" koanf:"rate_limit"`

	// RateBurst is the rate limiter burst size.
	// Default: 10.
	RateBurst int `json:"rate_burst" koanf:"rate_burst"`
}

// DefaultConfig returns client defaults for a local engagement service.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8500",
		Timeout:   5 * time.Second,
		RateLimit: 50,
		RateBurst: 10,
	}
}

// Client talks to the engagement prediction service. All calls go through a
// shared rate limiter and circuit breaker; when the service degrades, the
// breaker opens and callers fall back (zero predictions, static weights)
// instead of piling on.
//
// Client implements scorers.Predictor, scorers.WeightProvider,
// sources.Retriever, and hydrate.TasteProvider.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	limiter *rate.Limiter
	logger  zerolog.Logger

	// Live weights are fetched once and cached for the process lifetime.
	// A failed fetch serves the static table without poisoning the cache,
	// so a later request can still pick up live weights.
	weightsMu sync.Mutex
	weights   map[string]float64
}

// NewClient creates an engagement service client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "engagement_client").Logger()

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		logger:  logger,
	}
}

type scoreRequest struct {
	Viewer string      `json:"viewer"`
	Posts  []scorePost `json:"posts"`
}

type scorePost struct {
	ID        string   `json:"id"`
	Creator   string   `json:"creator"`
	Tags      []string `json:"tags,omitempty"`
	SceneType string   `json:"scene_type,omitempty"`
	Mood      string   `json:"mood,omitempty"`
}

type scoreResponse struct {
	Scores []map[string]float64 `json:"scores"`
}

// Predict returns per-action engagement probabilities for each candidate,
// in input order. Implements the scorer's prediction backend.
func (c *Client) Predict(ctx context.Context, viewer string, candidates []feed.Candidate) ([]map[string]float64, error) {
	req := scoreRequest{Viewer: viewer, Posts: make([]scorePost, len(candidates))}
	for i, cand := range candidates {
		req.Posts[i] = scorePost{
			ID:        cand.ID,
			Creator:   cand.Creator,
			Tags:      cand.Tags,
			SceneType: cand.SceneType,
			Mood:      cand.Mood,
		}
	}

	body, err := c.post(ctx, "/pipeline/score", req)
	if err != nil {
		return nil, err
	}

	var resp scoreResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode score response: %w", err)
	}
	if len(resp.Scores) != len(candidates) {
		return nil, fmt.Errorf("score response has %d entries, want %d", len(resp.Scores), len(candidates))
	}
	return resp.Scores, nil
}

type retrieveRequest struct {
	Viewer    string    `json:"viewer"`
	Embedding []float64 `json:"embedding"`
	Limit     int       `json:"limit"`
}

type retrieveResponse struct {
	PostIDs []string `json:"post_ids"`
}

// Retrieve resolves a taste embedding to similar post IDs via the two-tower
// retrieval endpoint. Implements the out-of-network source backend.
func (c *Client) Retrieve(ctx context.Context, viewer string, embedding []float64, limit int) ([]string, error) {
	body, err := c.post(ctx, "/pipeline/retrieve", retrieveRequest{
		Viewer:    viewer,
		Embedding: embedding,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	var resp retrieveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode retrieve response: %w", err)
	}
	return resp.PostIDs, nil
}

type tasteResponse struct {
	Embedding []float64 `json:"embedding"`
	Profile   string    `json:"profile"`
}

// TasteEmbedding returns the viewer's taste embedding and profile label.
// Implements the preferences hydrator backend.
func (c *Client) TasteEmbedding(ctx context.Context, viewer string) ([]float64, string, error) {
	body, err := c.get(ctx, "/pipeline/users/"+viewer+"/taste")
	if err != nil {
		return nil, "", err
	}

	var resp tasteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("decode taste response: %w", err)
	}
	return resp.Embedding, resp.Profile, nil
}

type infoResponse struct {
	Weights map[string]float64 `json:"weights"`
	Model   string             `json:"model"`
}

// Weights returns per-action ranking weights, preferring live values from
// the service and falling back to the static table. Never fails: the
// static table is always available.
func (c *Client) Weights(ctx context.Context) (map[string]float64, error) {
	c.weightsMu.Lock()
	defer c.weightsMu.Unlock()

	if c.weights != nil {
		return c.weights, nil
	}

	body, err := c.get(ctx, "/pipeline/info")
	if err != nil {
		c.logger.Warn().Err(err).Msg("live weights unavailable, using static table")
		return CopyDefaultWeights(), nil
	}

	var resp infoResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Weights) == 0 {
		c.logger.Warn().Err(err).Msg("malformed weights response, using static table")
		return CopyDefaultWeights(), nil
	}

	c.logger.Info().Str("model", resp.Model).Int("actions", len(resp.Weights)).Msg("live ranking weights loaded")
	c.weights = resp.Weights
	return c.weights, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// do executes one request through the rate limiter and circuit breaker.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	out, err := c.breaker.Execute(func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.EngagementRequests.WithLabelValues(path, outcome).Inc()
	return out, err
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
