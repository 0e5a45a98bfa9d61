// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/solshare/feedpipe/internal/cache"
	"github.com/solshare/feedpipe/internal/config"
	"github.com/solshare/feedpipe/internal/feed"
)

type staticSource struct {
	candidates []feed.Candidate
}

func (s *staticSource) Name() string        { return "static" }
func (s *staticSource) Enabled(*feed.Query) bool { return true }
func (s *staticSource) Retrieve(context.Context, *feed.Query) ([]feed.Candidate, error) {
	return s.candidates, nil
}

func testServer(t *testing.T, pages cache.PageStore) *Server {
	t.Helper()

	p, err := feed.NewPipeline(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	p.RegisterSource(&staticSource{candidates: []feed.Candidate{
		{ID: "p1", Creator: "alice", FinalScore: 0.9, Source: feed.SourceInNetwork},
		{ID: "p2", Creator: "bob", FinalScore: 0.4, Source: feed.SourceTrending},
	}})
	p.SetSelector(feed.NewTopKSelector(0))

	cfg := config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            8080,
		Timeout:         5 * time.Second,
		RateLimitReqs:   1000,
		RateLimitWindow: time.Minute,
		CORSOrigins:     []string{"*"},
	}
	return NewServer(cfg, p, pages, zerolog.Nop())
}

func postFeed(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, *APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feed", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	return rec, &resp
}

func feedData(t *testing.T, resp *APIResponse) *FeedResponse {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var fr FeedResponse
	if err := json.Unmarshal(raw, &fr); err != nil {
		t.Fatalf("decode feed data: %v", err)
	}
	return &fr
}

func TestHandleFeed(t *testing.T) {
	s := testServer(t, nil)
	rec, resp := postFeed(t, s.Router(), `{"viewer":"wallet1","limit":10}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if resp.Status != "ok" {
		t.Errorf("status field = %q", resp.Status)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("request ID missing from metadata")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	fr := feedData(t, resp)
	if fr.Viewer != "wallet1" || len(fr.Posts) != 2 {
		t.Errorf("feed = %+v", fr)
	}
	if fr.Posts[0].ID != "p1" {
		t.Errorf("first post = %s, want highest scored p1", fr.Posts[0].ID)
	}
}

func TestHandleFeedValidation(t *testing.T) {
	s := testServer(t, nil)
	h := s.Router()

	tests := []struct {
		name string
		body string
	}{
		{"missing viewer", `{"limit":10}`},
		{"negative limit", `{"viewer":"v","limit":-1}`},
		{"malformed json", `{"viewer":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := postFeed(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if resp.Error == nil {
				t.Error("error payload missing")
			}
		})
	}
}

func TestHandleFeedServesCachedFirstPage(t *testing.T) {
	pages := cache.NewMemoryStore(time.Minute)
	if err := pages.Set(context.Background(), "wallet1", &cache.Page{
		RequestID: "cached-req",
		Viewer:    "wallet1",
		Candidates: []feed.Candidate{
			{ID: "c1", FinalScore: 1.0},
			{ID: "c2", FinalScore: 0.5},
		},
		CachedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	s := testServer(t, pages)
	h := s.Router()

	rec, resp := postFeed(t, h, `{"viewer":"wallet1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !resp.Metadata.Cached {
		t.Error("cached flag not set for cache hit")
	}
	fr := feedData(t, resp)
	if len(fr.Posts) != 2 || fr.Posts[0].ID != "c1" {
		t.Errorf("cached feed = %+v", fr)
	}

	// The cached page is clamped to a smaller requested limit.
	_, resp = postFeed(t, h, `{"viewer":"wallet1","limit":1}`)
	if fr := feedData(t, resp); len(fr.Posts) != 1 {
		t.Errorf("clamped feed has %d posts, want 1", len(fr.Posts))
	}

	// Paginated requests bypass the cache.
	_, resp = postFeed(t, h, `{"viewer":"wallet1","cursor":"next"}`)
	if resp.Metadata.Cached {
		t.Error("cached flag set for paginated request")
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("metrics body empty")
	}
}
