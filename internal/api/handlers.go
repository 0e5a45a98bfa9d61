// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/solshare/feedpipe/internal/feed"
	"github.com/solshare/feedpipe/internal/logging"
	"github.com/solshare/feedpipe/internal/metrics"
)

// feedRequest is the body of POST /api/v1/feed.
type feedRequest struct {
	// Viewer is the requesting wallet address.
	Viewer string `json:"viewer" validate:"required,min=1,max=128"`

	// Limit is the page size. Zero means the configured default.
	Limit int `json:"limit" validate:"gte=0,lte=500"`

	// Cursor marks a paginated continuation; empty means first page.
	Cursor string `json:"cursor" validate:"omitempty,max=256"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "ok",
		Data: map[string]interface{}{
			"requests": s.pipeline.RequestCount(),
		},
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	requestID := logging.RequestIDFromContext(r.Context())

	// First-page requests are served read-through from the page cache.
	if req.Cursor == "" && s.pages != nil {
		if page, err := s.pages.Get(r.Context(), req.Viewer); err == nil {
			metrics.PageCacheHits.Inc()
			respondJSON(w, http.StatusOK, &APIResponse{
				Status: "ok",
				Data: &FeedResponse{
					Viewer: req.Viewer,
					Posts:  clampPosts(toPostViews(page.Candidates), req.Limit),
				},
				Metadata: Metadata{
					Timestamp: time.Now().UTC(),
					RequestID: requestID,
					LatencyMS: time.Since(start).Milliseconds(),
					Cached:    true,
				},
			})
			return
		}
		metrics.PageCacheMisses.Inc()
	}

	res := s.pipeline.Execute(r.Context(), &feed.Query{
		RequestID: requestID,
		Viewer:    req.Viewer,
		Limit:     req.Limit,
		Cursor:    req.Cursor,
	})

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "ok",
		Data: &FeedResponse{
			Viewer: req.Viewer,
			Posts:  toPostViews(res.Selected),
		},
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: res.Query.RequestID,
			LatencyMS: time.Since(start).Milliseconds(),
		},
	})
}

// clampPosts trims a cached page to the requested size. Cached pages hold
// the default page size; a smaller request should not get extra posts.
func clampPosts(posts []PostView, limit int) []PostView {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}
