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
)

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	LatencyMS int64     `json:"latency_ms"`
	Cached    bool      `json:"cached,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FeedResponse is the data payload of a feed request.
type FeedResponse struct {
	Viewer string     `json:"viewer"`
	Posts  []PostView `json:"posts"`
}

// PostView is the wire shape of one ranked post.
type PostView struct {
	ID           string    `json:"id"`
	Creator      string    `json:"creator"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	ContentRef   string    `json:"content_ref,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	SceneType    string    `json:"scene_type,omitempty"`
	Mood         string    `json:"mood,omitempty"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	TipsReceived float64   `json:"tips_received"`
	Source       string    `json:"source,omitempty"`
	FinalScore   float64   `json:"final_score"`
}

func toPostViews(candidates []feed.Candidate) []PostView {
	out := make([]PostView, len(candidates))
	for i, c := range candidates {
		out[i] = PostView{
			ID:           c.ID,
			Creator:      c.Creator,
			CreatedAt:    c.CreatedAt,
			ContentRef:   c.ContentRef,
			Caption:      c.Caption,
			Tags:         c.Tags,
			SceneType:    c.SceneType,
			Mood:         c.Mood,
			Likes:        c.Likes,
			Comments:     c.Comments,
			TipsReceived: c.TipsReceived,
			Source:       string(c.Source),
			FinalScore:   c.FinalScore,
		}
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, resp *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, status, &APIResponse{
		Status: "error",
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: &APIError{Code: code, Message: message},
	})
}
