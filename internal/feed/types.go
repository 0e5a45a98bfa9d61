// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package feed

import (
	"context"
	"time"
)

// SourceTag identifies the retrieval strategy that produced a candidate.
type SourceTag string

const (
	// SourceInNetwork marks candidates from creators the viewer follows.
	SourceInNetwork SourceTag = "in_network"

	// SourceOutOfNetwork marks candidates from semantic similarity retrieval.
	SourceOutOfNetwork SourceTag = "out_of_network"

	// SourceTrending marks candidates from popularity aggregation.
	SourceTrending SourceTag = "trending"
)

// Query carries the per-request context through the pipeline.
//
// The raw fields are set by the caller; the hydrated fields are populated
// during query hydration and only ever grow, never shrink. After hydration
// the Query is read-only for the remainder of the execution.
type Query struct {
	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id"`

	// Viewer is the wallet address of the requesting user.
	Viewer string `json:"viewer"`

	// Limit is the requested result size.
	// Defaults to Config.Limits.DefaultLimit if zero.
	Limit int `json:"limit,omitempty"`

	// Cursor is the opaque pagination cursor. Empty for the first page.
	Cursor string `json:"cursor,omitempty"`

	// Following is the set of creator wallets the viewer follows.
	Following map[string]struct{} `json:"-"`

	// Blocked is the set of creator wallets the viewer has blocked or muted.
	Blocked map[string]struct{} `json:"-"`

	// Liked is the set of post IDs the viewer has liked recently.
	Liked map[string]struct{} `json:"-"`

	// Seen is the set of post IDs the viewer has already been shown.
	Seen map[string]struct{} `json:"-"`

	// MutedKeywords is the viewer's muted keyword list, lowercased.
	MutedKeywords []string `json:"-"`

	// TasteEmbedding is the viewer's taste vector from liked content.
	TasteEmbedding []float64 `json:"-"`

	// TasteProfile is a short natural-language summary of the viewer's tastes.
	TasteProfile string `json:"-"`
}

// Clone returns a deep copy of the query.
// The orchestrator merges hydration patches into a clone so concurrent
// hydrators never observe partial writes.
func (q *Query) Clone() *Query {
	c := *q
	c.Following = cloneSet(q.Following)
	c.Blocked = cloneSet(q.Blocked)
	c.Liked = cloneSet(q.Liked)
	c.Seen = cloneSet(q.Seen)
	c.MutedKeywords = append([]string(nil), q.MutedKeywords...)
	c.TasteEmbedding = append([]float64(nil), q.TasteEmbedding...)
	return &c
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	if s == nil {
		return nil
	}
	c := make(map[string]struct{}, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// QueryPatch is a partial query produced by a single query hydrator.
// Nil/empty fields are left untouched during the merge; sets are unioned
// into the accumulator so hydrated context only grows.
type QueryPatch struct {
	Following      map[string]struct{}
	Blocked        map[string]struct{}
	Liked          map[string]struct{}
	Seen           map[string]struct{}
	MutedKeywords  []string
	TasteEmbedding []float64
	TasteProfile   string
}

// apply merges the patch into the query. Sets union, scalars overwrite when
// non-empty; patches are applied in configured hydrator order, so the last
// hydrator in the list wins on overlapping scalar fields.
func (p *QueryPatch) apply(q *Query) {
	q.Following = unionSet(q.Following, p.Following)
	q.Blocked = unionSet(q.Blocked, p.Blocked)
	q.Liked = unionSet(q.Liked, p.Liked)
	q.Seen = unionSet(q.Seen, p.Seen)
	if len(p.MutedKeywords) > 0 {
		q.MutedKeywords = append(q.MutedKeywords, p.MutedKeywords...)
	}
	if len(p.TasteEmbedding) > 0 {
		q.TasteEmbedding = append([]float64(nil), p.TasteEmbedding...)
	}
	if p.TasteProfile != "" {
		q.TasteProfile = p.TasteProfile
	}
}

func unionSet(dst, src map[string]struct{}) map[string]struct{} {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]struct{}, len(src))
	}
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}

// Candidate is one content post being evaluated for inclusion in the feed.
type Candidate struct {
	// ID is the unique post identifier.
	ID string `json:"id"`

	// Creator is the wallet address of the post author.
	Creator string `json:"creator"`

	// CreatedAt is the post creation time.
	// The zero value means the timestamp is not yet hydrated.
	CreatedAt time.Time `json:"created_at,omitempty"`

	// ContentRef is the storage reference of the post media.
	ContentRef string `json:"content_ref,omitempty"`

	// Caption is the creator-written caption.
	Caption string `json:"caption,omitempty"`

	// Description is the AI-generated content description.
	Description string `json:"description,omitempty"`

	// Tags is the content tag list.
	Tags []string `json:"tags,omitempty"`

	// SceneType is the categorical scene attribute (portrait, landscape, ...).
	SceneType string `json:"scene_type,omitempty"`

	// Mood is the categorical mood attribute.
	Mood string `json:"mood,omitempty"`

	// Likes is the like counter at retrieval time.
	Likes int `json:"likes"`

	// Comments is the comment counter at retrieval time.
	Comments int `json:"comments"`

	// TipsReceived is the total SOL tipped to this post.
	TipsReceived float64 `json:"tips_received"`

	// Gated indicates the post is behind a token gate.
	Gated bool `json:"gated,omitempty"`

	// Embedding is the content embedding vector, when available.
	Embedding []float64 `json:"-"`

	// Source records which retrieval strategy produced this candidate.
	// Set once at creation and never changed.
	Source SourceTag `json:"source"`

	// Scores holds per-action engagement probabilities, keyed by action
	// name. Nil until the engagement scorer has run.
	Scores map[string]float64 `json:"scores,omitempty"`

	// FinalScore is the combined weighted score. Zero until scored.
	FinalScore float64 `json:"final_score"`
}

// AgeAt returns the candidate age relative to now.
// Returns zero and false when the timestamp is not hydrated.
func (c *Candidate) AgeAt(now time.Time) (time.Duration, bool) {
	if c.CreatedAt.IsZero() {
		return 0, false
	}
	return now.Sub(c.CreatedAt), true
}

// FilterResult is the kept/removed partition produced by one filter call.
// Kept and Removed together are always an exact partition of the input.
type FilterResult struct {
	Kept    []Candidate
	Removed []Candidate
}

// StageMetric records advisory timing and volume for one pipeline stage.
type StageMetric struct {
	// Stage is the stage name.
	Stage string `json:"stage"`

	// DurationMS is the stage duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`

	// Candidates is the candidate count after the stage completed.
	Candidates int `json:"candidates"`
}

// Result is the final bundle produced by one pipeline execution.
type Result struct {
	// Query is the fully hydrated query the pipeline ran with.
	Query *Query `json:"-"`

	// Retrieved is every candidate returned by the sources.
	Retrieved []Candidate `json:"-"`

	// Removed is every candidate dropped by pre- and post-selection filters.
	Removed []Candidate `json:"-"`

	// Selected is the final ranked page.
	Selected []Candidate `json:"selected"`

	// Stages holds advisory per-stage metrics in execution order.
	Stages []StageMetric `json:"stages"`

	// LatencyMS is the total pipeline latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`
}

// Source is a pluggable candidate retrieval strategy.
// Implementations must be read-only and idempotent: retrieving twice for the
// same query returns equivalent sets with no side effects.
type Source interface {
	// Name returns the source identifier (e.g. "in_network").
	Name() string

	// Enabled reports whether this source should run for the query.
	Enabled(q *Query) bool

	// Retrieve returns candidates tagged with this source's identity.
	Retrieve(ctx context.Context, q *Query) ([]Candidate, error)
}

// QueryHydrator enriches the query with viewer context before sourcing.
// Hydrators are expected to own disjoint fields of the patch.
type QueryHydrator interface {
	// Name returns the hydrator identifier.
	Name() string

	// Enabled reports whether this hydrator should run for the query.
	Enabled(q *Query) bool

	// Hydrate fetches the hydrator's slice of viewer context.
	Hydrate(ctx context.Context, q *Query) (*QueryPatch, error)
}

// CandidateHydrator fills missing attributes on sourced candidates.
// The returned slice must have the same cardinality as the input; the
// orchestrator discards outputs that violate this contract.
type CandidateHydrator interface {
	// Name returns the hydrator identifier.
	Name() string

	// Enabled reports whether this hydrator should run for the query.
	Enabled(q *Query) bool

	// Hydrate returns a same-length replacement slice with missing
	// attributes filled in. Complete candidates pass through untouched.
	Hydrate(ctx context.Context, q *Query, candidates []Candidate) ([]Candidate, error)
}

// Filter partitions a candidate set into kept and removed.
// Filters must be pure functions of their inputs: kept plus removed is an
// exact partition of the input with no new or duplicated items.
type Filter interface {
	// Name returns the filter identifier.
	Name() string

	// Enabled reports whether this filter should run for the query.
	Enabled(q *Query) bool

	// Filter partitions candidates into kept and removed.
	Filter(ctx context.Context, q *Query, candidates []Candidate) (FilterResult, error)
}

// Scorer annotates candidates with engagement probabilities and/or updates
// the final score. Scorers compose: each reads the score state left by the
// previous one, so list order is a configuration decision. Same cardinality
// contract as CandidateHydrator.
type Scorer interface {
	// Name returns the scorer identifier.
	Name() string

	// Enabled reports whether this scorer should run for the query.
	Enabled(q *Query) bool

	// Score returns a same-length replacement slice with score state updated.
	Score(ctx context.Context, q *Query, candidates []Candidate) ([]Candidate, error)
}

// Selector ranks the scored set and truncates it to the page size.
// Implementations must not mutate candidate content or the input slice.
type Selector interface {
	// Name returns the selector identifier.
	Name() string

	// Select returns the ranked, truncated candidate list.
	Select(q *Query, candidates []Candidate) []Candidate
}

// SideEffect is a fire-and-forget action on the final selected set.
// Effects run concurrently off the response path; failures are logged and
// never propagated to the caller.
type SideEffect interface {
	// Name returns the effect identifier.
	Name() string

	// Enabled reports whether this effect should run for the query.
	Enabled(q *Query) bool

	// Run performs the effect with the query and final selected set.
	Run(ctx context.Context, q *Query, selected []Candidate) error
}
