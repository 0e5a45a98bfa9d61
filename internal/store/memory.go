// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/solshare/feedpipe/internal/feed"
)

// Memory is an in-memory ContentStore. It backs tests and single-node
// deployments; production deployments implement ContentStore over the
// platform's data services instead.
type Memory struct {
	mu       sync.RWMutex
	posts    map[string]feed.Candidate
	follows  map[string][]string
	blocks   map[string][]string
	likes    map[string][]string
	seen     map[string][]string
	keywords map[string][]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		posts:    make(map[string]feed.Candidate),
		follows:  make(map[string][]string),
		blocks:   make(map[string][]string),
		likes:    make(map[string][]string),
		seen:     make(map[string][]string),
		keywords: make(map[string][]string),
	}
}

// AddPost stores or replaces a post.
func (m *Memory) AddPost(c feed.Candidate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[c.ID] = c
}

// SetFollows records the creators a viewer follows.
func (m *Memory) SetFollows(viewer string, creators ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.follows[viewer] = creators
}

// SetBlocks records the creators a viewer has blocked.
func (m *Memory) SetBlocks(viewer string, creators ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[viewer] = creators
}

// SetLikes records the posts a viewer has liked.
func (m *Memory) SetLikes(viewer string, postIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.likes[viewer] = postIDs
}

// SetSeen records the posts a viewer has been shown.
func (m *Memory) SetSeen(viewer string, postIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[viewer] = postIDs
}

// SetMutedKeywords records a viewer's muted keywords.
func (m *Memory) SetMutedKeywords(viewer string, keywords ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keywords[viewer] = keywords
}

// PostsByCreators implements ContentStore.
func (m *Memory) PostsByCreators(_ context.Context, creators []string, limit int) ([]feed.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	want := make(map[string]struct{}, len(creators))
	for _, c := range creators {
		want[c] = struct{}{}
	}

	var out []feed.Candidate
	for _, p := range m.posts {
		if _, ok := want[p.Creator]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PostsByIDs implements ContentStore.
func (m *Memory) PostsByIDs(_ context.Context, ids []string) ([]feed.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]feed.Candidate, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// TrendingPosts implements ContentStore. Popularity is likes plus comments
// plus tips, a rough stand-in for the platform's trending signal.
func (m *Memory) TrendingPosts(_ context.Context, limit int) ([]feed.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]feed.Candidate, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		pi := float64(out[i].Likes+out[i].Comments) + out[i].TipsReceived
		pj := float64(out[j].Likes+out[j].Comments) + out[j].TipsReceived
		if pi != pj {
			return pi > pj
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FollowedCreators implements ContentStore.
func (m *Memory) FollowedCreators(_ context.Context, viewer string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.follows[viewer]...), nil
}

// BlockedCreators implements ContentStore.
func (m *Memory) BlockedCreators(_ context.Context, viewer string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.blocks[viewer]...), nil
}

// LikedPostIDs implements ContentStore.
func (m *Memory) LikedPostIDs(_ context.Context, viewer string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.likes[viewer]...), nil
}

// SeenPostIDs implements ContentStore.
func (m *Memory) SeenPostIDs(_ context.Context, viewer string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.seen[viewer]...), nil
}

// MutedKeywords implements ContentStore.
func (m *Memory) MutedKeywords(_ context.Context, viewer string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.keywords[viewer]...), nil
}
