// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	page      *Page
	expiresAt time.Time
}

// MemoryStore is an in-process PageStore with TTL expiration. Expired
// entries are dropped lazily on read and swept on write, so the map stays
// bounded by the active viewer set without a background goroutine.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	writes int // sweep every N writes
}

// NewMemoryStore creates an in-memory page store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements PageStore.
func (s *MemoryStore) Get(_ context.Context, viewer string) (*Page, error) {
	s.mu.RLock()
	e, ok := s.entries[viewer]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a Set may have raced in.
		if cur, ok := s.entries[viewer]; ok && s.now().After(cur.expiresAt) {
			delete(s.entries, viewer)
		}
		s.mu.Unlock()
		return nil, ErrMiss
	}
	return e.page, nil
}

// Set implements PageStore.
func (s *MemoryStore) Set(_ context.Context, viewer string, page *Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[viewer] = memoryEntry{page: page, expiresAt: s.now().Add(s.ttl)}

	s.writes++
	if s.writes%256 == 0 {
		now := s.now()
		for k, e := range s.entries {
			if now.After(e.expiresAt) {
				delete(s.entries, k)
			}
		}
	}
	return nil
}

// Delete implements PageStore.
func (s *MemoryStore) Delete(_ context.Context, viewer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, viewer)
	return nil
}

// Close implements PageStore.
func (s *MemoryStore) Close() error { return nil }

// Len returns the number of live entries, for tests and diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
