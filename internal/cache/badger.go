// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const pageKeyPrefix = "page:"

// BadgerStore is a durable PageStore backed by BadgerDB. Pages survive
// restarts, so a freshly deployed node can serve cached first pages
// immediately. Expiration is delegated to badger's native entry TTL.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerStore opens (or creates) a badger-backed page store at path.
func NewBadgerStore(path string, ttl time.Duration, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{logger.With().Str("component", "page_cache").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open page cache at %s: %w", path, err)
	}
	return &BadgerStore{db: db, ttl: ttl}, nil
}

// Get implements PageStore.
func (s *BadgerStore) Get(_ context.Context, viewer string) (*Page, error) {
	var page Page
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(pageKeyPrefix + viewer))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMiss
		}
		if err != nil {
			return fmt.Errorf("get page: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &page)
		})
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Set implements PageStore.
func (s *BadgerStore) Set(_ context.Context, viewer string, page *Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(pageKeyPrefix+viewer), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
}

// Delete implements PageStore.
func (s *BadgerStore) Delete(_ context.Context, viewer string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(pageKeyPrefix + viewer))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close implements PageStore.
func (s *BadgerStore) Close() error { return s.db.Close() }

// badgerLogger adapts zerolog to badger's logger interface.
type badgerLogger struct {
	l zerolog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error().Msgf(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn().Msgf(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug().Msgf(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug().Msgf(format, args...)
}
