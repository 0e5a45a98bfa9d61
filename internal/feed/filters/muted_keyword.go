// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package filters

import (
	"context"
	"strings"

	"github.com/solshare/feedpipe/internal/feed"
)

// MutedKeyword removes posts whose caption, description, or tags contain a
// keyword the viewer has muted. Matching is a case-insensitive substring
// check. It activates only when query hydration produced a mute list.
type MutedKeyword struct{}

// NewMutedKeyword creates a muted-keyword filter.
func NewMutedKeyword() *MutedKeyword { return &MutedKeyword{} }

// Name implements feed.Filter.
func (f *MutedKeyword) Name() string { return "muted_keyword" }

// Enabled implements feed.Filter.
func (f *MutedKeyword) Enabled(q *feed.Query) bool { return len(q.MutedKeywords) > 0 }

// Filter implements feed.Filter.
func (f *MutedKeyword) Filter(_ context.Context, q *feed.Query, candidates []feed.Candidate) (feed.FilterResult, error) {
	var res feed.FilterResult
	for _, c := range candidates {
		if matchesMuted(&c, q.MutedKeywords) {
			res.Removed = append(res.Removed, c)
			continue
		}
		res.Kept = append(res.Kept, c)
	}
	return res, nil
}

func matchesMuted(c *feed.Candidate, keywords []string) bool {
	var b strings.Builder
	b.WriteString(c.Caption)
	b.WriteByte(' ')
	b.WriteString(c.Description)
	for _, tag := range c.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	text := strings.ToLower(b.String())

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
