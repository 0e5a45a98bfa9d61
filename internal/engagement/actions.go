// Feedpipe - Candidate Ranking Pipeline for the SolShare Feed
// Copyright 2026 SolShare Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/solshare/feedpipe

package engagement

// Engagement actions the prediction model scores. Positive actions raise a
// post's ranking, negative ones bury it.
const (
	ActionLike          = "like"
	ActionComment       = "comment"
	ActionShare         = "share"
	ActionSave          = "save"
	ActionTip           = "tip"
	ActionSubscribe     = "subscribe"
	ActionFollowCreator = "follow_creator"
	ActionDwell         = "dwell"
	ActionProfileClick  = "profile_click"
	ActionNotInterested = "not_interested"
	ActionMuteCreator   = "mute_creator"
	ActionReport        = "report"
)

// Actions lists every scored action in a stable order.
var Actions = []string{
	ActionLike,
	ActionComment,
	ActionShare,
	ActionSave,
	ActionTip,
	ActionSubscribe,
	ActionFollowCreator,
	ActionDwell,
	ActionProfileClick,
	ActionNotInterested,
	ActionMuteCreator,
	ActionReport,
}

// DefaultWeights is the static ranking weight table, used whenever the
// engagement service cannot supply live weights. Monetization actions
// (tips, subscriptions) weigh heaviest; trust-and-safety actions carry
// strong negative weight.
var DefaultWeights = map[string]float64{
	ActionLike:          1.0,
	ActionComment:       1.5,
	ActionShare:         2.0,
	ActionSave:          1.5,
	ActionTip:           3.0,
	ActionSubscribe:     4.0,
	ActionFollowCreator: 2.5,
	ActionDwell:         0.5,
	ActionProfileClick:  0.5,
	ActionNotInterested: -3.0,
	ActionMuteCreator:   -5.0,
	ActionReport:        -10.0,
}

// CopyDefaultWeights returns a mutable copy of the static weight table.
func CopyDefaultWeights() map[string]float64 {
	out := make(map[string]float64, len(DefaultWeights))
	for k, v := range DefaultWeights {
		out[k] = v
	}
	return out
}
