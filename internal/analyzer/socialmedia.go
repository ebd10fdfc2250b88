// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package analyzer

import (
	"regexp"

	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

var followerCountPattern = regexp.MustCompile(`\d+(?:\.\d+)?[km]?\s*followers`)

// newSocialMedia scores virality and manipulation patterns in
// social-media posts. Higher scores mean lower risk.
func newSocialMedia() *profile {
	return &profile{
		tool:     types.ToolSocialMedia,
		headline: "Social media risk",
		baseline: 70,
		floor:    5,
		ceiling:  100,
		rules: []rule{
			{
				indicator: "urgency_trigger",
				severity:  types.SeverityHigh,
				delta:     -25,
				detail:    "urgency language pressures sharing before verification",
				keywords:  []string{"breaking", "urgent", "act now", "before it's deleted"},
			},
			{
				indicator: "new_account",
				severity:  types.SeverityHigh,
				delta:     -20,
				detail:    "content originates from a recently created account",
				keywords:  []string{"new account", "account created", "joined this week"},
			},
			{
				indicator: "bot_cluster",
				severity:  types.SeverityHigh,
				delta:     -20,
				detail:    "coordinated or automated account activity",
				keywords:  []string{"bot accounts", "automated accounts", "copy-pasted"},
			},
			{
				indicator: "viral_spread",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "rapid spread outpaces fact-checking",
				keywords:  []string{"trending", "viral", "retweeted", "going around"},
			},
			{
				indicator: "follower_anomaly",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "follower count inconsistent with account history",
				pattern:   followerCountPattern,
			},
			{
				indicator: "emotional_bait",
				severity:  types.SeverityMedium,
				delta:     -10,
				detail:    "emotionally charged framing discourages scrutiny",
				keywords:  []string{"outrage", "shocking", "unbelievable", "you won't believe"},
			},
			{
				indicator: "engagement_farm",
				severity:  types.SeverityLow,
				delta:     -10,
				detail:    "engagement-farming call to action",
				keywords:  []string{"like and share", "tag a friend", "follow for more"},
			},
			{
				indicator: "verified_account",
				severity:  types.SeverityLow,
				delta:     10,
				detail:    "posted from a verified account",
				keywords:  []string{"verified account", "official account"},
			},
		},
		bands: []band{
			{min: 60, verdict: types.VerdictLowRisk, emoji: "✅"},
			{min: 40, verdict: types.VerdictMediumRisk, emoji: "⚠️"},
			{min: 5, verdict: types.VerdictHighRisk, emoji: "🚨"},
		},
	}
}
