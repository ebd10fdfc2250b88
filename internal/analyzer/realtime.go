// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package analyzer

import "github.com/seetsele/vrsystems-sub001/pkg/types"

// newRealtimeStream scores breaking-news stream content, where claims
// circulate faster than confirmation.
func newRealtimeStream() *profile {
	return &profile{
		tool:     types.ToolRealtimeStream,
		headline: "Live stream risk",
		baseline: 70,
		floor:    5,
		ceiling:  100,
		rules: []rule{
			{
				indicator: "speculation",
				severity:  types.SeverityHigh,
				delta:     -20,
				detail:    "speculative language presented as fact",
				keywords:  []string{"allegedly", "rumor", "rumour", "speculation"},
			},
			{
				indicator: "unverified_report",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "report is explicitly unverified",
				keywords:  []string{"unverified", "unconfirmed", "cannot confirm"},
			},
			{
				indicator: "single_source",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "only one source carries the claim",
				keywords:  []string{"single source", "only one report", "sole witness"},
			},
			{
				indicator: "developing_story",
				severity:  types.SeverityLow,
				delta:     -10,
				detail:    "early reporting on developing events is often revised",
				keywords:  []string{"developing story", "details are scarce", "situation is unclear"},
			},
			{
				indicator: "secondhand_account",
				severity:  types.SeverityLow,
				delta:     -10,
				detail:    "secondhand account without direct observation",
				keywords:  []string{"heard that", "someone said", "word is"},
			},
			{
				indicator: "official_confirmation",
				severity:  types.SeverityLow,
				delta:     10,
				detail:    "authorities have confirmed the report",
				keywords:  []string{"officials confirmed", "police confirmed", "confirmed by authorities"},
			},
			{
				indicator: "live_documentation",
				severity:  types.SeverityLow,
				delta:     5,
				detail:    "direct footage accompanies the claim",
				keywords:  []string{"live footage", "livestream", "on camera"},
			},
		},
		bands: []band{
			{min: 60, verdict: types.VerdictLowRisk, emoji: "✅"},
			{min: 40, verdict: types.VerdictMediumRisk, emoji: "⚠️"},
			{min: 5, verdict: types.VerdictHighRisk, emoji: "🚨"},
		},
	}
}
