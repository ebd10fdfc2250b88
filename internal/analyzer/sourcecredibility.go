// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package analyzer

import "github.com/seetsele/vrsystems-sub001/pkg/types"

// newSourceCredibility scores the outlets and attribution cited in the
// content. Unlike the risk analyzers it starts neutral: the score moves
// up for reputable sourcing and down for weak sourcing.
func newSourceCredibility() *profile {
	return &profile{
		tool:     types.ToolSourceCredibility,
		headline: "Source credibility",
		baseline: 50,
		floor:    20,
		ceiling:  95,
		rules: []rule{
			{
				indicator: "tier1_source",
				severity:  types.SeverityLow,
				delta:     20,
				detail:    "cites a tier-1 wire service or broadcaster",
				keywords:  []string{"reuters", "associated press", "agence france-presse", "bbc"},
			},
			{
				indicator: "tier2_source",
				severity:  types.SeverityLow,
				delta:     10,
				detail:    "cites an established national outlet",
				keywords:  []string{"new york times", "washington post", "the guardian", "npr"},
			},
			{
				indicator: "primary_document",
				severity:  types.SeverityLow,
				delta:     10,
				detail:    "references a primary document",
				keywords:  []string{"court filing", "official transcript", "government report"},
			},
			{
				indicator: "citation_present",
				severity:  types.SeverityLow,
				delta:     5,
				detail:    "claims carry explicit attribution",
				keywords:  []string{"according to", "as reported in", "cited in"},
			},
			{
				indicator: "satire_outlet",
				severity:  types.SeverityHigh,
				delta:     -20,
				detail:    "content traces to a satire outlet",
				keywords:  []string{"satire", "the onion", "babylon bee"},
			},
			{
				indicator: "low_credibility_source",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "relies on a low-credibility source",
				keywords:  []string{"blog", "forum post", "chain message", "telegram channel"},
			},
			{
				indicator: "unattributed_claim",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "claims lack any named source",
				keywords:  []string{"sources say", "people are saying", "it is said"},
			},
			{
				indicator: "anonymous_claim",
				severity:  types.SeverityMedium,
				delta:     -10,
				detail:    "attribution is anonymous",
				keywords:  []string{"anonymous source", "unnamed official", "insider claims"},
			},
		},
		bands: []band{
			{min: 70, verdict: types.VerdictCredible, emoji: "✅"},
			{min: 45, verdict: types.VerdictMixedCredibility, emoji: "⚠️"},
			{min: 20, verdict: types.VerdictLowCredibility, emoji: "🚨"},
		},
	}
}
