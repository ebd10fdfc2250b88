// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package analyzer

import (
	"regexp"
	"strconv"

	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

var (
	pValuePattern     = regexp.MustCompile(`p[\s-]*(?:value)?\s*[=<>≤]\s*(\d*\.?\d+)`)
	sampleSizePattern = regexp.MustCompile(`\bn\s*=\s*(\d+)`)
)

// pValueIn extracts the first reported p-value, if any.
func pValueIn(lower string) (float64, bool) {
	m := pValuePattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// newStatisticsValidator scores how soundly the content uses statistics.
func newStatisticsValidator() *profile {
	return &profile{
		tool:     types.ToolStatisticsValidator,
		headline: "Statistical soundness",
		baseline: 70,
		floor:    20,
		ceiling:  90,
		rules: []rule{
			{
				indicator: "weak_significance",
				severity:  types.SeverityHigh,
				delta:     -20,
				detail:    "reported p-value exceeds the 0.05 significance threshold",
				match: func(lower string) bool {
					v, ok := pValueIn(lower)
					return ok && v > 0.05
				},
			},
			{
				indicator: "correlation_causation",
				severity:  types.SeverityHigh,
				delta:     -15,
				detail:    "causal language applied to correlational findings",
				keywords:  []string{"proves that", "is caused by", "leads directly to"},
			},
			{
				indicator: "absolute_claim",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "absolute claims rarely survive real data",
				keywords:  []string{"100% of", "guaranteed", "every single", "without exception"},
			},
			{
				indicator: "tiny_sample",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "sample size below 30 limits generalization",
				match: func(lower string) bool {
					m := sampleSizePattern.FindStringSubmatch(lower)
					if m == nil {
						return false
					}
					n, err := strconv.Atoi(m[1])
					return err == nil && n < 30
				},
			},
			{
				indicator: "cherry_picked_range",
				severity:  types.SeverityLow,
				delta:     -10,
				detail:    "open-ended ranges overstate the typical case",
				keywords:  []string{"up to", "as much as", "as many as"},
			},
			{
				indicator: "strong_significance",
				severity:  types.SeverityLow,
				delta:     10,
				detail:    "reported p-value is at or below 0.01",
				match: func(lower string) bool {
					v, ok := pValueIn(lower)
					return ok && v <= 0.01
				},
			},
			{
				indicator: "peer_reviewed",
				severity:  types.SeverityLow,
				delta:     10,
				detail:    "findings attributed to peer-reviewed work",
				keywords:  []string{"peer-reviewed", "peer reviewed"},
			},
			{
				indicator: "uncertainty_reported",
				severity:  types.SeverityLow,
				delta:     5,
				detail:    "uncertainty is reported alongside the estimate",
				keywords:  []string{"margin of error", "confidence interval"},
			},
		},
		bands: []band{
			{min: 65, verdict: types.VerdictSound, emoji: "✅"},
			{min: 40, verdict: types.VerdictQuestionable, emoji: "⚠️"},
			{min: 20, verdict: types.VerdictMisleading, emoji: "🚨"},
		},
	}
}
