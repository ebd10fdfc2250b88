// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package types

// Severity grades how strongly an indicator signals a credibility problem
// (or, for positive indicators, how much support it lends).
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Verdict is the categorical label derived from a numeric score through
// fixed per-tool threshold bands. It is never stored apart from the score
// that produced it.
type Verdict string

const (
	VerdictLowRisk    Verdict = "low_risk"
	VerdictMediumRisk Verdict = "medium_risk"
	VerdictHighRisk   Verdict = "high_risk"

	VerdictCredible         Verdict = "credible"
	VerdictMixedCredibility Verdict = "mixed_credibility"
	VerdictLowCredibility   Verdict = "low_credibility"

	VerdictSound        Verdict = "sound"
	VerdictQuestionable Verdict = "questionable"
	VerdictMisleading   Verdict = "misleading"

	VerdictLikelyAuthentic   Verdict = "likely_authentic"
	VerdictInconclusive      Verdict = "inconclusive"
	VerdictLikelyManipulated Verdict = "likely_manipulated"

	VerdictInformational Verdict = "informational"
	VerdictUnavailable   Verdict = "unavailable"
)

// Indicator is a single finding produced by an analyzer: a named signal,
// its severity, and a human-readable detail.
type Indicator struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail"`
}

// AnalysisResult is the outcome of one verification call, whether computed
// remotely or by a local fallback analyzer. Score is clamped to the
// producing analyzer's bounds before the result leaves the analyzer.
type AnalysisResult struct {
	Tool             ToolID      `json:"tool"`
	Score            int         `json:"score"`
	Verdict          Verdict     `json:"verdict"`
	Summary          string      `json:"summary"`
	Details          []Indicator `json:"details"`
	ProcessingTimeMs int64       `json:"processing_time_ms"`
	IsFallback       bool        `json:"is_fallback"`
	Unavailable      bool        `json:"unavailable,omitempty"`
}
