// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

// Package analyzer holds the local heuristic scoring engine used when
// the remote verification service is unavailable. Every analyzer is a
// pure function over the content string: fixed rule tables, fixed
// deltas, fixed clamp bounds and verdict bands, no I/O.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// Analyzer produces a locally computed AnalysisResult for one tool.
type Analyzer interface {
	Tool() types.ToolID
	Analyze(content string) types.AnalysisResult
}

// rule is one lexical indicator: when it matches the case-normalized
// content it appends a finding and applies its signed score delta.
// Exactly one of keywords, pattern, or match is set.
type rule struct {
	indicator string
	severity  types.Severity
	delta     int
	detail    string

	keywords []string
	pattern  *regexp.Regexp
	match    func(string) bool
}

func (r rule) matches(lower string) bool {
	switch {
	case r.match != nil:
		return r.match(lower)
	case r.pattern != nil:
		return r.pattern.MatchString(lower)
	default:
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

// band maps a score floor to a verdict. Bands are ordered by descending
// floor; the last band has floor equal to the clamp floor so every score
// in range lands in exactly one band.
type band struct {
	min     int
	verdict types.Verdict
	emoji   string
}

// profile is the fixed scoring table for one tool.
type profile struct {
	tool     types.ToolID
	headline string
	baseline int
	floor    int
	ceiling  int
	rules    []rule
	bands    []band
}

func (p *profile) Tool() types.ToolID { return p.tool }

// Analyze runs the scoring pipeline: baseline, ordered rule scan over
// the lowercased content, clamp, verdict band, summary. Deterministic:
// identical input yields identical output.
func (p *profile) Analyze(content string) types.AnalysisResult {
	lower := strings.ToLower(content)

	score := p.baseline
	var details []types.Indicator
	for _, r := range p.rules {
		if !r.matches(lower) {
			continue
		}
		details = append(details, types.Indicator{
			Type:     r.indicator,
			Severity: r.severity,
			Detail:   r.detail,
		})
		score += r.delta
	}

	score = clamp(score, p.floor, p.ceiling)
	verdict, emoji := p.verdictFor(score)

	return types.AnalysisResult{
		Tool:       p.tool,
		Score:      score,
		Verdict:    verdict,
		Summary:    summarize(emoji, p.headline, verdict, len(details)),
		Details:    details,
		IsFallback: true,
	}
}

func (p *profile) verdictFor(score int) (types.Verdict, string) {
	for _, b := range p.bands {
		if score >= b.min {
			return b.verdict, b.emoji
		}
	}
	// Bands cover the clamp range; a clamped score always lands above.
	last := p.bands[len(p.bands)-1]
	return last.verdict, last.emoji
}

func summarize(emoji, headline string, verdict types.Verdict, findings int) string {
	noun := "signals"
	if findings == 1 {
		noun = "signal"
	}
	return fmt.Sprintf("%s %s: %s — %d %s detected (local heuristic analysis)",
		emoji, headline, verdict, findings, noun)
}

func clamp(score, floor, ceiling int) int {
	if score < floor {
		return floor
	}
	if score > ceiling {
		return ceiling
	}
	return score
}

// Registry is the closed lookup table from tool ID to analyzer, built
// once at construction so an unknown tool is an explicit error rather
// than a silent nil.
type Registry struct {
	analyzers map[types.ToolID]Analyzer
}

// NewRegistry builds the registry over the full built-in analyzer set.
func NewRegistry() *Registry {
	r := &Registry{analyzers: make(map[types.ToolID]Analyzer)}
	for _, a := range []Analyzer{
		newSocialMedia(),
		newImageForensics(),
		newSourceCredibility(),
		newStatisticsValidator(),
		newResearchAssistant(),
		newRealtimeStream(),
	} {
		r.analyzers[a.Tool()] = a
	}
	return r
}

// Get returns the analyzer registered for the tool.
func (r *Registry) Get(tool types.ToolID) (Analyzer, error) {
	a, ok := r.analyzers[tool]
	if !ok {
		return nil, verr.Errorf(verr.CodeDispatchToolNotFound, "no analyzer registered for tool %q", tool)
	}
	return a, nil
}

// Tools returns the registered tool IDs in the canonical order.
func (r *Registry) Tools() []types.ToolID {
	ids := make([]types.ToolID, 0, len(r.analyzers))
	for _, id := range types.Tools() {
		if _, ok := r.analyzers[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
