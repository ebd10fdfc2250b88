// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package analyzer

import (
	"fmt"
	"net/url"

	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// queryLimit caps how much of the content seeds the search query.
const queryLimit = 100

// researchAssistant is the degenerate analyzer: it never judges the
// content. It returns a fixed neutral score and a set of search-engine
// links built from the content so the user can research it themselves.
type researchAssistant struct {
	engines []searchEngine
}

type searchEngine struct {
	name   string
	format string
}

func newResearchAssistant() *researchAssistant {
	return &researchAssistant{
		engines: []searchEngine{
			{name: "google_scholar", format: "https://scholar.google.com/scholar?q=%s"},
			{name: "google", format: "https://www.google.com/search?q=%s"},
			{name: "duckduckgo", format: "https://duckduckgo.com/?q=%s"},
			{name: "bing", format: "https://www.bing.com/search?q=%s"},
		},
	}
}

func (a *researchAssistant) Tool() types.ToolID { return types.ToolResearchAssistant }

func (a *researchAssistant) Analyze(content string) types.AnalysisResult {
	query := content
	if len(query) > queryLimit {
		query = query[:queryLimit]
	}
	escaped := url.QueryEscape(query)

	details := make([]types.Indicator, 0, len(a.engines))
	for _, e := range a.engines {
		details = append(details, types.Indicator{
			Type:     "search_link",
			Severity: types.SeverityLow,
			Detail:   fmt.Sprintf(e.format, escaped),
		})
	}

	return types.AnalysisResult{
		Tool:    types.ToolResearchAssistant,
		Score:   50,
		Verdict: types.VerdictInformational,
		Summary: fmt.Sprintf("🔎 Research starting points: %d sources to consult (local heuristic analysis)",
			len(details)),
		Details:    details,
		IsFallback: true,
	}
}
