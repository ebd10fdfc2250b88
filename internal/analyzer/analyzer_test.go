// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package analyzer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/seetsele/vrsystems-sub001/internal/analyzer"
	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indicatorTypes(res types.AnalysisResult) []string {
	out := make([]string, 0, len(res.Details))
	for _, d := range res.Details {
		out = append(out, d.Type)
	}
	return out
}

func TestRegistry_CoversAllTools(t *testing.T) {
	reg := analyzer.NewRegistry()
	assert.Equal(t, types.Tools(), reg.Tools())

	for _, id := range types.Tools() {
		a, err := reg.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, a.Tool())
	}
}

func TestRegistry_UnknownTool(t *testing.T) {
	reg := analyzer.NewRegistry()
	_, err := reg.Get(types.ToolID("horoscope"))
	require.Error(t, err)
	assert.True(t, verr.HasCode(err, verr.CodeDispatchToolNotFound))
}

func TestAnalyze_IsPure(t *testing.T) {
	reg := analyzer.NewRegistry()
	content := "BREAKING: unverified rumor, shared by a new account, p-value = 0.2, according to a blog"

	for _, id := range types.Tools() {
		a, err := reg.Get(id)
		require.NoError(t, err)

		first := a.Analyze(content)
		second := a.Analyze(content)
		assert.Equal(t, first, second, "%s must be deterministic", id)
	}
}

func TestAnalyze_ScoresStayWithinBounds(t *testing.T) {
	bounds := map[types.ToolID][2]int{
		types.ToolSocialMedia:         {5, 100},
		types.ToolImageForensics:      {10, 95},
		types.ToolSourceCredibility:   {20, 95},
		types.ToolStatisticsValidator: {20, 90},
		types.ToolRealtimeStream:      {5, 100},
	}

	// Adversarial inputs: every negative keyword at once, every positive
	// keyword at once, empty, and noise.
	samples := []string{
		"",
		"nothing suspicious here at all",
		"BREAKING urgent act now new account bot accounts trending viral 999k followers outrage shocking like and share",
		"ai-generated deepfake photoshopped no exif old photo inconsistent lighting satire blog forum post sources say anonymous source",
		"allegedly rumor unverified single source developing story heard that p-value = 0.9 100% of guaranteed n=5 up to proves that",
		"verified account reverse image search original photo reuters associated press new york times court filing according to peer-reviewed margin of error p = 0.001 officials confirmed live footage",
		strings.Repeat("trending viral breaking ", 50),
	}

	reg := analyzer.NewRegistry()
	for id, b := range bounds {
		a, err := reg.Get(id)
		require.NoError(t, err)
		for i, content := range samples {
			res := a.Analyze(content)
			assert.GreaterOrEqual(t, res.Score, b[0], "%s sample %d below floor", id, i)
			assert.LessOrEqual(t, res.Score, b[1], "%s sample %d above ceiling", id, i)
			assert.True(t, res.IsFallback)
			assert.Equal(t, id, res.Tool)
			assert.NotEmpty(t, res.Verdict)
			assert.NotEmpty(t, res.Summary)
		}
	}
}

func TestSocialMedia_ViralBreakingPost(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, err := reg.Get(types.ToolSocialMedia)
	require.NoError(t, err)

	res := a.Analyze("BREAKING: this is trending, shared by a new account with 500k followers")

	found := indicatorTypes(res)
	assert.Contains(t, found, "viral_spread")
	assert.Contains(t, found, "new_account")
	assert.Contains(t, found, "urgency_trigger")
	assert.Contains(t, found, "follower_anomaly")

	// 70 - 25 - 20 - 15 - 15 = -5, clamped to the floor of 5.
	assert.Equal(t, 5, res.Score)
	assert.Equal(t, types.VerdictHighRisk, res.Verdict)
	assert.Contains(t, res.Summary, "🚨")
	assert.True(t, res.IsFallback)
}

func TestSocialMedia_CleanPostIsLowRisk(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, _ := reg.Get(types.ToolSocialMedia)

	res := a.Analyze("Our quarterly report is now available on the website.")
	assert.Equal(t, 70, res.Score)
	assert.Equal(t, types.VerdictLowRisk, res.Verdict)
	assert.Empty(t, res.Details)
	assert.Contains(t, res.Summary, "✅")
}

func TestStatistics_WeakSignificance(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, err := reg.Get(types.ToolStatisticsValidator)
	require.NoError(t, err)

	res := a.Analyze("Study found p-value = 0.20")

	require.Len(t, res.Details, 1)
	assert.Equal(t, "weak_significance", res.Details[0].Type)
	assert.Equal(t, 50, res.Score, "baseline 70 reduced by 20")
	assert.Equal(t, types.VerdictQuestionable, res.Verdict)
}

func TestStatistics_StrongSignificanceRewarded(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, _ := reg.Get(types.ToolStatisticsValidator)

	res := a.Analyze("Peer-reviewed trial reports p = 0.001 with a narrow confidence interval")
	found := indicatorTypes(res)
	assert.Contains(t, found, "strong_significance")
	assert.Contains(t, found, "peer_reviewed")
	assert.Contains(t, found, "uncertainty_reported")
	assert.NotContains(t, found, "weak_significance")

	// 70 + 10 + 10 + 5 = 95, clamped to the ceiling of 90.
	assert.Equal(t, 90, res.Score)
	assert.Equal(t, types.VerdictSound, res.Verdict)
}

func TestStatistics_TinySample(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, _ := reg.Get(types.ToolStatisticsValidator)

	res := a.Analyze("In our survey (n=12) every respondent agreed")
	assert.Contains(t, indicatorTypes(res), "tiny_sample")

	res = a.Analyze("A robust study with n = 4800 participants")
	assert.NotContains(t, indicatorTypes(res), "tiny_sample")
}

func TestSourceCredibility_MixedSources(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, err := reg.Get(types.ToolSourceCredibility)
	require.NoError(t, err)

	res := a.Analyze("Reported by Reuters and a random blog")

	found := indicatorTypes(res)
	assert.Contains(t, found, "tier1_source")
	assert.Contains(t, found, "low_credibility_source")
	require.Len(t, res.Details, 2)

	// 50 + 20 - 15 = 55.
	assert.Equal(t, 55, res.Score)
	assert.Equal(t, types.VerdictMixedCredibility, res.Verdict)
}

func TestImageForensics_AIGeneratedClaim(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, _ := reg.Get(types.ToolImageForensics)

	res := a.Analyze("This AI-generated photo was made with Midjourney, metadata stripped")
	found := indicatorTypes(res)
	assert.Contains(t, found, "ai_generated")
	assert.Contains(t, found, "metadata_stripped")

	// 70 - 25 - 15 = 30.
	assert.Equal(t, 30, res.Score)
	assert.Equal(t, types.VerdictLikelyManipulated, res.Verdict)
}

func TestRealtimeStream_SpeculativeReport(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, _ := reg.Get(types.ToolRealtimeStream)

	res := a.Analyze("Developing story: allegedly an explosion, unconfirmed, from a single source")
	found := indicatorTypes(res)
	assert.Contains(t, found, "speculation")
	assert.Contains(t, found, "unverified_report")
	assert.Contains(t, found, "single_source")
	assert.Contains(t, found, "developing_story")

	// 70 - 20 - 15 - 15 - 10 = 10.
	assert.Equal(t, 10, res.Score)
	assert.Equal(t, types.VerdictHighRisk, res.Verdict)
}

func TestResearchAssistant_BuildsSearchLinks(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, err := reg.Get(types.ToolResearchAssistant)
	require.NoError(t, err)

	res := a.Analyze("does coffee cause cancer?")

	assert.Equal(t, 50, res.Score)
	assert.Equal(t, types.VerdictInformational, res.Verdict)
	require.Len(t, res.Details, 4)
	for _, d := range res.Details {
		assert.Equal(t, "search_link", d.Type)
		assert.Contains(t, d.Detail, "does+coffee+cause+cancer%3F")
	}
	assert.Contains(t, res.Details[0].Detail, "scholar.google.com")
}

func TestResearchAssistant_TruncatesQueryTo100Chars(t *testing.T) {
	reg := analyzer.NewRegistry()
	a, _ := reg.Get(types.ToolResearchAssistant)

	long := strings.Repeat("a", 150)
	res := a.Analyze(long)

	want := fmt.Sprintf("q=%s", strings.Repeat("a", 100))
	for _, d := range res.Details {
		assert.Contains(t, d.Detail, want)
		assert.NotContains(t, d.Detail, strings.Repeat("a", 101))
	}
}
