// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoringProfiles() []*profile {
	return []*profile{
		newSocialMedia(),
		newImageForensics(),
		newSourceCredibility(),
		newStatisticsValidator(),
		newRealtimeStream(),
	}
}

func TestProfiles_BandsAreTotalAndNonOverlapping(t *testing.T) {
	for _, p := range scoringProfiles() {
		t.Run(string(p.tool), func(t *testing.T) {
			require.NotEmpty(t, p.bands)

			// Bands are ordered by strictly descending floor, and the
			// lowest band starts at the clamp floor, so every score in
			// [floor, ceiling] selects exactly one band.
			for i := 1; i < len(p.bands); i++ {
				assert.Greater(t, p.bands[i-1].min, p.bands[i].min)
			}
			assert.Equal(t, p.floor, p.bands[len(p.bands)-1].min)

			for score := p.floor; score <= p.ceiling; score++ {
				matches := 0
				for i, b := range p.bands {
					upper := p.ceiling + 1
					if i > 0 {
						upper = p.bands[i-1].min
					}
					if score >= b.min && score < upper {
						matches++
					}
				}
				assert.Equal(t, 1, matches, "score %d in %s must select exactly one band", score, p.tool)
			}
		})
	}
}

func TestProfiles_BaselinesAndBounds(t *testing.T) {
	for _, p := range scoringProfiles() {
		assert.GreaterOrEqual(t, p.baseline, p.floor, "%s baseline below floor", p.tool)
		assert.LessOrEqual(t, p.baseline, p.ceiling, "%s baseline above ceiling", p.tool)
	}

	assert.Equal(t, 70, newSocialMedia().baseline)
	assert.Equal(t, 70, newImageForensics().baseline)
	assert.Equal(t, 70, newStatisticsValidator().baseline)
	assert.Equal(t, 70, newRealtimeStream().baseline)
	assert.Equal(t, 50, newSourceCredibility().baseline)
}

func TestProfiles_DeltasWithinDeclaredRange(t *testing.T) {
	for _, p := range scoringProfiles() {
		for _, r := range p.rules {
			assert.GreaterOrEqual(t, r.delta, -25, "%s/%s delta too negative", p.tool, r.indicator)
			assert.LessOrEqual(t, r.delta, 10, "%s/%s delta too positive", p.tool, r.indicator)
			assert.NotZero(t, r.delta)
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, clamp(-5, 5, 100))
	assert.Equal(t, 100, clamp(120, 5, 100))
	assert.Equal(t, 50, clamp(50, 5, 100))
}
