// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package analyzer

import "github.com/seetsele/vrsystems-sub001/pkg/types"

// newImageForensics scores textual claims about an image's provenance.
// Higher scores mean the image description is more likely authentic.
func newImageForensics() *profile {
	return &profile{
		tool:     types.ToolImageForensics,
		headline: "Image authenticity",
		baseline: 70,
		floor:    10,
		ceiling:  95,
		rules: []rule{
			{
				indicator: "ai_generated",
				severity:  types.SeverityHigh,
				delta:     -25,
				detail:    "references to generative-AI tooling",
				keywords:  []string{"ai-generated", "ai generated", "midjourney", "stable diffusion", "dall-e"},
			},
			{
				indicator: "deepfake_reference",
				severity:  types.SeverityHigh,
				delta:     -25,
				detail:    "deepfake or face-swap terminology",
				keywords:  []string{"deepfake", "face swap", "face-swap"},
			},
			{
				indicator: "digital_manipulation",
				severity:  types.SeverityHigh,
				delta:     -20,
				detail:    "signs of digital editing",
				keywords:  []string{"photoshopped", "photoshop", "doctored", "edited image"},
			},
			{
				indicator: "metadata_stripped",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "provenance metadata removed",
				keywords:  []string{"metadata stripped", "no exif", "exif removed"},
			},
			{
				indicator: "recycled_image",
				severity:  types.SeverityMedium,
				delta:     -15,
				detail:    "image reused outside its original context",
				keywords:  []string{"old photo", "years ago", "resurfaced", "recirculating"},
			},
			{
				indicator: "lighting_mismatch",
				severity:  types.SeverityMedium,
				delta:     -10,
				detail:    "inconsistent lighting or shadows reported",
				keywords:  []string{"inconsistent lighting", "shadow mismatch", "lighting doesn't match"},
			},
			{
				indicator: "reverse_match",
				severity:  types.SeverityLow,
				delta:     10,
				detail:    "reverse image search corroborates the source",
				keywords:  []string{"reverse image search", "tineye"},
			},
			{
				indicator: "original_context",
				severity:  types.SeverityLow,
				delta:     5,
				detail:    "original, unedited source referenced",
				keywords:  []string{"original photo", "unedited", "camera original"},
			},
		},
		bands: []band{
			{min: 65, verdict: types.VerdictLikelyAuthentic, emoji: "✅"},
			{min: 40, verdict: types.VerdictInconclusive, emoji: "⚠️"},
			{min: 10, verdict: types.VerdictLikelyManipulated, emoji: "🚨"},
		},
	}
}
