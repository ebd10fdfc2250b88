// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package types

import (
	"strings"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
)

// ToolID identifies one verification tool. The set is closed: every ID has
// a matching local analyzer, and the remote service routes by the same IDs.
type ToolID string

const (
	ToolSocialMedia         ToolID = "social-media"
	ToolImageForensics      ToolID = "image-forensics"
	ToolSourceCredibility   ToolID = "source-credibility"
	ToolStatisticsValidator ToolID = "statistics-validator"
	ToolResearchAssistant   ToolID = "research-assistant"
	ToolRealtimeStream      ToolID = "realtime-stream"
)

// Tools returns all tool IDs in a stable order.
func Tools() []ToolID {
	return []ToolID{
		ToolSocialMedia,
		ToolImageForensics,
		ToolSourceCredibility,
		ToolStatisticsValidator,
		ToolResearchAssistant,
		ToolRealtimeStream,
	}
}

// Valid reports whether id is a recognized tool.
func (id ToolID) Valid() bool {
	switch id {
	case ToolSocialMedia, ToolImageForensics, ToolSourceCredibility,
		ToolStatisticsValidator, ToolResearchAssistant, ToolRealtimeStream:
		return true
	default:
		return false
	}
}

// ParseTool parses a case-insensitive string into a ToolID.
func ParseTool(s string) (ToolID, error) {
	id := ToolID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", verr.Errorf(verr.CodeDispatchToolNotFound, "unknown tool: %q", s)
	}
	return id, nil
}
