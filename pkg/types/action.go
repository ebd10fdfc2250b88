// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package types

import (
	"encoding/json"
	"time"
)

// QueuedAction is a state-mutating action captured while the client was
// offline, awaiting replay. Ordering across actions is FIFO.
type QueuedAction struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// TrackEvent is a usage/telemetry event reported by consumers of the core.
type TrackEvent struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NoticeKind classifies a user-facing notification.
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a message the core asks presentation-layer consumers to show.
type Notice struct {
	Message string     `json:"message"`
	Kind    NoticeKind `json:"kind"`
	At      time.Time  `json:"at"`
}
