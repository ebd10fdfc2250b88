// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

// Package queue persists actions attempted while offline and replays
// them, in order, once connectivity returns.
package queue

import (
	"context"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// Store persists the ordered action sequence. Save replaces the whole
// sequence atomically; the queue is small and mutated rarely, so whole-
// sequence writes keep replay ordering trivially correct.
type Store interface {
	Load(ctx context.Context) ([]types.QueuedAction, error)
	Save(ctx context.Context, actions []types.QueuedAction) error
	Close() error
}

// OpenStore creates a Store for the configured backend.
func OpenStore(backend, path string) (Store, error) {
	switch backend {
	case "sqlite":
		return NewSQLiteStore(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, verr.Errorf(verr.CodeQueueBackendUnsupported,
			"unsupported queue backend %q (want sqlite or memory)", backend)
	}
}
