// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package queue

import (
	"context"
	"sync"

	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// MemoryStore is an in-process Store for tests and ephemeral deployments.
type MemoryStore struct {
	mu      sync.Mutex
	actions []types.QueuedAction
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]types.QueuedAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.QueuedAction(nil), s.actions...), nil
}

func (s *MemoryStore) Save(_ context.Context, actions []types.QueuedAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append([]types.QueuedAction(nil), actions...)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
