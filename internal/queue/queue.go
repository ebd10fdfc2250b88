// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// Handler replays one action type during queue processing.
type Handler func(ctx context.Context, action types.QueuedAction) error

// Queue is a durable FIFO of actions captured while offline. Replay is
// strictly ordered and single-flight: a transient failure leaves the
// failed action at the front and stops the run, so nothing behind it
// can be delivered out of order. Non-retryable failures drop the action
// instead of wedging the queue forever.
type Queue struct {
	store  Store
	online func() bool

	mu       sync.Mutex
	actions  []types.QueuedAction
	handlers map[string]Handler

	replaying atomic.Bool

	nowFunc func() time.Time // for testing
}

// New creates a Queue, rehydrating any persisted actions before the
// first append.
func New(ctx context.Context, store Store, online func() bool) (*Queue, error) {
	if store == nil {
		return nil, verr.New(verr.CodeConfigValidateInvalidValue, "queue requires a store")
	}
	if online == nil {
		return nil, verr.New(verr.CodeConfigValidateInvalidValue, "queue requires an online predicate")
	}

	actions, err := store.Load(ctx)
	if err != nil {
		return nil, verr.Wrap(err, verr.CodeQueueStoreFailure, "rehydrating queue")
	}

	return &Queue{
		store:    store,
		online:   online,
		actions:  actions,
		handlers: make(map[string]Handler),
		nowFunc:  time.Now,
	}, nil
}

// RegisterHandler installs the replay handler for an action type.
func (q *Queue) RegisterHandler(actionType string, h Handler) {
	q.mu.Lock()
	q.handlers[actionType] = h
	q.mu.Unlock()
}

// EnqueueOrRun appends the action to the durable queue when offline and
// reports true. When online it reports false and the caller executes
// the action itself.
func (q *Queue) EnqueueOrRun(ctx context.Context, actionType string, payload json.RawMessage) (bool, error) {
	if q.online() {
		return false, nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	action := types.QueuedAction{
		ID:         uuid.NewString(),
		Type:       actionType,
		Payload:    payload,
		EnqueuedAt: q.nowFunc(),
	}
	q.actions = append(q.actions, action)

	if err := q.store.Save(ctx, q.actions); err != nil {
		return true, verr.Wrap(err, verr.CodeQueueStoreFailure, "persisting enqueued action",
			verr.FieldAction(actionType))
	}

	slog.Info("action queued for replay", "type", actionType, "depth", len(q.actions))
	return true, nil
}

// Depth returns the number of pending actions.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}

// Replaying reports whether a Process run is in flight.
func (q *Queue) Replaying() bool {
	return q.replaying.Load()
}

// Process replays pending actions from the front, persisting after each
// successful dequeue. The first transient failure stops the run with the
// failed action still at the front; overlapping runs are rejected by the
// single-flight guard.
func (q *Queue) Process(ctx context.Context) error {
	if !q.replaying.CompareAndSwap(false, true) {
		return nil
	}
	defer q.replaying.Store(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		q.mu.Lock()
		if len(q.actions) == 0 {
			q.mu.Unlock()
			return nil
		}
		action := q.actions[0]
		handler := q.handlers[action.Type]
		q.mu.Unlock()

		var err error
		if handler == nil {
			err = verr.New(verr.CodeQueueHandlerNotFound, "no handler registered",
				verr.FieldAction(action.Type))
		} else {
			err = handler(ctx, action)
		}

		switch {
		case err == nil:
			if perr := q.dequeueFront(ctx, action.ID); perr != nil {
				return perr
			}
			slog.Info("queued action replayed", "type", action.Type, "id", action.ID)

		case verr.HasCode(err, verr.CodeQueueHandlerNotFound), !verr.IsRetryable(err):
			// Permanent failure: keeping it at the front would starve
			// everything behind it with no hope of progress.
			if perr := q.dequeueFront(ctx, action.ID); perr != nil {
				return perr
			}
			slog.Warn("dropping queued action after permanent failure",
				"type", action.Type, "id", action.ID, "error", err)

		default:
			// Transient failure: the action stays at the front so order
			// is preserved and delivery is at-least-once.
			slog.Warn("queue replay stopped on transient failure",
				"type", action.Type, "id", action.ID, "error", err)
			return err
		}
	}
}

// dequeueFront removes the front action (verified by ID) and persists
// the shortened queue.
func (q *Queue) dequeueFront(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.actions) == 0 || q.actions[0].ID != id {
		return nil
	}
	q.actions = append([]types.QueuedAction(nil), q.actions[1:]...)

	if err := q.store.Save(ctx, q.actions); err != nil {
		return verr.Wrap(err, verr.CodeQueueStoreFailure, "persisting queue after dequeue")
	}
	return nil
}
