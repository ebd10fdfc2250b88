// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/seetsele/vrsystems-sub001/internal/health"
	"github.com/seetsele/vrsystems-sub001/internal/queue"
	"github.com/seetsele/vrsystems-sub001/internal/remote"
	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// actionTrack is the queued-action type for usage events.
const actionTrack = "track"

// Service bundles the core's public operations: Verify, Track, Notify.
// Verify is read-only and handled by the Dispatcher; Track mutates
// remote state and therefore routes through the offline queue when the
// remote is unavailable; Notify fans out to subscribed consumers.
type Service struct {
	dispatcher *Dispatcher
	monitor    *health.Monitor
	client     *remote.Client
	queue      *queue.Queue

	mu          sync.Mutex
	subscribers []chan types.Notice

	nowFunc func() time.Time // for testing
}

// NewService wires the service and registers the queue replay handlers.
func NewService(dispatcher *Dispatcher, monitor *health.Monitor, client *remote.Client, q *queue.Queue) (*Service, error) {
	if dispatcher == nil || monitor == nil || client == nil || q == nil {
		return nil, verr.New(verr.CodeConfigValidateInvalidValue,
			"service requires a dispatcher, monitor, client, and queue")
	}

	s := &Service{
		dispatcher: dispatcher,
		monitor:    monitor,
		client:     client,
		queue:      q,
		nowFunc:    time.Now,
	}
	q.RegisterHandler(actionTrack, s.replayTrack)
	return s, nil
}

// Verify delegates to the dispatcher.
func (s *Service) Verify(ctx context.Context, tool types.ToolID, content string) types.AnalysisResult {
	return s.dispatcher.Verify(ctx, tool, content)
}

// Track reports a usage event. Offline (or on a transient send failure)
// the event is queued for replay; the caller learns whether it was
// deferred via the returned flag.
func (s *Service) Track(ctx context.Context, event types.TrackEvent) (queued bool, err error) {
	if event.Name == "" {
		return false, verr.New(verr.CodeCLIInputInvalid, "track event requires a name")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.nowFunc()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return false, verr.Wrap(err, verr.CodeRemoteRequestInvalid, "encoding track event")
	}

	queued, err = s.queue.EnqueueOrRun(ctx, actionTrack, payload)
	if err != nil || queued {
		return queued, err
	}

	endpoint, ok := s.monitor.ActiveEndpoint()
	if !ok {
		// Check said online but no endpoint is cached; treat as a
		// connectivity flap and queue.
		return s.forceEnqueue(ctx, payload)
	}

	if err := s.client.Track(ctx, endpoint, event); err != nil {
		if !verr.IsRetryable(err) {
			return false, err
		}
		// The cached verdict is stale; invalidate it and keep the
		// event for replay.
		s.monitor.Invalidate()
		return s.forceEnqueue(ctx, payload)
	}
	return false, nil
}

func (s *Service) forceEnqueue(ctx context.Context, payload json.RawMessage) (bool, error) {
	queued, err := s.queue.EnqueueOrRun(ctx, actionTrack, payload)
	if err != nil {
		return queued, err
	}
	if !queued {
		// The online predicate flipped back between checks; one more
		// attempt happens on the next replay instead of recursing here.
		slog.Warn("track event dropped during connectivity flap")
	}
	return queued, nil
}

// replayTrack delivers a queued track event to the remote service.
func (s *Service) replayTrack(ctx context.Context, action types.QueuedAction) error {
	var event types.TrackEvent
	if err := json.Unmarshal(action.Payload, &event); err != nil {
		return verr.Wrap(err, verr.CodeRemoteRequestInvalid, "decoding queued track event")
	}

	endpoint, ok := s.monitor.ActiveEndpoint()
	if !ok {
		return verr.New(verr.CodeRemoteUnreachable, "no active endpoint for replay")
	}
	return s.client.Track(ctx, endpoint, event)
}

// Notify fans a notice out to all subscribers. Slow subscribers are
// skipped rather than blocking the core.
func (s *Service) Notify(message string, kind types.NoticeKind) {
	notice := types.Notice{Message: message, Kind: kind, At: s.nowFunc()}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- notice:
		default:
		}
	}
}

// Subscribe returns a channel receiving future notices.
func (s *Service) Subscribe() <-chan types.Notice {
	ch := make(chan types.Notice, 16)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// OnOnline handles a connectivity-restored signal: the health verdict
// is re-checked and any queued actions are replayed in order.
func (s *Service) OnOnline(ctx context.Context) error {
	s.monitor.Invalidate()
	if !s.monitor.Check(ctx) {
		return verr.New(verr.CodeRemoteUnreachable, "connectivity signal but no endpoint reachable")
	}
	return s.queue.Process(ctx)
}

// Queue exposes queue observability for the gateway.
func (s *Service) Queue() *queue.Queue { return s.queue }

// Monitor exposes the health monitor for the gateway.
func (s *Service) Monitor() *health.Monitor { return s.monitor }

// ClientMetrics returns the instrumented client's counters.
func (s *Service) ClientMetrics() remote.Metrics { return s.client.Metrics() }
