// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

// Package health tracks which remote verification endpoint, if any,
// is currently reachable.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
)

// EndpointState is the known reachability of a single endpoint.
type EndpointState string

const (
	StateUnknown     EndpointState = "unknown"
	StateReachable   EndpointState = "reachable"
	StateUnreachable EndpointState = "unreachable"
)

// EndpointStatus pairs an endpoint URL with its last observed state.
type EndpointStatus struct {
	URL   string        `json:"url"`
	State EndpointState `json:"state"`
}

// Snapshot is a point-in-time view of the monitor, safe to serialize.
type Snapshot struct {
	Checked   bool             `json:"checked"`
	CheckedAt *time.Time       `json:"checked_at,omitempty"`
	Active    string           `json:"active_endpoint,omitempty"`
	Endpoints []EndpointStatus `json:"endpoints"`
}

// Prober performs a single bounded reachability check against one endpoint.
type Prober interface {
	Probe(ctx context.Context, endpoint string) error
}

// Monitor probes a priority-ordered endpoint list and memoizes the verdict.
// The first successful probe wins and short-circuits the rest; once checked,
// the verdict holds until Invalidate is called or maxAge (when positive)
// elapses. Per-endpoint probe failures never surface to callers, only the
// aggregate boolean does.
type Monitor struct {
	mu        sync.Mutex
	endpoints []string
	prober    Prober

	probeTimeout time.Duration
	maxAge       time.Duration

	checked   bool
	checkedAt time.Time
	active    string
	states    []EndpointState

	nowFunc func() time.Time // for testing
}

// DefaultProbeTimeout bounds a single endpoint probe.
const DefaultProbeTimeout = 5 * time.Second

// Option customizes a Monitor.
type Option func(*Monitor)

// WithProbeTimeout overrides the per-endpoint probe deadline.
func WithProbeTimeout(d time.Duration) Option {
	return func(m *Monitor) { m.probeTimeout = d }
}

// WithMaxAge bounds how long a memoized verdict is trusted before the
// next Check re-probes. Zero keeps the verdict for the process lifetime.
func WithMaxAge(d time.Duration) Option {
	return func(m *Monitor) { m.maxAge = d }
}

// NewMonitor creates a Monitor over a priority-ordered endpoint list.
func NewMonitor(endpoints []string, prober Prober, opts ...Option) (*Monitor, error) {
	if len(endpoints) == 0 {
		return nil, verr.New(verr.CodeConfigValidateInvalidValue,
			"health monitor requires at least one endpoint")
	}
	if prober == nil {
		return nil, verr.New(verr.CodeConfigValidateInvalidValue,
			"health monitor requires a prober")
	}

	m := &Monitor{
		endpoints:    append([]string(nil), endpoints...),
		prober:       prober,
		probeTimeout: DefaultProbeTimeout,
		states:       make([]EndpointState, len(endpoints)),
		nowFunc:      time.Now,
	}
	for i := range m.states {
		m.states[i] = StateUnknown
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.probeTimeout <= 0 {
		return nil, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"health monitor probe timeout must be positive, got %s", m.probeTimeout)
	}
	return m, nil
}

// Check reports whether any endpoint is reachable. The first call probes;
// subsequent calls return the memoized verdict. The lock is held across
// probing so concurrent callers share one probe run instead of racing.
func (m *Monitor) Check(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.checked && !m.staleLocked() {
		return m.active != ""
	}

	m.probeLocked(ctx)
	return m.active != ""
}

// ActiveEndpoint returns the memoized reachable endpoint, if any.
// It never triggers probing.
func (m *Monitor) ActiveEndpoint() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != ""
}

// Invalidate discards the memoized verdict so the next Check re-probes.
func (m *Monitor) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checked = false
	m.active = ""
	for i := range m.states {
		m.states[i] = StateUnknown
	}
}

// State returns a snapshot of the monitor for observability endpoints.
func (m *Monitor) State() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Checked:   m.checked,
		Active:    m.active,
		Endpoints: make([]EndpointStatus, len(m.endpoints)),
	}
	if m.checked {
		t := m.checkedAt
		snap.CheckedAt = &t
	}
	for i, ep := range m.endpoints {
		snap.Endpoints[i] = EndpointStatus{URL: ep, State: m.states[i]}
	}
	return snap
}

// SetNowFunc overrides the time source (for testing).
func (m *Monitor) SetNowFunc(fn func() time.Time) {
	m.mu.Lock()
	m.nowFunc = fn
	m.mu.Unlock()
}

func (m *Monitor) staleLocked() bool {
	if m.maxAge <= 0 {
		return false
	}
	return m.nowFunc().Sub(m.checkedAt) >= m.maxAge
}

// probeLocked walks the endpoint list in priority order, stopping at the
// first success. Endpoints after the winner keep their previous state.
func (m *Monitor) probeLocked(ctx context.Context) {
	m.active = ""
	for i := range m.states {
		m.states[i] = StateUnknown
	}

	for i, ep := range m.endpoints {
		probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
		err := m.prober.Probe(probeCtx, ep)
		cancel()

		if err == nil {
			m.states[i] = StateReachable
			m.active = ep
			break
		}

		m.states[i] = StateUnreachable
		slog.Debug("endpoint probe failed", "endpoint", ep, "error", err)
	}

	m.checked = true
	m.checkedAt = m.nowFunc()

	if m.active == "" {
		slog.Warn("no verification endpoint reachable, falling back to local analysis",
			"endpoints", len(m.endpoints))
	}
}
