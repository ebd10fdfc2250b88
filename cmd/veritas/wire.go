// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/seetsele/vrsystems-sub001/internal/analyzer"
	"github.com/seetsele/vrsystems-sub001/internal/config"
	"github.com/seetsele/vrsystems-sub001/internal/dispatch"
	"github.com/seetsele/vrsystems-sub001/internal/health"
	"github.com/seetsele/vrsystems-sub001/internal/queue"
	"github.com/seetsele/vrsystems-sub001/internal/remote"
	"github.com/seetsele/vrsystems-sub001/internal/retry"
	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
)

// Core holds the wired analysis subsystems and manages their lifecycle.
type Core struct {
	Service *dispatch.Service
	store   queue.Store
}

// Close releases the queue store.
func (c *Core) Close() error {
	return c.store.Close()
}

// WireCore creates all subsystems and wires them together: instrumented
// client, health monitor, durable queue whose online predicate follows
// the monitor, retry policy, dispatcher, and the service facade.
func WireCore(ctx context.Context, cfg *config.Config) (*Core, error) {
	client := remote.NewClient(cfg.Remote.RequestTimeout)

	monitor, err := health.NewMonitor(cfg.Remote.Endpoints, client,
		health.WithProbeTimeout(cfg.Health.ProbeTimeout),
		health.WithMaxAge(cfg.Health.MaxAge),
	)
	if err != nil {
		return nil, verr.Wrap(err, verr.CodeCLISetupFailure, "creating health monitor")
	}

	store, err := queue.OpenStore(cfg.Queue.Backend, cfg.Queue.Path)
	if err != nil {
		return nil, verr.Wrap(err, verr.CodeCLISetupFailure, "opening queue store")
	}

	q, err := queue.New(ctx, store, func() bool {
		return monitor.Check(context.Background())
	})
	if err != nil {
		_ = store.Close()
		return nil, verr.Wrap(err, verr.CodeCLISetupFailure, "restoring offline queue")
	}
	if depth := q.Depth(); depth > 0 {
		slog.Info("restored queued actions", "depth", depth)
	}

	policy, err := retry.NewPolicy(cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, cfg.Retry.MaxDelay)
	if err != nil {
		_ = store.Close()
		return nil, verr.Wrap(err, verr.CodeCLISetupFailure, "building retry policy")
	}

	dispatcher, err := dispatch.New(monitor, client, analyzer.NewRegistry(), policy)
	if err != nil {
		_ = store.Close()
		return nil, verr.Wrap(err, verr.CodeCLISetupFailure, "creating dispatcher")
	}

	svc, err := dispatch.NewService(dispatcher, monitor, client, q)
	if err != nil {
		_ = store.Close()
		return nil, verr.Wrap(err, verr.CodeCLISetupFailure, "creating service")
	}

	return &Core{Service: svc, store: store}, nil
}

// setupLogging configures the process-wide slog default.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
