// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

// Package dispatch is the façade presentation-layer consumers call.
// Verify prefers the remote service and degrades to local heuristics;
// it never returns an error, only a well-formed AnalysisResult.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seetsele/vrsystems-sub001/internal/analyzer"
	"github.com/seetsele/vrsystems-sub001/internal/health"
	"github.com/seetsele/vrsystems-sub001/internal/remote"
	"github.com/seetsele/vrsystems-sub001/internal/retry"
	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// Dispatcher routes verification calls: health check, retried remote
// attempt, then the matching local analyzer on any remote failure.
type Dispatcher struct {
	monitor   *health.Monitor
	client    *remote.Client
	analyzers *analyzer.Registry
	policy    retry.Policy

	nowFunc func() time.Time // for testing
}

// New creates a Dispatcher. The retry policy is validated here so a
// misconfiguration fails at construction, not mid-verify.
func New(monitor *health.Monitor, client *remote.Client, analyzers *analyzer.Registry, policy retry.Policy) (*Dispatcher, error) {
	if monitor == nil || client == nil || analyzers == nil {
		return nil, verr.New(verr.CodeConfigValidateInvalidValue,
			"dispatcher requires a monitor, client, and analyzer registry")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Dispatcher{
		monitor:   monitor,
		client:    client,
		analyzers: analyzers,
		policy:    policy,
		nowFunc:   time.Now,
	}, nil
}

// Verify analyzes content with the named tool. Every failure mode
// resolves to a returned result: remote failures fall back to the local
// analyzer, unknown tools get a neutral error-flagged result. The only
// signal of degradation is IsFallback.
func (d *Dispatcher) Verify(ctx context.Context, tool types.ToolID, content string) types.AnalysisResult {
	start := d.nowFunc()
	stamp := func(res types.AnalysisResult) types.AnalysisResult {
		res.ProcessingTimeMs = d.nowFunc().Sub(start).Milliseconds()
		return res
	}

	// Closed tool set: unknown IDs have neither a remote route nor a
	// local analyzer, so they resolve before any network work.
	local, err := d.analyzers.Get(tool)
	if err != nil {
		slog.Warn("verify called with unknown tool", "tool", tool)
		return stamp(unavailableResult(tool))
	}

	if d.monitor.Check(ctx) {
		endpoint, _ := d.monitor.ActiveEndpoint()
		res, err := retry.Execute(ctx, func(ctx context.Context) (*types.AnalysisResult, error) {
			return d.client.Analyze(ctx, endpoint, tool, content)
		}, d.policy)
		if err == nil {
			return stamp(*res)
		}
		slog.Warn("remote analysis failed, using local fallback",
			"tool", tool, "endpoint", endpoint, "code", verr.CodeOf(err), "error", err)
	}

	return stamp(local.Analyze(content))
}

// unavailableResult is the neutral answer for tools the core cannot
// serve at all.
func unavailableResult(tool types.ToolID) types.AnalysisResult {
	return types.AnalysisResult{
		Tool:        tool,
		Score:       50,
		Verdict:     types.VerdictUnavailable,
		Summary:     fmt.Sprintf("⚠️ Analysis unavailable: no analyzer registered for tool %q", tool),
		IsFallback:  true,
		Unavailable: true,
	}
}
