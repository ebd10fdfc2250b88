// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/seetsele/vrsystems-sub001/internal/health"
	"github.com/seetsele/vrsystems-sub001/internal/remote"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Gateway and remote service health",
		Tags:        []string{"system"},
	}, s.handleHealth)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-tools",
		Method:      http.MethodGet,
		Path:        "/v1/tools",
		Summary:     "List available analysis tools",
		Tags:        []string{"analysis"},
	}, s.handleListTools)

	huma.Register(s.api, huma.Operation{
		OperationID: "verify",
		Method:      http.MethodPost,
		Path:        "/v1/tools/{tool}",
		Summary:     "Analyze content with the named tool",
		Tags:        []string{"analysis"},
	}, s.handleVerify)

	huma.Register(s.api, huma.Operation{
		OperationID:   "track",
		Method:        http.MethodPost,
		Path:          "/v1/track",
		Summary:       "Report a usage event",
		Tags:          []string{"telemetry"},
		DefaultStatus: http.StatusAccepted,
	}, s.handleTrack)

	huma.Register(s.api, huma.Operation{
		OperationID: "queue-state",
		Method:      http.MethodGet,
		Path:        "/v1/queue",
		Summary:     "Offline queue state",
		Tags:        []string{"telemetry"},
	}, s.handleQueueState)

	huma.Register(s.api, huma.Operation{
		OperationID: "queue-replay",
		Method:      http.MethodPost,
		Path:        "/v1/queue/replay",
		Summary:     "Re-check connectivity and replay queued events",
		Tags:        []string{"telemetry"},
	}, s.handleQueueReplay)
}

// --- Request/Response types for huma ---

type healthOutput struct {
	Body struct {
		Status string          `json:"status" example:"ok" doc:"Gateway status"`
		Remote health.Snapshot `json:"remote" doc:"Remote endpoint health"`
		Queue  queueState      `json:"queue" doc:"Offline queue state"`
		Client remote.Metrics  `json:"client" doc:"Remote client counters"`
	}
}

type queueState struct {
	Depth     int  `json:"depth" doc:"Queued actions awaiting replay"`
	Replaying bool `json:"replaying" doc:"Whether a replay is in flight"`
}

type listToolsOutput struct {
	Body struct {
		Tools []types.ToolID `json:"tools"`
	}
}

type verifyInput struct {
	Tool string `path:"tool" doc:"Analysis tool identifier"`
	Body struct {
		Content string `json:"content" minLength:"1" doc:"Content to analyze"`
	}
}
type verifyOutput struct {
	Body types.AnalysisResult
}

type trackInput struct {
	Body struct {
		Name       string         `json:"name" minLength:"1" doc:"Event name"`
		Properties map[string]any `json:"properties,omitempty" doc:"Event properties"`
	}
}
type trackOutput struct {
	Body struct {
		Queued bool `json:"queued" doc:"True when the event was deferred for replay"`
	}
}

type queueStateOutput struct {
	Body queueState
}

type queueReplayOutput struct {
	Body struct {
		Status string `json:"status" example:"replayed"`
		Depth  int    `json:"depth" doc:"Queued actions remaining"`
	}
}

// --- Handlers ---

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*healthOutput, error) {
	snap := s.svc.Monitor().State()

	out := &healthOutput{}
	out.Body.Status = "ok"
	if snap.Checked && snap.Active == "" {
		out.Body.Status = "degraded"
	}
	out.Body.Remote = snap
	out.Body.Queue = queueState{
		Depth:     s.svc.Queue().Depth(),
		Replaying: s.svc.Queue().Replaying(),
	}
	out.Body.Client = s.svc.ClientMetrics()
	return out, nil
}

func (s *Server) handleListTools(_ context.Context, _ *struct{}) (*listToolsOutput, error) {
	out := &listToolsOutput{}
	out.Body.Tools = types.Tools()
	return out, nil
}

func (s *Server) handleVerify(ctx context.Context, input *verifyInput) (*verifyOutput, error) {
	// Verify never fails: unknown tools resolve to a flagged neutral
	// result, remote failures resolve to local heuristics.
	tool, err := types.ParseTool(input.Tool)
	if err != nil {
		tool = types.ToolID(input.Tool)
	}
	return &verifyOutput{Body: s.svc.Verify(ctx, tool, input.Body.Content)}, nil
}

func (s *Server) handleTrack(ctx context.Context, input *trackInput) (*trackOutput, error) {
	queued, err := s.svc.Track(ctx, types.TrackEvent{
		Name:       input.Body.Name,
		Properties: input.Body.Properties,
	})
	if err != nil {
		return nil, huma.Error502BadGateway("delivering track event", err)
	}
	out := &trackOutput{}
	out.Body.Queued = queued
	return out, nil
}

func (s *Server) handleQueueState(_ context.Context, _ *struct{}) (*queueStateOutput, error) {
	return &queueStateOutput{Body: queueState{
		Depth:     s.svc.Queue().Depth(),
		Replaying: s.svc.Queue().Replaying(),
	}}, nil
}

func (s *Server) handleQueueReplay(ctx context.Context, _ *struct{}) (*queueReplayOutput, error) {
	if err := s.svc.OnOnline(ctx); err != nil {
		return nil, huma.Error502BadGateway("replaying queued events", err)
	}
	out := &queueReplayOutput{}
	out.Body.Status = "replayed"
	out.Body.Depth = s.svc.Queue().Depth()
	return out, nil
}
