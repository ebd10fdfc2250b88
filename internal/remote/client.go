// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

// Package remote is the single HTTP client through which all core code
// reaches the verification service. Instrumentation lives here as an
// explicit wrapper around each request rather than as a patched global
// transport, so request metrics follow the client instance.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// Metrics exposes cumulative request counters for operator visibility.
// All fields are point-in-time snapshots safe to serialize to JSON.
type Metrics struct {
	Requests      int64      `json:"requests"`
	Failures      int64      `json:"failures"`
	LastRequestAt *time.Time `json:"last_request_at,omitempty"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
}

// Client talks to the remote verification service.
type Client struct {
	http           *http.Client
	requestTimeout time.Duration

	mu            sync.Mutex
	requests      int64
	failures      int64
	lastRequestAt time.Time
	lastFailureAt time.Time

	nowFunc func() time.Time // for testing
}

// DefaultRequestTimeout bounds a single analysis or track request.
const DefaultRequestTimeout = 8 * time.Second

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client. Deadlines are applied per request via
// context, not on the http.Client, so probe and analysis calls can
// carry different bounds.
func NewClient(requestTimeout time.Duration, opts ...Option) *Client {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	c := &Client{
		http:           &http.Client{},
		requestTimeout: requestTimeout,
		nowFunc:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Probe issues a bounded reachability check: GET {endpoint}/health.
// Any 2xx counts as reachable; the body is ignored. The caller supplies
// the deadline via ctx.
func (c *Client) Probe(ctx context.Context, endpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinPath(endpoint, "/health"), nil)
	if err != nil {
		return verr.Wrap(err, verr.CodeRemoteUnreachable, "building probe request", verr.FieldEndpoint(endpoint))
	}

	resp, err := c.do(req)
	if err != nil {
		return classifyTransport(ctx, err, endpoint)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return verr.Errorf(verr.CodeRemoteRejected, "health probe returned %d for %s", resp.StatusCode, endpoint)
	}
	return nil
}

// Analyze requests a remote analysis: POST {endpoint}/tools/{tool} with
// a JSON content body. A 2xx response must decode into an
// AnalysisResult shape; anything else is a classified failure for the
// dispatcher to recover from.
func (c *Client) Analyze(ctx context.Context, endpoint string, tool types.ToolID, content string) (*types.AnalysisResult, error) {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, verr.Wrap(err, verr.CodeRemoteRequestInvalid, "encoding analysis request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	url := joinPath(endpoint, "/tools/"+string(tool))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, verr.Wrap(err, verr.CodeRemoteUnreachable, "building analysis request", verr.FieldEndpoint(endpoint))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, classifyTransport(ctx, err, endpoint)
	}
	defer drainAndClose(resp.Body)

	if err := classifyStatus(resp.StatusCode, tool); err != nil {
		return nil, err
	}

	var result types.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, verr.Wrap(err, verr.CodeRemoteMalformed, "decoding analysis response", verr.FieldTool(string(tool)))
	}
	if result.Verdict == "" || result.Summary == "" {
		return nil, verr.New(verr.CodeRemoteMalformed, "analysis response missing verdict or summary",
			verr.FieldTool(string(tool)))
	}

	result.Tool = tool
	result.IsFallback = false
	return &result, nil
}

// Track reports a usage event: POST {endpoint}/track.
func (c *Client) Track(ctx context.Context, endpoint string, event types.TrackEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return verr.Wrap(err, verr.CodeRemoteRequestInvalid, "encoding track event")
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinPath(endpoint, "/track"), bytes.NewReader(body))
	if err != nil {
		return verr.Wrap(err, verr.CodeRemoteUnreachable, "building track request", verr.FieldEndpoint(endpoint))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return classifyTransport(ctx, err, endpoint)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp.StatusCode, "")
	}
	return nil
}

// Metrics returns a snapshot of the client's request counters.
func (c *Client) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := Metrics{
		Requests: c.requests,
		Failures: c.failures,
	}
	if c.requests > 0 {
		t := c.lastRequestAt
		m.LastRequestAt = &t
	}
	if c.failures > 0 {
		t := c.lastFailureAt
		m.LastFailureAt = &t
	}
	return m
}

// do executes the request, recording metrics around it.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.requests++
	c.lastRequestAt = c.nowFunc()
	c.mu.Unlock()

	resp, err := c.http.Do(req)
	if err != nil || resp.StatusCode >= 500 {
		c.mu.Lock()
		c.failures++
		c.lastFailureAt = c.nowFunc()
		c.mu.Unlock()
	}
	return resp, err
}

// classifyTransport maps a transport-level error into the taxonomy:
// a deadline that fired is a Timeout, everything else is Unreachable.
func classifyTransport(ctx context.Context, err error, endpoint string) error {
	if ctx.Err() != nil {
		return verr.Wrap(err, verr.CodeRemoteTimeout, "request deadline exceeded", verr.FieldEndpoint(endpoint))
	}
	return verr.Wrap(err, verr.CodeRemoteUnreachable, "transport failure", verr.FieldEndpoint(endpoint))
}

// classifyStatus maps a non-2xx status into the taxonomy. Auth and
// validation rejections carry non-retryable codes.
func classifyStatus(status int, tool types.ToolID) error {
	if status >= 200 && status <= 299 {
		return nil
	}

	fields := []verr.Attr{}
	if tool != "" {
		fields = append(fields, verr.FieldTool(string(tool)))
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return verr.New(verr.CodeRemoteUnauthorized, fmt.Sprintf("remote rejected credentials (%d)", status), fields...)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return verr.New(verr.CodeRemoteRequestInvalid, fmt.Sprintf("remote rejected request (%d)", status), fields...)
	default:
		return verr.New(verr.CodeRemoteRejected, fmt.Sprintf("remote returned status %d", status), fields...)
	}
}

func joinPath(endpoint, path string) string {
	return strings.TrimRight(endpoint, "/") + path
}

// drainAndClose reads the remainder of a response body before closing
// so the underlying connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
