// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package dispatch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/seetsele/vrsystems-sub001/internal/analyzer"
	"github.com/seetsele/vrsystems-sub001/internal/dispatch"
	"github.com/seetsele/vrsystems-sub001/internal/health"
	"github.com/seetsele/vrsystems-sub001/internal/remote"
	"github.com/seetsele/vrsystems-sub001/internal/retry"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(t *testing.T, maxRetries int) retry.Policy {
	t.Helper()
	p, err := retry.NewPolicy(maxRetries, time.Millisecond, 10*time.Millisecond)
	require.NoError(t, err)
	return p
}

// newDispatcher builds a dispatcher over real monitor/client instances
// pointed at the given endpoints.
func newDispatcher(t *testing.T, endpoints []string, maxRetries int) *dispatch.Dispatcher {
	t.Helper()
	client := remote.NewClient(time.Second)
	monitor, err := health.NewMonitor(endpoints, client, health.WithProbeTimeout(time.Second))
	require.NoError(t, err)

	d, err := dispatch.New(monitor, client, analyzer.NewRegistry(), fastPolicy(t, maxRetries))
	require.NoError(t, err)
	return d
}

func TestVerify_RemoteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		assert.Equal(t, "/tools/social-media", r.URL.Path)
		_ = json.NewEncoder(w).Encode(types.AnalysisResult{
			Score:   88,
			Verdict: types.VerdictLowRisk,
			Summary: "✅ Remote says fine",
		})
	}))
	defer srv.Close()

	d := newDispatcher(t, []string{srv.URL}, 0)
	res := d.Verify(context.Background(), types.ToolSocialMedia, "hello world")

	assert.False(t, res.IsFallback, "remote success must not be marked fallback")
	assert.Equal(t, 88, res.Score)
	assert.Equal(t, types.ToolSocialMedia, res.Tool)
	assert.GreaterOrEqual(t, res.ProcessingTimeMs, int64(0))
}

func TestVerify_UnreachableRemoteFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening

	d := newDispatcher(t, []string{srv.URL}, 1)
	res := d.Verify(context.Background(), types.ToolSocialMedia,
		"BREAKING: this is trending, shared by a new account with 500k followers")

	assert.True(t, res.IsFallback)
	assert.Equal(t, 5, res.Score)
	assert.Equal(t, types.VerdictHighRisk, res.Verdict)

	found := make(map[string]bool)
	for _, ind := range res.Details {
		found[ind.Type] = true
	}
	for _, want := range []string{"viral_spread", "new_account", "urgency_trigger", "follower_anomaly"} {
		assert.True(t, found[want], "missing indicator %s", want)
	}
}

func TestVerify_RemoteErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := newDispatcher(t, []string{srv.URL}, 1)
	res := d.Verify(context.Background(), types.ToolStatisticsValidator, "Study found p-value = 0.20")

	assert.True(t, res.IsFallback)
	assert.Equal(t, 50, res.Score)
	require.Len(t, res.Details, 1)
	assert.Equal(t, "weak_significance", res.Details[0].Type)
}

func TestVerify_MalformedRemoteFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	d := newDispatcher(t, []string{srv.URL}, 0)
	res := d.Verify(context.Background(), types.ToolSourceCredibility, "Reported by Reuters and a random blog")

	assert.True(t, res.IsFallback)
	assert.Equal(t, 55, res.Score)
	assert.Equal(t, types.VerdictMixedCredibility, res.Verdict)
}

func TestVerify_RetriesTransientRemoteFailures(t *testing.T) {
	analyzeCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		analyzeCalls++
		if analyzeCalls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(types.AnalysisResult{
			Score:   75,
			Verdict: types.VerdictLowRisk,
			Summary: "✅ Third time lucky",
		})
	}))
	defer srv.Close()

	d := newDispatcher(t, []string{srv.URL}, 2)
	res := d.Verify(context.Background(), types.ToolRealtimeStream, "calm report")

	assert.False(t, res.IsFallback)
	assert.Equal(t, 75, res.Score)
	assert.Equal(t, 3, analyzeCalls)
}

func TestVerify_UnknownToolReturnsUnavailable(t *testing.T) {
	d := newDispatcher(t, []string{"http://127.0.0.1:1"}, 0)
	res := d.Verify(context.Background(), types.ToolID("horoscope"), "stars say yes")

	assert.True(t, res.Unavailable)
	assert.True(t, res.IsFallback)
	assert.Equal(t, types.VerdictUnavailable, res.Verdict)
	assert.Equal(t, 50, res.Score)
	assert.Contains(t, res.Summary, "horoscope")
}

func TestVerify_PrefersFirstReachableEndpoint(t *testing.T) {
	var primaryHit, backupHit bool
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryHit = true
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		_ = json.NewEncoder(w).Encode(types.AnalysisResult{Score: 70, Verdict: types.VerdictLowRisk, Summary: "✅ primary"})
	}))
	defer primary.Close()
	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		backupHit = true
		w.WriteHeader(http.StatusOK)
	}))
	defer backup.Close()

	d := newDispatcher(t, []string{primary.URL, backup.URL}, 0)
	res := d.Verify(context.Background(), types.ToolSocialMedia, "hello")

	assert.False(t, res.IsFallback)
	assert.True(t, primaryHit)
	assert.False(t, backupHit, "backup must not be touched while primary is healthy")
}
