// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seetsele/vrsystems-sub001/internal/config"
	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"http://127.0.0.1:8791"}, cfg.Remote.Endpoints)
	assert.Equal(t, 8*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Health.ProbeTimeout)
	assert.Equal(t, time.Duration(0), cfg.Health.MaxAge)
	assert.Equal(t, 1, cfg.Retry.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, 10*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, "sqlite", cfg.Queue.Backend)
	assert.Equal(t, "127.0.0.1:8790", cfg.Server.Listen)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "veritas.yaml")
	data := `
remote:
  endpoints:
    - https://verify.example.com
    - https://verify-backup.example.com
  request_timeout: 3s
health:
  probe_timeout: 2s
  max_age: 5m
retry:
  max_retries: 3
  base_delay: 1s
  max_delay: 10s
queue:
  backend: memory
server:
  listen: 127.0.0.1:9000
  cors_origins:
    - https://app.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://verify.example.com", "https://verify-backup.example.com"}, cfg.Remote.Endpoints)
	assert.Equal(t, 3*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Health.MaxAge)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, "memory", cfg.Queue.Backend)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, verr.HasCode(err, verr.CodeConfigLoadReadFailure))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &config.Config{}
	cfg.Remote.Endpoints = nil
	cfg.Remote.RequestTimeout = 0
	cfg.Retry.MaxRetries = -1
	cfg.Queue.Backend = "redis"
	cfg.Server.Listen = "not-an-address"

	errs := cfg.Validate()
	assert.GreaterOrEqual(t, len(errs), 5)
}

func TestValidate_RejectsBadEndpointURL(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Remote.Endpoints = []string{"verify.example.com"} // no scheme
	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.True(t, verr.HasCode(errs[0], verr.CodeConfigValidateInvalidValue))
}

func TestValidate_RejectsMaxDelayBelowBase(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Retry.BaseDelay = 2 * time.Second
	cfg.Retry.MaxDelay = time.Second
	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "retry.max_delay")
}
