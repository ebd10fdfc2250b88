// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package config

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the top-level Veritas configuration.
type Config struct {
	Remote RemoteConfig `mapstructure:"remote"`
	Health HealthConfig `mapstructure:"health"`
	Retry  RetryConfig  `mapstructure:"retry"`
	Queue  QueueConfig  `mapstructure:"queue"`
	Server ServerConfig `mapstructure:"server"`
}

// RemoteConfig describes the remote verification service.
// Endpoints are ordered by priority: the first reachable one wins.
type RemoteConfig struct {
	Endpoints      []string      `mapstructure:"endpoints"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// HealthConfig controls endpoint reachability probing.
// MaxAge bounds how long a memoized health verdict is trusted;
// zero means the verdict holds for the process lifetime unless
// explicitly invalidated.
type HealthConfig struct {
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	MaxAge       time.Duration `mapstructure:"max_age"`
}

// RetryConfig sets the backoff policy for remote calls.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
}

// QueueConfig selects the offline queue storage backend.
type QueueConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// ServerConfig controls the HTTP gateway.
type ServerConfig struct {
	Listen       string        `mapstructure:"listen"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SetDefaults installs default values on the given Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("remote.endpoints", []string{"http://127.0.0.1:8791"})
	v.SetDefault("remote.request_timeout", 8*time.Second)
	v.SetDefault("health.probe_timeout", 5*time.Second)
	v.SetDefault("health.max_age", time.Duration(0))
	v.SetDefault("retry.max_retries", 1)
	v.SetDefault("retry.base_delay", 500*time.Millisecond)
	v.SetDefault("retry.max_delay", 10*time.Second)
	v.SetDefault("queue.backend", "sqlite")
	v.SetDefault("queue.path", "veritas-queue.db")
	v.SetDefault("server.listen", "127.0.0.1:8790")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
}

// SetupEnv binds environment variable overrides (prefix VERITAS_).
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("VERITAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, verr.Errorf(verr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, verr.Errorf(verr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, verr.Errorf(verr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors, collecting all
// issues rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateRemote()...)
	errs = append(errs, c.validateHealth()...)
	errs = append(errs, c.validateRetry()...)
	errs = append(errs, c.validateQueue()...)
	errs = append(errs, c.validateServer()...)

	return errs
}

func (c *Config) validateRemote() []error {
	var errs []error

	if len(c.Remote.Endpoints) == 0 {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: remote.endpoints must list at least one endpoint"))
	}
	for i, ep := range c.Remote.Endpoints {
		u, err := url.Parse(ep)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
				"config: remote.endpoints[%d] must be an absolute URL, got %q", i, ep))
		}
	}
	if c.Remote.RequestTimeout <= 0 {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: remote.request_timeout must be positive, got %s", c.Remote.RequestTimeout))
	}

	return errs
}

func (c *Config) validateHealth() []error {
	var errs []error

	if c.Health.ProbeTimeout <= 0 {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: health.probe_timeout must be positive, got %s", c.Health.ProbeTimeout))
	}
	if c.Health.MaxAge < 0 {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: health.max_age must not be negative, got %s", c.Health.MaxAge))
	}

	return errs
}

func (c *Config) validateRetry() []error {
	var errs []error

	if c.Retry.MaxRetries < 0 {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: retry.max_retries must not be negative, got %d", c.Retry.MaxRetries))
	}
	if c.Retry.BaseDelay <= 0 {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: retry.base_delay must be positive, got %s", c.Retry.BaseDelay))
	}
	if c.Retry.MaxDelay < c.Retry.BaseDelay {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: retry.max_delay must be >= retry.base_delay, got %s < %s",
			c.Retry.MaxDelay, c.Retry.BaseDelay))
	}

	return errs
}

func (c *Config) validateQueue() []error {
	var errs []error

	validBackends := map[string]bool{"sqlite": true, "memory": true}
	if !validBackends[c.Queue.Backend] {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: queue.backend must be one of [sqlite, memory], got %q", c.Queue.Backend))
	}
	if c.Queue.Backend == "sqlite" && c.Queue.Path == "" {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: queue.path must not be empty for the sqlite backend"))
	}

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: server.listen must not be empty"))
		return errs
	}

	_, portStr, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: server.listen must be a valid host:port address, got %q: %w", c.Server.Listen, err))
		return errs
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be a number, got %q", portStr))
	} else if port < 1 || port > 65535 {
		errs = append(errs, verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be between 1 and 65535, got %d", port))
	}

	return errs
}
