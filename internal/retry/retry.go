// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

// Package retry wraps fallible operations with bounded
// exponential-backoff-with-jitter retries.
package retry

import (
	"context"
	"math/rand/v2"
	"time"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
)

// Policy bounds a retry sequence. MaxRetries counts retries after the
// first attempt, so the total attempt budget is MaxRetries+1. The
// effective delay between attempts never exceeds MaxDelay.
type Policy struct {
	MaxRetries  int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	IsRetryable func(error) bool
}

// NewPolicy creates a validated Policy using the default retryability
// predicate (authentication and validation failures are never retried).
func NewPolicy(maxRetries int, baseDelay, maxDelay time.Duration) (Policy, error) {
	p := Policy{
		MaxRetries:  maxRetries,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
		IsRetryable: verr.IsRetryable,
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate checks that the policy bounds are coherent.
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"retry policy: max retries must not be negative, got %d", p.MaxRetries)
	}
	if p.BaseDelay <= 0 {
		return verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"retry policy: base delay must be positive, got %s", p.BaseDelay)
	}
	if p.MaxDelay < p.BaseDelay {
		return verr.Errorf(verr.CodeConfigValidateInvalidValue,
			"retry policy: max delay must be >= base delay, got %s < %s", p.MaxDelay, p.BaseDelay)
	}
	return nil
}

// Option customizes a single Execute call.
type Option func(*options)

type options struct {
	sleep func(context.Context, time.Duration) error
}

// WithSleeper overrides how Execute waits between attempts (for testing).
func WithSleeper(fn func(context.Context, time.Duration) error) Option {
	return func(o *options) { o.sleep = fn }
}

// Execute runs op, retrying on failure per the policy. Attempts are
// sequential within one call; independent calls share no state beyond
// the policy value. A non-retryable error or an exhausted budget
// propagates immediately with no trailing delay. Waits between attempts
// abort as soon as ctx is cancelled.
func Execute[T any](ctx context.Context, op func(context.Context) (T, error), p Policy, opts ...Option) (T, error) {
	var zero T

	if err := p.Validate(); err != nil {
		return zero, err
	}

	o := options{sleep: sleepCtx}
	for _, opt := range opts {
		opt(&o)
	}

	retryable := p.IsRetryable
	if retryable == nil {
		retryable = verr.IsRetryable
	}

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if attempt >= p.MaxRetries || !retryable(err) {
			return zero, err
		}

		if err := o.sleep(ctx, delayFor(p, attempt)); err != nil {
			// Caller cancelled mid-backoff; the operation error is
			// stale, the cancellation is what the caller asked for.
			return zero, err
		}
	}
}

// delayFor computes base*2^attempt plus jitter, capped at MaxDelay.
// Jitter is uniform over [0, BaseDelay) to de-synchronize concurrent
// retry sequences against the same endpoint.
func delayFor(p Policy, attempt int) time.Duration {
	backoff := p.BaseDelay
	for i := 0; i < attempt && backoff < p.MaxDelay; i++ {
		backoff *= 2
	}
	delay := backoff + rand.N(p.BaseDelay)
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
