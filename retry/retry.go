/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry provides exponential backoff for transient model API
// errors (rate limits, overloaded backends).
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config controls backoff behavior.
type Config struct {
	// MaxAttempts is the total number of calls, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// BaseBackoff is the delay before the first retry.
	BaseBackoff time.Duration
	// MaxBackoff caps the exponential growth.
	MaxBackoff time.Duration
	// MaxJitter is added uniformly at random to each delay.
	MaxJitter time.Duration
}

// Default returns a configuration tuned for LLM API rate limits, which
// tend to need longer recovery than ordinary transient errors.
func Default() Config {
	return Config{
		MaxAttempts: 4,
		BaseBackoff: time.Second,
		MaxBackoff:  30 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.BaseBackoff < 0 || c.MaxBackoff < 0 || c.MaxJitter < 0 {
		return errors.New("backoff durations cannot be negative")
	}
	return nil
}

// Do runs fn until it succeeds, returns a non-retryable error, the
// attempt budget is exhausted, or the context is canceled.
func Do[T any](ctx context.Context, cfg Config, operation string, retryable func(error) bool, fn func() (T, error)) (T, error) {
	attempts := max(cfg.MaxAttempts, 1)

	var out T
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		out, lastErr = fn()
		if lastErr == nil {
			return out, nil
		}
		if !retryable(lastErr) {
			return out, lastErr
		}
		if attempt == attempts {
			break
		}

		delay := min(cfg.BaseBackoff<<(attempt-1), cfg.MaxBackoff)
		if cfg.MaxJitter > 0 {
			delay += rand.N(cfg.MaxJitter)
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt).
			With("delay", delay).
			With("error", lastErr.Error()).
			Warn("Transient error, backing off")

		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case <-time.After(delay):
		}
	}

	return out, fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}
