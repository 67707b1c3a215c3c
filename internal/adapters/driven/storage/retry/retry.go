// Package retry wraps storage calls with bounded exponential backoff.
// Transient failures (rate limits, 5xx, network) are retried up to a
// configured attempt count; everything else aborts immediately.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultMaxAttempts bounds retries when no count is configured.
const DefaultMaxAttempts = 4

// IsTransient decides whether an error is worth retrying.
type IsTransient func(error) bool

// Config tunes the backoff schedule.
type Config struct {
	// MaxAttempts is the total attempt count including the first call.
	// Non-positive falls back to DefaultMaxAttempts.
	MaxAttempts uint64

	// InitialInterval seeds the exponential schedule. Zero uses the
	// backoff library default (500ms).
	InitialInterval time.Duration

	// MaxInterval caps the schedule. Zero uses the library default.
	MaxInterval time.Duration
}

// Do runs fn, retrying transient errors on an exponential schedule until
// the attempt budget or ctx is exhausted. The last error is returned.
func Do(ctx context.Context, cfg Config, transient IsTransient, fn func() error) error {
	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = DefaultMaxAttempts
	}

	eb := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		eb.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		eb.MaxInterval = cfg.MaxInterval
	}

	b := backoff.WithContext(backoff.WithMaxRetries(eb, attempts-1), ctx)

	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if !transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}
