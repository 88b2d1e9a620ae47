package connection

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted is returned when every connection attempt failed.
var ErrAttemptsExhausted = errors.New("connection attempts exhausted")

// DefaultAttempts is the number of attempts made when none is configured.
const DefaultAttempts = 3

// ConnectFunc is called to establish a connection.
// It should return nil on success or an error on failure.
type ConnectFunc func(ctx context.Context) error

// RetryConfig controls Retry.
type RetryConfig struct {
	// Attempts is the maximum number of calls to the connect function.
	Attempts int

	// Backoff paces the attempts. DefaultBackoff is used when nil.
	Backoff *Backoff

	// AttemptTimeout bounds each call. Zero means no per-attempt bound.
	AttemptTimeout time.Duration

	// OnRetry is called with the failed attempt number before waiting
	// for the next one.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Retry calls fn until it succeeds or the attempts are exhausted.
// The returned error wraps both ErrAttemptsExhausted and the last failure.
func Retry(ctx context.Context, cfg RetryConfig, fn ConnectFunc) error {
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultAttempts
	}
	if cfg.Backoff == nil {
		cfg.Backoff = DefaultBackoff()
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = attemptOnce(ctx, cfg.AttemptTimeout, fn)
		if lastErr == nil {
			return nil
		}
		if attempt == cfg.Attempts {
			break
		}

		delay := cfg.Backoff.Delay(attempt)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, lastErr)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, cfg.Attempts, lastErr)
}

func attemptOnce(ctx context.Context, timeout time.Duration, fn ConnectFunc) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}
