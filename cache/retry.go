package cache

import (
	"context"
	"errors"
	"net"
	"time"
)

// RetryConfig holds configuration for connection retries.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns the retry behavior used when connecting to Redis.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  250 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

// delay returns the wait before retry number attempt (0-based), doubling
// from BaseDelay and capped at MaxDelay.
func (c RetryConfig) delay(attempt int) time.Duration {
	d := c.BaseDelay << attempt
	if d <= 0 || (c.MaxDelay > 0 && d > c.MaxDelay) {
		return c.MaxDelay
	}
	return d
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry calls fn until it succeeds, fails with an error IsRetryable
// rejects, or MaxRetries retries are used up. It returns the last error.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	for attempt := 0; ; attempt++ {
		result, err := fn()
		switch {
		case err == nil:
			return result, nil
		case !IsRetryable(err), attempt >= cfg.MaxRetries:
			return zero, err
		}

		timer := time.NewTimer(cfg.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// IsRetryable reports whether err is a transient network failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
