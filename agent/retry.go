package agent

import (
	"context"
	"log/slog"
	"time"
)

const defaultMaxAttempts = 3

// sleepFunc suspends between retry attempts. Injected so tests can observe
// the delays without waiting for them.
type sleepFunc func(ctx context.Context, d time.Duration) error

// sleepBetween waits for d or until ctx is cancelled, whichever comes first.
// A timer plus select keeps the wait cooperative; other in-flight requests
// are never blocked by a backing-off one.
func sleepBetween(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryDelay grows linearly with the attempt number, capped at 6s. Not
// exponential, no jitter.
func retryDelay(attempt int) time.Duration {
	d := time.Duration(attempt) * 2 * time.Second
	if d > 6*time.Second {
		d = 6 * time.Second
	}
	return d
}

// runRetries attempts op up to maxAttempts times, sleeping retryDelay(n)
// after every failed attempt, the last one included, before the final error
// is returned. Intermediate failures are logged and swallowed; the last one
// propagates.
func runRetries[T any](ctx context.Context, log *slog.Logger, sleep sleepFunc, maxAttempts int, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		delay := retryDelay(attempt)
		log.Warn("attempt failed", "attempt", attempt, "error", err, "retry_in", delay.String())
		if serr := sleep(ctx, delay); serr != nil {
			// Request cancelled mid-backoff; abandon promptly.
			return zero, serr
		}
	}
	return zero, lastErr
}
