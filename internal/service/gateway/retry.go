package gateway

import (
	"context"
	"errors"
	"time"
)

// retryRateLimited invokes fn and retries it on ErrRateLimited up to retries
// additional attempts, sleeping base, 2*base, 4*base, ... between attempts.
// Any other error, and exhaustion of the bound, surface unchanged. The sleep
// is context-aware so an abandoned turn stops waiting immediately.
//
// Only the gemini variant is wrapped in this today: its free tier is the one
// rate-limit-sensitive path in the intended usage. The other variants stay
// single-shot on purpose.
func retryRateLimited(ctx context.Context, retries int, base time.Duration, fn func() (string, error)) (string, error) {
	for attempt := 0; ; attempt++ {
		text, err := fn()
		if err == nil || !errors.Is(err, ErrRateLimited) || attempt >= retries {
			return text, err
		}

		delay := base << attempt
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
