package ai

import (
	"context"
	"errors"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type retryGenerator struct {
	next       IGenerator
	maxRetries int
	baseDelay  time.Duration
}

// NewRetryGenerator retries transient delegate failures with exponential
// backoff. Authentication failures and unconfigured providers are
// returned immediately: retrying a bad key only burns the caller's
// timeout budget.
func NewRetryGenerator(next IGenerator, maxRetries int, baseDelay time.Duration) IGenerator {
	if next == nil {
		return nil
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &retryGenerator{next: next, maxRetries: maxRetries, baseDelay: baseDelay}
}

func (r *retryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	delay := r.baseDelay
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
			delay *= 2
			logutil.GetLogger(ctx).Info("retrying generation",
				zap.Int("attempt", attempt), zap.Error(lastErr))
		}
		res, err := r.next.Generate(ctx, prompt)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, ErrAuth) || errors.Is(err, ErrUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}
