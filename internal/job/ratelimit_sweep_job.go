package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/yashp/portfolio-assistant/internal/assistant"
)

// RateLimitSweepJob evicts expired client records so the rate-limit map
// doesn't grow with every visitor the site has ever had.
type RateLimitSweepJob struct {
	limiter *assistant.RateLimiter
}

func NewRateLimitSweepJob(limiter *assistant.RateLimiter) *RateLimitSweepJob {
	return &RateLimitSweepJob{limiter: limiter}
}

func (j *RateLimitSweepJob) Name() string {
	return "ratelimit_sweep"
}

func (j *RateLimitSweepJob) Run(ctx context.Context) error {
	if j.limiter == nil {
		return nil
	}
	removed := j.limiter.SweepExpired()
	if removed > 0 {
		logutil.GetLogger(ctx).Debug("rate limit records swept",
			zap.Int("removed", removed), zap.Int("remaining", j.limiter.Size()))
	}
	return nil
}
