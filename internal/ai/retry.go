package ai

import (
	"context"
	"errors"
	"time"

	"github.com/spigell/resume-extractor/internal/utils"
	"go.uber.org/zap"
)

const (
	defaultRetryBaseDelay = time.Second
	defaultRetryMaxDelay  = 10 * time.Second
)

// RetryPolicy bounds the retries of a Generator.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

type retryingGenerator struct {
	next   Generator
	policy RetryPolicy
	logger *zap.Logger
}

// WithRetries wraps gen so that failed calls are repeated up to policy.MaxRetries times.
// The wrapped generator is returned as is when no retries are configured.
func WithRetries(gen Generator, policy RetryPolicy, logger *zap.Logger) Generator {
	if policy.MaxRetries <= 0 {
		return gen
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = defaultRetryBaseDelay
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = defaultRetryMaxDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &retryingGenerator{next: gen, policy: policy, logger: logger}
}

func (r *retryingGenerator) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := utils.Backoff(attempt, r.policy.BaseDelay, r.policy.MaxDelay)
			r.logger.Warn("retrying generation",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, delay); err != nil {
				return "", err
			}
		}

		output, err := r.next.Generate(ctx, prompt, params)
		if err == nil {
			return output, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (r *retryingGenerator) Provider() string { return r.next.Provider() }

func (r *retryingGenerator) Model() string { return r.next.Model() }
