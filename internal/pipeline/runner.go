package pipeline

import (
	"context"
	"log"
	"time"
)

// RetryPolicy bounds how often a failed stage is re-invoked. MaxRetries is the
// number of re-invocations after the first failure; Delay is the fixed pause
// between attempts.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// Runner executes a stage under a retry policy. Retries re-run the whole stage
// from scratch.
type Runner struct {
	Policy RetryPolicy
}

// Run invokes the stage until it succeeds or the retry budget is exhausted.
// It returns the number of attempts made and, on exhaustion, the last error.
func (r Runner) Run(ctx context.Context, stage Stage, rc *RunContext) (int, error) {
	maxAttempts := r.Policy.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}

		lastErr = stage.Run(ctx, rc)
		if lastErr == nil {
			return attempt, nil
		}

		log.Printf("WARN: stage %s attempt %d/%d failed: %v", stage.Name(), attempt, maxAttempts, lastErr)

		if attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(r.Policy.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, ctx.Err()
		case <-timer.C:
		}
	}

	return maxAttempts, lastErr
}
