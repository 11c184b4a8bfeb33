package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/careerlift/resume-coach/backend/internal/model/interview"
)

// ErrUpstreamUnavailable is returned once the retry budget is spent.
var ErrUpstreamUnavailable = errors.New("completion upstream unavailable")

// RetryingCompletion wraps a Provider with a bounded retry policy. The
// backoff is linear: attempt index times the base delay. No state is
// shared between invocations.
type RetryingCompletion struct {
	provider  Provider
	attempts  int
	baseDelay time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewRetryingCompletion builds the wrapper. attempts counts total calls
// to the provider, not re-tries; values below 1 are coerced to 1.
func NewRetryingCompletion(provider Provider, attempts int, baseDelay time.Duration) *RetryingCompletion {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryingCompletion{
		provider:  provider,
		attempts:  attempts,
		baseDelay: baseDelay,
		sleep:     sleepContext,
	}
}

// Complete calls the provider, retrying transient failures. After the
// final attempt it reports ErrUpstreamUnavailable wrapping the last
// provider error.
func (r *RetryingCompletion) Complete(ctx context.Context, messages []*schema.Message) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		if attempt > 1 {
			// Linear backoff: 1x, 2x, ... the base delay.
			delay := time.Duration(attempt-1) * r.baseDelay
			if err := r.sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		text, err := r.provider.Generate(ctx, messages)
		if err == nil {
			return text, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("[retry] completion attempt %d/%d failed: %v", attempt, r.attempts, err)
	}

	return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, lastErr)
}

// CompleteQuestion is Complete for question-producing calls: when the
// budget is spent it degrades to a locally templated question instead
// of failing the request.
func (r *RetryingCompletion) CompleteQuestion(ctx context.Context, messages []*schema.Message, interviewType interview.Type, level, jobTitle string) (string, error) {
	text, err := r.Complete(ctx, messages)
	if err == nil {
		return text, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", err
	}

	question := FallbackQuestion(interviewType, level, jobTitle)
	log.Printf("[retry] falling back to templated %s question after exhausted retries", interviewType)
	return question, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
