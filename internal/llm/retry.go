package llm

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/googleapi"
)

// RetryPolicy is the single reusable retry/backoff policy for calls to the
// generative-text dependency. Transport failures and retryable server
// statuses (429, 5xx) are retried with exponential backoff; other client
// errors fail immediately.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// Retryable decides whether an error is worth another attempt.
	// Nil means DefaultRetryable.
	Retryable func(error) bool
}

// DefaultRetryPolicy returns the standard policy: 3 attempts, 500ms base
// delay, doubling per attempt.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		Retryable:   DefaultRetryable,
	}
}

// DefaultRetryable treats rate limits (429) and server errors (5xx) as
// retryable. Other API errors (4xx) are not. Errors with no HTTP status,
// such as transport failures, are retried.
func DefaultRetryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Do runs fn, retrying per the policy. It returns the last error when all
// attempts are exhausted and respects context cancellation between attempts.
func (p *RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = DefaultRetryable
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := p.BaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
