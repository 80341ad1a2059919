package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func fastPolicy(attempts int) *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		Retryable:   DefaultRetryable,
	}
}

func TestRetryPolicy_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_RetriesServerError(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &googleapi.Error{Code: 503}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_RetriesRateLimit(t *testing.T) {
	calls := 0
	err := fastPolicy(2).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return &googleapi.Error{Code: 429}
	})
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryPolicy_DoesNotRetryClientError(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return &googleapi.Error{Code: 400}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_ExhaustsAttempts(t *testing.T) {
	calls := 0
	sentinel := errors.New("network down")
	err := fastPolicy(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := &RetryPolicy{MaxAttempts: 5, BaseDelay: time.Minute}
	calls := 0
	err := policy.Do(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDefaultRetryable_ContextErrorsNotRetried(t *testing.T) {
	assert.False(t, DefaultRetryable(context.Canceled))
	assert.False(t, DefaultRetryable(context.DeadlineExceeded))
	assert.True(t, DefaultRetryable(errors.New("connection reset")))
}
