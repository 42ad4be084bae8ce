package models

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, RateLimitDelay: time.Millisecond, ServerErrorDelay: time.Millisecond}
}

func TestCallWithRetryRecoversFromRateLimit(t *testing.T) {
	calls := 0
	got, err := CallWithRetry(context.Background(), fastPolicy(3), func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("429 Too Many Requests")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestCallWithRetryFailsFastOnClientError(t *testing.T) {
	calls := 0
	_, err := CallWithRetry(context.Background(), fastPolicy(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("401 invalid api key")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "401 invalid api key", err.Error())
}

func TestCallWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	serverErr := errors.New("502 bad gateway")
	_, err := CallWithRetry(context.Background(), fastPolicy(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, serverErr
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, serverErr)
	assert.Equal(t, 3, calls)
}

func TestCallWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 5, RateLimitDelay: time.Hour}

	calls := 0
	_, err := CallWithRetry(ctx, policy, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("rate limit exceeded")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewRetryPolicy(t *testing.T) {
	assert.Equal(t, 5, NewRetryPolicy(5).MaxAttempts)
	assert.Equal(t, DefaultRetryPolicy().MaxAttempts, NewRetryPolicy(0).MaxAttempts)
}
