package models

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// RetryPolicy bounds retries of provider calls. Rate limit and server
// errors are retried with exponential backoff; other errors fail fast.
type RetryPolicy struct {
	MaxAttempts      int
	RateLimitDelay   time.Duration
	ServerErrorDelay time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:      3,
		RateLimitDelay:   20 * time.Second,
		ServerErrorDelay: 2 * time.Second,
	}
}

// NewRetryPolicy returns the default policy with maxAttempts attempts.
func NewRetryPolicy(maxAttempts int) RetryPolicy {
	policy := DefaultRetryPolicy()
	if maxAttempts > 0 {
		policy.MaxAttempts = maxAttempts
	}
	return policy
}

// CallWithRetry runs call until it succeeds, fails with a non-retryable
// error, runs out of attempts or ctx is done.
func CallWithRetry[T any](ctx context.Context, policy RetryPolicy, call func(context.Context) (T, error)) (T, error) {
	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := call(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var wait time.Duration
		switch {
		case isRateLimitError(err):
			wait = backoff(policy.RateLimitDelay, attempt)
		case isServerError(err):
			wait = backoff(policy.ServerErrorDelay, attempt)
		default:
			return zero, err
		}
		if attempt == attempts-1 {
			break
		}

		slog.Warn("retrying provider call", "attempt", attempt+1, "wait", wait.String(), "error", err.Error())
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-timer.C:
		}
	}
	return zero, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

func backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	return base << attempt
}

func statusCode(err error) int {
	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return openaiErr.StatusCode
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return genaiErr.Code
	}
	var genaiPtr *genai.APIError
	if errors.As(err, &genaiPtr) && genaiPtr != nil {
		return genaiPtr.Code
	}
	return 0
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	if statusCode(err) == http.StatusTooManyRequests {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	if code := statusCode(err); code >= 500 {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
