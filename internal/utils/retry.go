package utils

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"
)

// RetryConfig controls backoff behaviour for WithRetry.
type RetryConfig struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	Timeout         time.Duration
	RetryableErrors []string
}

// RetryableFunc is an operation WithRetry can run more than once.
type RetryableFunc[T any] func(ctx context.Context) (T, error)

// DefaultRetryConfig retries transient network and throttling failures.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  1 * time.Second,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		Timeout:       30 * time.Second,
		RetryableErrors: []string{
			"timeout",
			"connection reset",
			"rate limit",
			"connection refused",
			"socket hang up",
			"5", // upstream error messages usually quote the 5xx status
		},
	}
}

// ScraperRetryConfig extends the default patterns for platform fetches,
// which sometimes answer with an HTML error or captcha page instead of JSON.
func ScraperRetryConfig() RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.RetryableErrors = append(cfg.RetryableErrors,
		"invalid character", // JSON decoder tripping over an HTML body
		"<",
	)
	return cfg
}

// IsRetryableError reports whether the error message matches any of the
// given substring patterns, case-insensitively.
func IsRetryableError(err error, patterns []string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range patterns {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// WithRetry runs the operation until it succeeds, a non-retryable error
// occurs, or attempts run out. Each attempt gets its own timeout and delays
// grow exponentially with up to 10% jitter.
func WithRetry[T any](ctx context.Context, operation RetryableFunc[T], config RetryConfig) (T, error) {
	var lastErr error
	var zero T

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, config.Timeout)
		result, err := operation(attemptCtx)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == config.MaxAttempts {
			break
		}
		if !IsRetryableError(err, config.RetryableErrors) {
			break
		}

		backoff := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
		delay := time.Duration(backoff)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
		if jitterRange := int64(delay) / 10; jitterRange > 0 {
			delay += time.Duration(rand.Int63n(jitterRange))
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
