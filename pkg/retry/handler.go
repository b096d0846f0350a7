package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/rohmanhakim/richtext-icons/pkg/failure"
)

// Retry executes the provided function with retry logic.
// It will retry the function up to MaxAttempts times, applying exponential
// backoff between attempts. Only retryable errors trigger a retry; the
// first fatal error is returned as is.
//
// Type parameter T represents the return type of the function being retried.
func Retry[T any](
	ctx context.Context,
	retryParam RetryParam,
	fn func() (T, failure.ClassifiedError),
) (T, failure.ClassifiedError) {
	var lastErr failure.ClassifiedError
	var zero T

	if retryParam.MaxAttempts < 1 {
		return zero, &RetryError{
			Message:   "max attempt cannot be 0",
			Cause:     ErrCauseZeroAttempt,
			Retryable: false,
		}
	}

	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isErrorRetryable(err) {
			return zero, err
		}
		if attempt == retryParam.MaxAttempts {
			break
		}

		timer := time.NewTimer(retryParam.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, &RetryError{
				Message:   ctx.Err().Error(),
				Cause:     ErrCauseCancelled,
				Retryable: false,
				Last:      lastErr,
			}
		case <-timer.C:
		}
	}

	return zero, &RetryError{
		Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", retryParam.MaxAttempts, lastErr),
		Cause:     ErrCauseExhaustedAttempts,
		Retryable: true,
		Last:      lastErr,
	}
}

// isErrorRetryable prefers an IsRetryable method and falls back to the
// severity.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return err.Severity() == failure.SeverityRecoverable
}
