package retry

import (
	"fmt"

	"github.com/rohmanhakim/richtext-icons/pkg/failure"
)

type RetryErrorCause string

const (
	ErrCauseZeroAttempt       RetryErrorCause = "zero attempt"
	ErrCauseExhaustedAttempts RetryErrorCause = "exhausted attempts"
	ErrCauseCancelled         RetryErrorCause = "cancelled"
)

type RetryError struct {
	Message   string
	Retryable bool
	Cause     RetryErrorCause
	// Last is the error of the final attempt, if any.
	Last failure.ClassifiedError
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("retry error: %s, %s", e.Cause, e.Message)
}

func (e *RetryError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *RetryError) IsRetryable() bool {
	return e.Retryable
}

// Unwrap exposes the last attempt's error to errors.As.
func (e *RetryError) Unwrap() error {
	if e.Last == nil {
		return nil
	}
	return e.Last
}
