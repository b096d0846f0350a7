package retry

import (
	"time"
)

// RetryParam holds the parameters for retry logic.
// These parameters are passed from outside and should not be known by the
// retry handler internally.
type RetryParam struct {
	MaxAttempts int
	// Delay before the second attempt
	InitialDelay time.Duration
	// Factor applied to the delay after every failed attempt
	Multiplier float64
	// Cap on a single delay
	MaxDelay time.Duration
}

// NewRetryParam creates a new RetryParam with the given settings.
func NewRetryParam(
	maxAttempts int,
	initialDelay time.Duration,
	multiplier float64,
	maxDelay time.Duration,
) RetryParam {
	return RetryParam{
		MaxAttempts:  maxAttempts,
		InitialDelay: initialDelay,
		Multiplier:   multiplier,
		MaxDelay:     maxDelay,
	}
}

// DefaultRetryParam suits local file writes: a few quick attempts.
func DefaultRetryParam() RetryParam {
	return NewRetryParam(3, 50*time.Millisecond, 2.0, time.Second)
}

// delay returns the wait after the given failed attempt, starting at 1.
func (p RetryParam) delay(attempt int) time.Duration {
	d := p.InitialDelay
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
