package portraitgen

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError is returned by providers when the service rejects a call for quota reasons.
// The orchestrator never surfaces it; it only distinguishes the failure in logs.
type RateLimitError struct {
	RetryAfter time.Duration
	LimitType  string
	Model      string
	Err        error // Underlying error from the provider
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: %s limit, retry after %v",
		e.Model, e.LimitType, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks if an error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// ErrStorageNotConfigured is returned when a download is attempted
// without a configured storage backend.
var ErrStorageNotConfigured = errors.New("storage not configured")

// Outcome classifies a single generation call. It is used for logging only;
// callers of GenerateOne see just image or no image.
type Outcome string

const (
	OutcomeImage       Outcome = "image"
	OutcomeNoImage     Outcome = "no_image"
	OutcomeFailed      Outcome = "failed"
	OutcomeRateLimited Outcome = "rate_limited"
)

// classifyError maps a provider error to its Outcome.
func classifyError(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeImage
	case IsRateLimitError(err):
		return OutcomeRateLimited
	default:
		return OutcomeFailed
	}
}
