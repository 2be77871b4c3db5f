package coach

import "errors"

var (
	// ErrDisabled indicates the coach is turned off in configuration.
	ErrDisabled = errors.New("coach disabled")

	// ErrUnavailable indicates the coach endpoint is unreachable.
	ErrUnavailable = errors.New("coach unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("coach request timed out")

	// ErrRateLimited indicates the local request budget could not be met
	// before the deadline.
	ErrRateLimited = errors.New("coach rate limit exceeded")

	// ErrInvalidOutput indicates the reply could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid coach output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("coach retry attempts exhausted")
)
