package posetrack

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the pose backend could not be reached.
	ErrUnavailable = errors.New("pose backend unavailable")

	// ErrTimeout indicates a request exceeded its deadline.
	ErrTimeout = errors.New("pose backend request timed out")

	// ErrBadResponse indicates a response body could not be decoded.
	ErrBadResponse = errors.New("invalid pose backend response")
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: pose backend returned status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: pose backend returned status %d: %s", e.Op, e.Code, e.Body)
}
