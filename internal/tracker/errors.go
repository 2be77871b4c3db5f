package tracker

import "errors"

var (
	// ErrServiceUnavailable indicates the liveness probe failed or timed out.
	ErrServiceUnavailable = errors.New("tracking service unavailable")

	// ErrResetFailed indicates the tracking service rejected the reset or timed out.
	ErrResetFailed = errors.New("tracking service reset failed")

	// ErrStatusQueryFailed indicates a status query failed. Terminal during
	// start, transient while running.
	ErrStatusQueryFailed = errors.New("tracking service status query failed")

	// ErrPersistenceFailed indicates the completed session record was not saved.
	// The session still counts as completed.
	ErrPersistenceFailed = errors.New("exercise record not saved")

	// ErrAlreadyRunning is returned by Start while a session is running.
	ErrAlreadyRunning = errors.New("session already running")

	// ErrNotRunning is returned by Stop when no session is running.
	ErrNotRunning = errors.New("no session running")

	// ErrStartAborted is returned by a Start that was superseded by a newer
	// Start, by Close, or by cancellation of its context.
	ErrStartAborted = errors.New("session start aborted")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("tracker closed")

	// ErrInvalidConfig is returned for a session config that cannot be tracked.
	ErrInvalidConfig = errors.New("invalid session config")
)
