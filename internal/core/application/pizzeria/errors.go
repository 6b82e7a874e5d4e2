package pizzeria

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRejected is returned by Submit once the pizzeria is closed.
	ErrRejected = errors.New("pizzeria is closed, order rejected")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("pizzeria is already running")
	// ErrShutdownTimeout matches every ShutdownTimeoutError.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// ShutdownTimeoutError reports a stage that could not drain in time after close.
type ShutdownTimeoutError struct {
	Stage   string
	Pending int
	Timeout time.Duration
	Cause   error
}

func (e *ShutdownTimeoutError) Error() string {
	msg := fmt.Sprintf("%s: %s stage still has %d pending order(s) after %s",
		ErrShutdownTimeout, e.Stage, e.Pending, e.Timeout)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ShutdownTimeoutError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrShutdownTimeout}
	}
	return []error{ErrShutdownTimeout, e.Cause}
}
