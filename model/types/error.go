package types

import (
	"errors"
	"fmt"
)

var (
	// ErrCallbackFailed matches every CallbackError via errors.Is
	ErrCallbackFailed = errors.New("callback failed")
	// ErrCallPointNotFound is returned when no handler serves a call point
	ErrCallPointNotFound = errors.New("call point not found")
	// ErrDuplicateCallPoint is returned when a call point is registered twice
	ErrDuplicateCallPoint = errors.New("call point already registered")
)

// CallbackError is the single failure kind surfaced to the host by action
// callbacks. It carries the cause.
type CallbackError struct {
	CallPoint string
	Message   string
	Cause     error
}

func (e *CallbackError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.CallPoint + " failed"
	}
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *CallbackError) Unwrap() error {
	return e.Cause
}

func (e *CallbackError) Is(target error) bool {
	return target == ErrCallbackFailed
}

// NewCallbackError wraps cause, reusing an existing CallbackError as is.
func NewCallbackError(callPoint, message string, cause error) error {
	var cbErr *CallbackError
	if errors.As(cause, &cbErr) {
		return cause
	}
	return &CallbackError{CallPoint: callPoint, Message: message, Cause: cause}
}

// NewPanicError converts a recovered value into a CallbackError.
func NewPanicError(callPoint, message string, r interface{}) error {
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("panic: %v", r)
	}
	return &CallbackError{CallPoint: callPoint, Message: message, Cause: cause}
}

func NewCallPointNotFoundError(callPoint string) error {
	return fmt.Errorf("%w: %v", ErrCallPointNotFound, callPoint)
}

func NewDuplicateCallPointError(callPoint string) error {
	return fmt.Errorf("%w: %v", ErrDuplicateCallPoint, callPoint)
}
