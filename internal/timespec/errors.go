package timespec

import (
	"errors"
	"fmt"
	"syscall"
)

// Error is returned by the conversion and arithmetic routines.
//
// Codes:
//   - ErrCodeInvalidArgument: nil input, denormalized or out-of-range timestamp
//   - ErrCodeTimedOut: the target time has already elapsed
//   - ErrCodeInternal: subtraction borrow left negative nanoseconds
//
// TimedOut is a control signal rather than a failure; callers use it to skip
// a wait.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the routine that failed (e.g. "to_ticks").
	Op string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes timespec errors.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates a nil or malformed timestamp.
	ErrCodeInvalidArgument ErrorCode = "EINVAL"

	// ErrCodeTimedOut indicates the deadline is already in the past.
	ErrCodeTimedOut ErrorCode = "ETIMEDOUT"

	// ErrCodeInternal indicates an inconsistency during subtraction.
	ErrCodeInternal ErrorCode = "EINTERNAL"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidArgument returns true if err carries ErrCodeInvalidArgument.
func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrCodeInvalidArgument)
}

// IsTimedOut returns true if err carries ErrCodeTimedOut.
func IsTimedOut(err error) bool {
	return hasCode(err, ErrCodeTimedOut)
}

// IsInternal returns true if err carries ErrCodeInternal.
func IsInternal(err error) bool {
	return hasCode(err, ErrCodeInternal)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a
// timespec error.
func CodeOf(err error) ErrorCode {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// Errno maps err to the POSIX error number a public API would return.
// A nil error maps to 0. Internal errors surface as EINVAL.
func Errno(err error) syscall.Errno {
	if err == nil {
		return 0
	}
	if IsTimedOut(err) {
		return syscall.ETIMEDOUT
	}
	return syscall.EINVAL
}

func hasCode(err error, code ErrorCode) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

func invalidArgument(op, message string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Op: op, Message: message}
}

func timedOut(op, message string) *Error {
	return &Error{Code: ErrCodeTimedOut, Op: op, Message: message}
}

func internalError(op, message string) *Error {
	return &Error{Code: ErrCodeInternal, Op: op, Message: message}
}

// NewInvalidArgumentError builds an InvalidArgument error for callers
// outside this package.
func NewInvalidArgumentError(op, message string) *Error {
	return invalidArgument(op, message)
}

// NewTimedOutError builds a TimedOut error for callers outside this package
// that detect an elapsed deadline on their own.
func NewTimedOutError(op, message string) *Error {
	return timedOut(op, message)
}
