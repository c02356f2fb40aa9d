// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy shared by every container in hioload-conc.

package api

import "github.com/cockroachdb/errors"

// Transient conditions. Containers report these through bool/ok returns on
// the try-variants and through these sentinels on the error-returning calls.
var (
	ErrLockTimeout = errors.New("lock acquisition timed out")
	ErrDisposed    = errors.New("container is disposed")
)

// Caller-logic conditions.
var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrEmptyContainer   = errors.New("container is empty")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// ErrorCode classifies an error for callers that switch on kind rather than
// identity (metrics labels, logs).
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeTimeout
	ErrCodeDisposed
	ErrCodeDuplicateKey
	ErrCodeEmpty
	ErrCodeCapacity
	ErrCodeIndex
	ErrCodeInvalidArgument
	ErrCodeInternal
)

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeDisposed:
		return "disposed"
	case ErrCodeDuplicateKey:
		return "duplicate_key"
	case ErrCodeEmpty:
		return "empty"
	case ErrCodeCapacity:
		return "capacity"
	case ErrCodeIndex:
		return "index"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// CodeOf maps err onto the taxonomy. A nil error is ErrCodeOK.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ErrCodeOK
	case errors.Is(err, ErrLockTimeout):
		return ErrCodeTimeout
	case errors.Is(err, ErrDisposed):
		return ErrCodeDisposed
	case errors.Is(err, ErrDuplicateKey):
		return ErrCodeDuplicateKey
	case errors.Is(err, ErrEmptyContainer):
		return ErrCodeEmpty
	case errors.Is(err, ErrCapacityExceeded):
		return ErrCodeCapacity
	case errors.Is(err, ErrIndexOutOfRange):
		return ErrCodeIndex
	case errors.Is(err, ErrInvalidArgument):
		return ErrCodeInvalidArgument
	default:
		return ErrCodeInternal
	}
}

// IsTransient reports whether err is expected under contention or teardown
// and may reasonably be retried by the caller.
func IsTransient(err error) bool {
	switch CodeOf(err) {
	case ErrCodeTimeout, ErrCodeDisposed:
		return true
	}
	return false
}
