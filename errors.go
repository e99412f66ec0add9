// errors.go: structured error handling for the cuckoo table engine.
//
// Mirrors the error-code/context/retryable pattern used throughout the
// ambient stack this package borrows from: every error carries a
// stable code, a human message, and enough structured context to
// explain itself in a log line without string parsing.
package cuckoo

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes returned by the engine.
const (
	ErrCodeOversized          errors.ErrorCode = "CUCKOO_OVERSIZED"
	ErrCodeAlreadyInitialized errors.ErrorCode = "CUCKOO_ALREADY_INITIALIZED"
	ErrCodeAllocFailed        errors.ErrorCode = "CUCKOO_ALLOC_FAILED"
	ErrCodeNotInitialized     errors.ErrorCode = "CUCKOO_NOT_INITIALIZED"
	ErrCodeInvalidExpire      errors.ErrorCode = "CUCKOO_INVALID_EXPIRE"
	ErrCodeInvalidConfig      errors.ErrorCode = "CUCKOO_INVALID_CONFIG"
)

const (
	msgOversized          = "record does not fit in a slot"
	msgAlreadyInitialized = "engine has already been set up"
	msgAllocFailed        = "slab allocation failed"
	msgNotInitialized     = "engine has not been set up"
	msgInvalidExpire      = "expire must be nonzero"
	msgInvalidConfig      = "invalid configuration"
)

// NewErrOversized reports that klen+vlen+overhead exceeds chunkSize.
func NewErrOversized(klen, vlen, overhead, chunkSize uint32) error {
	return errors.NewWithContext(ErrCodeOversized, msgOversized, map[string]interface{}{
		"klen":       klen,
		"vlen":       vlen,
		"overhead":   overhead,
		"chunk_size": chunkSize,
	})
}

// NewErrAlreadyInitialized reports a second Setup without an
// intervening Teardown.
func NewErrAlreadyInitialized() error {
	return errors.New(ErrCodeAlreadyInitialized, msgAlreadyInitialized)
}

// NewErrAllocFailed wraps a slab allocation failure. cause is nil in
// practice (Go's allocator panics rather than returning an error on
// OOM) but the constructor accepts one for symmetry with real
// allocator-backed stores.
func NewErrAllocFailed(size uint64, cause error) error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeAllocFailed, msgAllocFailed).
			WithContext("requested_bytes", size).
			WithSeverity("critical")
	}
	return errors.NewWithField(ErrCodeAllocFailed, msgAllocFailed, "requested_bytes", size).
		WithSeverity("critical")
}

// NewErrNotInitialized reports an operation attempted before Setup.
func NewErrNotInitialized(operation string) error {
	return errors.NewWithField(ErrCodeNotInitialized, msgNotInitialized, "operation", operation)
}

// NewErrInvalidExpire reports a caller-supplied expire of 0, which is
// reserved to mean "empty slot" (see item.go).
func NewErrInvalidExpire() error {
	return errors.New(ErrCodeInvalidExpire, msgInvalidExpire)
}

// NewErrInvalidConfig reports a Config field that Validate rejects
// outright rather than defaulting.
func NewErrInvalidConfig(reason string) error {
	return errors.NewWithField(ErrCodeInvalidConfig, msgInvalidConfig, "reason", reason)
}

// IsOversized reports whether err is an oversized-record error.
func IsOversized(err error) bool { return errors.HasCode(err, ErrCodeOversized) }

// IsAlreadyInitialized reports whether err is an already-initialized error.
func IsAlreadyInitialized(err error) bool {
	return errors.HasCode(err, ErrCodeAlreadyInitialized)
}

// IsNotInitialized reports whether err is a not-initialized error.
func IsNotInitialized(err error) bool { return errors.HasCode(err, ErrCodeNotInitialized) }

// IsInvalidExpire reports whether err is an invalid-expire error.
func IsInvalidExpire(err error) bool { return errors.HasCode(err, ErrCodeInvalidExpire) }

// IsInvalidConfig reports whether err is an invalid-configuration error.
func IsInvalidConfig(err error) bool { return errors.HasCode(err, ErrCodeInvalidConfig) }

// ErrorCode extracts the stable code carried by err, or "" if err is
// nil or was not produced by this package.
func ErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
