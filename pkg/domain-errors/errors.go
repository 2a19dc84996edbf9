// Package domainerrors provides coded errors for the service's domain layer.
//
// Services attach a stable Code to every error they return so transport
// layers can translate failures into HTTP responses without string matching,
// and so tests can assert on failure classes instead of messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error. Codes are part of the API contract between
// services and transports; messages are not.
type Code string

const (
	// CodeBadRequest marks malformed or unparseable input.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks well-formed input that fails validation.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a missing entity (unknown brand, product, log row).
	CodeNotFound Code = "not_found"
	// CodeConflict marks a request that clashes with existing state, such as
	// a transaction that was already processed.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks a broken domain invariant. It indicates a
	// programming or configuration defect, not a user error.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeUnavailable marks a dependency that could not be reached when its
	// availability was required for a correct outcome.
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks everything else.
	CodeInternal Code = "internal"
)

// Error is a domain error with a classification code.
type Error struct {
	ErrCode Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{ErrCode: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{ErrCode: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. The cause stays
// reachable through errors.Is / errors.As.
func Wrap(err error, code Code, message string) error {
	return &Error{ErrCode: code, Message: message, Cause: err}
}

// CodeOf extracts the code from err, walking the wrap chain. Errors without a
// domain code report CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.ErrCode
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code anywhere in its chain,
// including domain errors wrapped inside other domain errors.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.ErrCode == code {
			return true
		}
		err = de.Cause
	}
	return false
}

// Is is an alias for HasCode, kept for call-site readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// ToHTTPStatus maps a domain code to the HTTP status used in error envelopes.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeInvariantViolation, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
