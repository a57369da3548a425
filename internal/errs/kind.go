package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal is a store or unexpected failure. Its message is never
	// shown to clients.
	KindInternal Kind = iota

	// KindInvalidArgument is malformed or out-of-range input.
	KindInvalidArgument

	// KindNotFound means no matching record exists.
	KindNotFound

	// KindConflict is a uniqueness violation.
	KindConflict
)

// String returns the machine-friendly name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// GenericInternalMessage is the only message clients ever see for KindInternal.
const GenericInternalMessage = "An unexpected error occurred. Please try again later."

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is a classified application error.
//
// Code is optional; when empty the HTTP status text is used
// (e.g. "BAD_REQUEST"). The wrapped cause is kept for logging only.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []FieldError
	cause   error
}

// Error returns the client-safe message, followed by the cause for logs.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error of the same kind.
//
// This lets callers write errors.Is(err, errs.ErrNotFound) without
// comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithCode returns a copy of e carrying a custom machine code.
func (e *Error) WithCode(code string) *Error {
	clone := *e
	clone.Code = code
	return &clone
}

// Sentinels for errors.Is comparisons by kind.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrInternal        = &Error{Kind: KindInternal}
)

// InvalidArgument creates a KindInvalidArgument error.
func InvalidArgument(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message, Fields: fields}
}

// InvalidArgumentf is InvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...any) *Error {
	return InvalidArgument(fmt.Sprintf(format, args...))
}

// NotFound creates a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NotFoundf is NotFound with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Conflict creates a KindConflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Conflictf is Conflict with a formatted message.
func Conflictf(format string, args ...any) *Error {
	return Conflict(fmt.Sprintf(format, args...))
}

// Internal wraps cause as a KindInternal error with the generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: GenericInternalMessage, cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
// Unclassified errors are KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsClassified reports whether err carries an *Error anywhere in its chain.
func IsClassified(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr)
}
