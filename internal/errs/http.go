package errs

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPError is the JSON body of every error response.
//
// Detail is always present. Code is a stable machine-readable code and
// Errors lists per-field validation failures when there are any.
//
//	{ "detail": "Employee with ID 7 not found", "code": "NOT_FOUND" }
type HTTPError struct {
	Detail string       `json:"detail"`
	Code   string       `json:"code"`
	Errors []FieldError `json:"errors,omitempty"`
}

// StatusOf maps a kind onto its HTTP status.
//
// KindConflict answers 400 rather than 409: duplicate emails have always
// been reported as a bad request to existing clients.
func StatusOf(kind Kind) int {
	switch kind {
	case KindInvalidArgument, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ToHTTP converts any error into a status and a client-safe body.
//
// Unclassified errors and KindInternal errors always produce a 500 with
// GenericInternalMessage, so causes never leak to clients.
func ToHTTP(err error) (int, HTTPError) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		return http.StatusInternalServerError, HTTPError{
			Detail: GenericInternalMessage,
			Code:   MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		}
	}

	status := StatusOf(appErr.Kind)

	code := appErr.Code
	if code == "" {
		code = MakeUpperCaseWithUnderscores(http.StatusText(status))
	}

	return status, HTTPError{
		Detail: appErr.Message,
		Code:   code,
		Errors: appErr.Fields,
	}
}

// FromStatus classifies a bare HTTP status (e.g. from the router) into an *Error.
func FromStatus(status int, message string) *Error {
	switch {
	case status == http.StatusNotFound:
		return NotFound(message)
	case status >= 400 && status < 500:
		return InvalidArgument(message).WithCode(MakeUpperCaseWithUnderscores(http.StatusText(status)))
	default:
		return Internal(errors.New(message))
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
