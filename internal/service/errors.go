package service

import (
	"errors"
	"net/http"
)

// ErrorKind is the closed set of failure categories the services can return.
// Handlers translate a kind to an HTTP status in exactly one place.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// Error is the taxonomy carried across the service boundary. Code and Details
// are part of the wire contract: every error response is
// {"error":{"code","message","details?"}}.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string][]string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidation(message string, details map[string][]string) *Error {
	return &Error{Kind: KindValidation, Code: "BAD_REQUEST", Message: message, Details: details}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

func NewForbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: "CONFLICT", Message: message}
}

func NewInternal(message string) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_SERVER_ERROR", Message: message}
}

// AsError unwraps err into the taxonomy, folding anything unknown (DB faults
// included) into an internal error so nothing leaks to the client.
func AsError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return NewInternal("Internal Server Error")
}
