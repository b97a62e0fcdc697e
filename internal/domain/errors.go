package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags every failure the core can produce. Callers branch on
// the kind, never on error strings.
type ErrorKind string

const (
	// ErrTimeout means a gateway call exceeded its bound.
	ErrTimeout ErrorKind = "timeout"
	// ErrBackendStatus means the transport succeeded but reported failure.
	ErrBackendStatus ErrorKind = "backend_status"
	// ErrEmptyResponse means no extractable text was found in any known
	// envelope shape.
	ErrEmptyResponse ErrorKind = "empty_response"
	// ErrMalformedInsight means text came back but did not parse or
	// validate as the expected structured shape.
	ErrMalformedInsight ErrorKind = "malformed_insight"
	// ErrInvalidInput means a caller-side precondition was violated;
	// the request never reached the network.
	ErrInvalidInput ErrorKind = "invalid_input"
	// ErrAuth means the auth endpoint reported failure.
	ErrAuth ErrorKind = "auth"
)

// Error is the tagged error carried across the core's public
// boundaries. Status is the HTTP status for backend_status and auth
// kinds, zero otherwise.
type Error struct {
	Kind   ErrorKind
	Detail string
	Status int
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Detail)
	}
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func NewTimeout(detail string) *Error {
	return &Error{Kind: ErrTimeout, Detail: detail}
}

func NewBackendStatus(status int, detail string) *Error {
	return &Error{Kind: ErrBackendStatus, Status: status, Detail: detail}
}

func NewEmptyResponse(detail string) *Error {
	return &Error{Kind: ErrEmptyResponse, Detail: detail}
}

func NewMalformedInsight(detail string) *Error {
	return &Error{Kind: ErrMalformedInsight, Detail: detail}
}

func NewInvalidInput(detail string) *Error {
	return &Error{Kind: ErrInvalidInput, Detail: detail}
}

func NewAuthError(status int, msg string) *Error {
	return &Error{Kind: ErrAuth, Status: status, Detail: msg}
}

// KindOf extracts the tag from any error in the chain. Untagged errors
// report an empty kind.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
