package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed call by how a caller should react to it.
type Kind string

// Error kinds.
const (
	KindValidation Kind = "validation" // fix the input; never retried
	KindAuth       Kind = "auth"       // sign in again
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict" // state changed under the caller
	KindTransient  Kind = "transient"
)

// Error is returned by every Client method that fails.
type Error struct {
	Kind    Kind
	Status  int // 0 when no response was received
	Message string
	// Fields holds per-field messages for validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

// KindOf returns the kind of err, or KindTransient for errors that did not
// come from the client.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindTransient
}

// Canceled reports whether err is the result of the caller's context being
// canceled.
func Canceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindTransient
	default:
		return KindValidation
	}
}

// validationError builds an error for input rejected before sending.
func validationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}
