// Package apperr defines the closed set of error kinds surfaced by the auth
// state machine and the portal service functions.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure the UI can react to.
type Kind string

const (
	InvalidCredentials    Kind = "invalid_credentials"
	UnverifiedAccount     Kind = "unverified_account"
	AccountCreationFailed Kind = "account_creation_failed"
	ProfileNotFound       Kind = "profile_not_found"
	RemoteUnavailable     Kind = "remote_unavailable"
	InvalidInput          Kind = "invalid_input"
	NotFound              Kind = "not_found"
)

// Error implements error so that errors.Is(err, apperr.InvalidCredentials) works.
func (k Kind) Error() string { return string(k) }

// Error carries a kind, a user-facing message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New builds an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap builds an Error of the given kind around err.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind carried by err, or RemoteUnavailable for anything
// that did not come through this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return RemoteUnavailable
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "service temporarily unavailable"
}
