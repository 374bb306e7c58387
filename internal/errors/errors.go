// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. Kinds distinguish credential rejections (recoverable,
// surfaced to the user) from session expiry (handled internally by forcing logout).
//
// The package supports wrapping underlying errors while maintaining error kind information,
// making it easier to handle different types of failures appropriately.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// AuthFailed indicates the backend rejected a login attempt.
	AuthFailed Kind = "auth_failed"
	// SessionExpired indicates a token refresh failed and the session ended.
	SessionExpired Kind = "session_expired"
	// DecodeFailed indicates a response body did not match the expected schema.
	DecodeFailed Kind = "decode_failed"
	// StorageFailed indicates the persisted session record could not be read or written.
	StorageFailed Kind = "storage_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the outermost typed error, or "" for plain errors.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HasKind reports whether any error in the chain carries the given kind.
func HasKind(err error, kind Kind) bool {
	var e *E
	for stderrors.As(err, &e) {
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// Message returns the human-friendly message of a typed error,
// falling back to the plain error text.
func Message(err error) string {
	var e *E
	if stderrors.As(err, &e) {
		return e.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
