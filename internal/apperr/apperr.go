// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package apperr implements a small error taxonomy: a small set of
// semantic kinds, independent of transport, each mapping to one HTTP
// status. Handlers in internal/dbcapi and internal/starterapi use
// errors.As against *Error to pick a status code and, for Forbidden and
// Internal, to substitute a generic message before it reaches a client.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is one of the taxonomy buckets in this error model.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// Error is a taxonomy-tagged error. Cause is logged but never serialized
// to an HTTP client for Forbidden/Internal kinds.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus maps the taxonomy kind to an HTTP status code.
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

// PublicMessage is what a client may see. Forbidden and Internal always
// return a generic message regardless of Message/Cause, so SQL errors
// and path details never leak to a client.
func (e *Error) PublicMessage() string {
	switch e.Kind {
	case KindForbidden:
		return "forbidden"
	case KindInternal:
		return "internal error"
	default:
		return e.Message
	}
}

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string, cause error) *Error {
	return &Error{Kind: KindForbidden, Message: msg, Cause: cause}
}
func NotFound(msg string) *Error  { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error  { return &Error{Kind: KindConflict, Message: msg} }
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Cause: cause}
}

// As is a convenience wrapper over errors.As for the common case.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
