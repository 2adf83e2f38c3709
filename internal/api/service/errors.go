package service

import (
	"errors"
	"time"
)

// Error kinds. Every failure a caller can act on wraps exactly one of
// these; anything else is an internal error.
var (
	ErrValidation  = errors.New("validation_error")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not_found")
	ErrAuth        = errors.New("auth_error")
	ErrRateLimited = errors.New("rate_limited")
)

// Error is a client facing failure. Message is safe to show to the user;
// Details maps request fields to what is wrong with them.
type Error struct {
	Kind       error
	Message    string
	Details    map[string]string
	RetryAfter int
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func validationError(msg string, details map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: msg, Details: details}
}

func conflictError(field, msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg, Details: map[string]string{field: "already exists"}}
}

func notFoundError(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func authError(msg string) *Error {
	return &Error{Kind: ErrAuth, Message: msg}
}

// rateLimitedError reports how long the caller has to wait, in whole
// seconds rounded up and never less than one.
func rateLimitedError(msg string, wait time.Duration) *Error {
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return &Error{Kind: ErrRateLimited, Message: msg, RetryAfter: secs}
}
