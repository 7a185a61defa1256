package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized is the only error a caller sees for a missing, malformed, expired or
	// unknown-subject token, and for bad login credentials.
	ErrUnauthorized = errors.New("could not validate credentials")
	ErrTokenInvalid = errors.New("token invalid")

	ErrConflict      = errors.New("resource already exists")
	ErrUsernameTaken = &wrapped{msg: "username already registered", base: ErrConflict}
	ErrEmailTaken    = &wrapped{msg: "email already registered", base: ErrConflict}

	ErrNotFound       = errors.New("not found")
	ErrUserNotFound   = &wrapped{msg: "user not found", base: ErrNotFound}
	ErrRecipeNotFound = &wrapped{msg: "recipe not found", base: ErrNotFound}

	// ErrNotFoundOrForbidden is returned by owner-only mutations; it does not say whether the
	// target exists.
	ErrNotFoundOrForbidden = errors.New("recipe not found or not owned by you")

	ErrInternal = errors.New("internal error")

	ErrStorageUnavailable = errors.New("image storage is not configured")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

type wrapped struct {
	msg  string
	base error
}

func (e *wrapped) Error() string { return e.msg }
func (e *wrapped) Unwrap() error { return e.base }

// ValidationError lists every rejected field with a human readable reason.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, reason string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = reason
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns e when it carries at least one field, otherwise nil.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
