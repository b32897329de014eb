// Package apperror holds the error taxonomy shared by services, middleware
// and handlers. Every concrete error unwraps to exactly one kind so callers
// can branch with errors.Is.
package apperror

import (
	"errors"
	"strings"
)

// Kinds
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

var (
	ErrUserNotFound        = New(ErrNotFound, "user not found")
	ErrSocialEventNotFound = New(ErrNotFound, "social event not found")
	ErrAttendeeNotFound    = New(ErrNotFound, "attendee not found")

	ErrUserAlreadyExists = New(ErrConflict, "user already exists")
	ErrAlreadyRegistered = New(ErrConflict, "user is already registered for this social event")
	ErrSocialEventFull   = New(ErrConflict, "social event has no free places")

	ErrInvalidCredentials = New(ErrUnauthorized, "invalid email or password")
	ErrInvalidToken       = New(ErrUnauthorized, "invalid token")
	ErrInvalidUser        = New(ErrUnauthorized, "no user id found in token")
	ErrMissingToken       = New(ErrUnauthorized, "access token required")

	ErrNoRoleClaim      = New(ErrForbidden, "user token has no role")
	ErrRoleNotPermitted = New(ErrForbidden, "user token doesn't have the required role")
	ErrNotAttendeeOwner = New(ErrForbidden, "attendee belongs to another user")
)

type kindError struct {
	kind error
	msg  string
}

// New returns an error with the given message that matches kind under errors.Is.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// ValidationError aggregates every rule violation found on one input.
type ValidationError struct {
	Errors []string
}

// NewValidationError builds a ValidationError from individual messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Merge combines validation failures. Non-validation errors are returned as is.
func Merge(errs ...error) error {
	var messages []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		messages = append(messages, verr.Errors...)
	}
	if len(messages) == 0 {
		return nil
	}
	return NewValidationError(messages...)
}

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
