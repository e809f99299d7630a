// Package common holds the error kinds shared between services and
// controllers: multi-message validation failures, point-lookup misses and
// authentication rejections.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Authentication failures, one distinct message each.
var (
	ErrUnknownUser     = errors.New("No such user. Check the username and try again.")
	ErrUnconfirmedUser = errors.New("This account has not been confirmed yet. Check your email for the confirmation link.")
	ErrWrongPassword   = errors.New("Incorrect password. Try again.")
)

// ValidationError carries every message collected before a write was
// attempted, not just the first one.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// NewValidationError wraps the collected messages in a ValidationError.
func NewValidationError(messages []string) error {
	return &ValidationError{Messages: messages}
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

// NotFoundError marks a point lookup that matched nothing. It is distinct
// from the storage layer's record-not-found error so callers never depend on
// gorm internals.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// IsNotFoundError reports whether err is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func NewErrorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}
