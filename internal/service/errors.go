package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel for request validation failures. Every
// *ValidationError unwraps to it, so callers can match either the sentinel
// or the concrete type.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports which request field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
