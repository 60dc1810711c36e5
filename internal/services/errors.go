package services

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when an operation references a user that does not exist.
var ErrUserNotFound = errors.New("user not found")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
