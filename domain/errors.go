// server/domain/errors.go
package domain

import "errors"

var ErrNotFound = errors.New("todo not found")

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
