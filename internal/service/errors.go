package service

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced course or user does not exist.
var ErrNotFound = errors.New("service: not found")

// ValidationError reports malformed or out-of-range input. Field names the
// offending request field when known.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return "validation: " + e.Message
}

func errDuplicateUsername() *ValidationError {
	return &ValidationError{Field: "username", Message: "Username already exists"}
}
