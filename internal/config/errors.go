package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates an explicitly requested configuration file
// doesn't exist.
var ErrFileNotFound = errors.New("config file not found")

// ValidationError represents a single validation failure.
type ValidationError struct {
	// Path is the dot-separated key of the invalid value.
	Path string

	// Message describes what's wrong.
	Message string

	// Value is the invalid value (may be nil).
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Errors), strings.Join(msgs, "\n  - "))
}

// Add adds a validation error.
func (e *ValidationErrors) Add(path, message string) {
	e.Errors = append(e.Errors, &ValidationError{
		Path:    path,
		Message: message,
	})
}

// AddWithValue adds a validation error with the invalid value.
func (e *ValidationErrors) AddWithValue(path, message string, value any) {
	e.Errors = append(e.Errors, &ValidationError{
		Path:    path,
		Message: message,
		Value:   value,
	})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Len returns the number of errors.
func (e *ValidationErrors) Len() int {
	return len(e.Errors)
}

// AsError returns nil if no errors, otherwise returns self.
func (e *ValidationErrors) AsError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// ErrorsForPath returns all errors for a specific path.
func (e *ValidationErrors) ErrorsForPath(path string) []*ValidationError {
	var result []*ValidationError
	for _, err := range e.Errors {
		if err.Path == path {
			result = append(result, err)
		}
	}
	return result
}
