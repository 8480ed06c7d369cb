package app

import (
	"context"
	"errors"
)

// Application errors.
var (
	// ErrQuit signals that a quit key was pressed.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without a display surface.
	ErrNoBackend = errors.New("no display surface")

	// ErrInvalidOptions indicates New was given unusable options.
	ErrInvalidOptions = errors.New("invalid options")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// IsCleanExit reports whether err ends a run without failure: a quit key
// or a cancelled context.
func IsCleanExit(err error) bool {
	return err == nil || errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled)
}
