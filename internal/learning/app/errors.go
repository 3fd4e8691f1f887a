// Package app implements the application use cases of the learning platform.
package app

import "errors"

// Use-case boundary errors.
var (
	// ErrNotFound covers both true absence and authorization denial:
	// callers cannot distinguish a protected resource from a missing one.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation wraps rejected input fields.
	ErrValidation = errors.New("invalid input")
)
