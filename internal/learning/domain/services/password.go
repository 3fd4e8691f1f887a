// Package services holds domain-level service types and errors.
package services

import "errors"

// Password errors.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 4
