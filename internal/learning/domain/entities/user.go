// Package entities holds the core domain types of the learning platform.
package entities

import (
	"errors"
	"time"
)

// User domain errors.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateName = errors.New("user name already taken")
)

// User is a registered account. RegistrationDate is set by the database at
// creation and never changes afterwards.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	RegistrationDate time.Time
}
