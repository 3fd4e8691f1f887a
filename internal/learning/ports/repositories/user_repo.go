// Package repositories defines persistence ports for the learning platform.
package repositories

import (
	"context"

	"langmaster/internal/learning/domain/entities"
)

// UserRepository persists user accounts and the admin membership table.
type UserRepository interface {
	// Create inserts a new user and returns the stored row. Name uniqueness
	// is enforced by the database; a conflict yields entities.ErrDuplicateName.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByName(ctx context.Context, name string) (*entities.User, error)

	// IsAdmin reports whether an admin-flag row exists for the user.
	IsAdmin(ctx context.Context, userID string) (bool, error)

	// SetAdmin grants the admin flag. Granting twice is a no-op.
	SetAdmin(ctx context.Context, userID string) error

	// Update overwrites name and email only; id, password hash, and
	// registration date are never touched by this path.
	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	// Delete removes the user row and its admin-flag row in one transaction.
	Delete(ctx context.Context, userID string) error
}
