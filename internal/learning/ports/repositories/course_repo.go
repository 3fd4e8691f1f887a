package repositories

import (
	"context"

	"langmaster/internal/learning/domain/entities"
)

// CourseRepository persists courses and enrollment records.
type CourseRepository interface {
	Create(ctx context.Context, course *entities.Course) (*entities.Course, error)

	FindByID(ctx context.Context, id string) (*entities.Course, error)

	// FindByAuthor returns the courses created by a user, oldest first.
	// No courses is an empty slice, not an error.
	FindByAuthor(ctx context.Context, authorID string) ([]*entities.Course, error)

	// FindEnrolled resolves a user's enrollment rows to full courses.
	FindEnrolled(ctx context.Context, userID string) ([]*entities.Course, error)

	FindAll(ctx context.Context) ([]*entities.Course, error)

	IsOwner(ctx context.Context, userID, courseID string) (bool, error)

	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)

	// Update overwrites title and description only; author and image are
	// never touched by this path.
	Update(ctx context.Context, course *entities.Course) (*entities.Course, error)

	// Enroll records that the user is taking the course. Enrolling twice
	// is a no-op.
	Enroll(ctx context.Context, userID, courseID string) error

	// Delete removes the course, its lessons, and its enrollment rows in one
	// transaction, and returns the stored image reference so the caller can
	// remove the file.
	Delete(ctx context.Context, courseID string) (string, error)
}
