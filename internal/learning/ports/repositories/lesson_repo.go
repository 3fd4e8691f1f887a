package repositories

import (
	"context"

	"langmaster/internal/learning/domain/entities"
)

// LessonRepository persists lessons scoped to their parent course.
type LessonRepository interface {
	Create(ctx context.Context, lesson *entities.Lesson) (*entities.Lesson, error)

	FindByID(ctx context.Context, id string) (*entities.Lesson, error)

	// FindByCourse returns the lessons of a course, oldest first. No lessons
	// is an empty slice, not an error.
	FindByCourse(ctx context.Context, courseID string) ([]*entities.Lesson, error)

	// Update overwrites title and content only.
	Update(ctx context.Context, lesson *entities.Lesson) (*entities.Lesson, error)

	Delete(ctx context.Context, id string) error
}
