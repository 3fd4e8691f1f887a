package app

import (
	"context"
	"fmt"

	"langmaster/internal/learning/ports/repositories"
)

// Policy derives authorization decisions from repository queries. It holds
// no mutable state; the acting user travels as an explicit argument on
// every call.
type Policy struct {
	users   repositories.UserRepository
	courses repositories.CourseRepository
}

// NewPolicy creates the authorization policy.
func NewPolicy(users repositories.UserRepository, courses repositories.CourseRepository) *Policy {
	return &Policy{users: users, courses: courses}
}

// CanCreateCourse allows authenticated administrators.
func (p *Policy) CanCreateCourse(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	isAdmin, err := p.users.IsAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("checking admin flag: %w", err)
	}
	return isAdmin, nil
}

// CanEditCourse allows the course owner only. Lessons inherit this rule:
// whoever may edit the course may author its lessons.
func (p *Policy) CanEditCourse(ctx context.Context, userID, courseID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	isOwner, err := p.courses.IsOwner(ctx, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("checking course ownership: %w", err)
	}
	return isOwner, nil
}

// CanViewLesson allows any authenticated user.
func (p *Policy) CanViewLesson(userID string) bool {
	return userID != ""
}
