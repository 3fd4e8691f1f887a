package app

import (
	"langmaster/internal/learning/ports/repositories"
	svc "langmaster/internal/learning/ports/services"
)

// Platform bundles the use cases behind a single entry point for callers.
type Platform struct {
	Auth    *AuthUseCase
	Users   *UserUseCase
	Courses *CourseUseCase
	Lessons *LessonUseCase
	Policy  *Policy
}

// NewPlatform wires the use cases from their ports.
func NewPlatform(
	users repositories.UserRepository,
	courses repositories.CourseRepository,
	lessons repositories.LessonRepository,
	passwordSvc svc.PasswordService,
	sessionSvc svc.SessionService,
	images svc.ImageStore,
) *Platform {
	validator := NewValidator()
	policy := NewPolicy(users, courses)

	return &Platform{
		Auth:    NewAuthUseCase(users, passwordSvc, sessionSvc, validator),
		Users:   NewUserUseCase(users, validator),
		Courses: NewCourseUseCase(courses, images, policy, validator),
		Lessons: NewLessonUseCase(lessons, policy, validator),
		Policy:  policy,
	}
}
