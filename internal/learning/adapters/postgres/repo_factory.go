package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"langmaster/internal/learning/ports/repositories"
)

// RepositoryFactory builds all PostgreSQL repositories over one pool.
type RepositoryFactory struct {
	userRepo   repositories.UserRepository
	courseRepo repositories.CourseRepository
	lessonRepo repositories.LessonRepository
}

// NewRepositoryFactory creates the repositories with a shared query timeout.
func NewRepositoryFactory(pool *pgxpool.Pool, queryTimeout time.Duration) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:   NewUserRepository(pool, queryTimeout),
		courseRepo: NewCourseRepository(pool, queryTimeout),
		lessonRepo: NewLessonRepository(pool, queryTimeout),
	}
}

// UserRepository returns the user repository.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// CourseRepository returns the course repository.
func (f *RepositoryFactory) CourseRepository() repositories.CourseRepository {
	return f.courseRepo
}

// LessonRepository returns the lesson repository.
func (f *RepositoryFactory) LessonRepository() repositories.LessonRepository {
	return f.lessonRepo
}
