package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"langmaster/internal/learning/domain/entities"
	"langmaster/internal/learning/ports/repositories"
	pgdb "langmaster/pkg/db/postgres"
	"langmaster/pkg/logger"
)

// CourseRepository implements repositories.CourseRepository on Postgres.
type CourseRepository struct {
	pool         PgxPoolInterface
	queryTimeout time.Duration
	retry        *pgdb.Retry
}

// NewCourseRepository creates a course repository with the given query timeout.
func NewCourseRepository(pool PgxPoolInterface, queryTimeout time.Duration) repositories.CourseRepository {
	return &CourseRepository{
		pool:         pool,
		queryTimeout: queryTimeout,
		retry:        pgdb.NewRetry("course_repository", pgdb.DefaultRetryConfig()),
	}
}

// image is nullable in the schema; an absent image scans as "".
const courseColumns = "id, title, description, author_id, COALESCE(image, ''), created_at"

// Create records a new course. The image file is written by the image store
// before this call; only the stored reference lands in the row.
func (r *CourseRepository) Create(ctx context.Context, course *entities.Course) (*entities.Course, error) {
	log := logger.Log(ctx).With(zap.String("repository", "course"), zap.String("method", "Create"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
        INSERT INTO courses (title, description, author_id, image)
        VALUES ($1, $2, $3, NULLIF($4, ''))
        RETURNING ` + courseColumns

	var created entities.Course
	err := r.pool.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.AuthorID,
		course.Image,
	).Scan(
		&created.ID,
		&created.Title,
		&created.Description,
		&created.AuthorID,
		&created.Image,
		&created.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug(ctx, "author not found", zap.String("authorID", course.AuthorID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error creating course", zap.Error(err))
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return &created, nil
}

// FindByID loads a course row by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*entities.Course, error) {
	log := logger.Log(ctx).With(zap.String("repository", "course"), zap.String("method", "FindByID"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := "SELECT " + courseColumns + " FROM courses WHERE id = $1"

	var course entities.Course
	err := r.retry.Execute(ctx, func() error {
		return r.pool.QueryRow(ctx, query, id).Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.AuthorID,
			&course.Image,
			&course.CreatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "course not found", zap.String("id", id))
			return nil, entities.ErrCourseNotFound
		}
		log.Error(ctx, "error querying course", zap.Error(err))
		return nil, fmt.Errorf("error querying course by id: %w", err)
	}

	return &course, nil
}

// FindByAuthor returns the courses created by a user, oldest first.
func (r *CourseRepository) FindByAuthor(ctx context.Context, authorID string) ([]*entities.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses WHERE author_id = $1 ORDER BY created_at"
	return r.findMany(ctx, "FindByAuthor", query, authorID)
}

// FindEnrolled resolves a user's enrollment rows to full courses.
func (r *CourseRepository) FindEnrolled(ctx context.Context, userID string) ([]*entities.Course, error) {
	query := `
        SELECT c.id, c.title, c.description, c.author_id, COALESCE(c.image, ''), c.created_at
        FROM courses c
        JOIN enrollments e ON e.course_id = c.id
        WHERE e.user_id = $1
        ORDER BY c.created_at`
	return r.findMany(ctx, "FindEnrolled", query, userID)
}

// FindAll returns every course, oldest first.
func (r *CourseRepository) FindAll(ctx context.Context) ([]*entities.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses ORDER BY created_at"
	return r.findMany(ctx, "FindAll", query)
}

func (r *CourseRepository) findMany(ctx context.Context, method, query string, args ...interface{}) ([]*entities.Course, error) {
	log := logger.Log(ctx).With(zap.String("repository", "course"), zap.String("method", method))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	var courses []*entities.Course
	err := r.retry.Execute(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		courses = make([]*entities.Course, 0)
		for rows.Next() {
			var course entities.Course
			if err := rows.Scan(
				&course.ID,
				&course.Title,
				&course.Description,
				&course.AuthorID,
				&course.Image,
				&course.CreatedAt,
			); err != nil {
				return err
			}
			courses = append(courses, &course)
		}
		return rows.Err()
	})
	if err != nil {
		log.Error(ctx, "error listing courses", zap.Error(err))
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	return courses, nil
}

// IsOwner reports whether the user authored the course.
func (r *CourseRepository) IsOwner(ctx context.Context, userID, courseID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1 AND author_id = $2)`
	return r.exists(ctx, "IsOwner", query, courseID, userID)
}

// IsEnrolled reports whether the user is enrolled in the course.
func (r *CourseRepository) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1 AND user_id = $2)`
	return r.exists(ctx, "IsEnrolled", query, courseID, userID)
}

func (r *CourseRepository) exists(ctx context.Context, method, query string, args ...interface{}) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "course"), zap.String("method", method))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	var found bool
	err := r.retry.Execute(ctx, func() error {
		return r.pool.QueryRow(ctx, query, args...).Scan(&found)
	})
	if err != nil {
		log.Error(ctx, "error running existence check", zap.Error(err))
		return false, fmt.Errorf("error running existence check: %w", err)
	}

	return found, nil
}

// Update overwrites title and description only.
func (r *CourseRepository) Update(ctx context.Context, course *entities.Course) (*entities.Course, error) {
	log := logger.Log(ctx).With(zap.String("repository", "course"), zap.String("method", "Update"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
        UPDATE courses
        SET title = $2, description = $3
        WHERE id = $1
        RETURNING ` + courseColumns

	var updated entities.Course
	err := r.pool.QueryRow(ctx, query, course.ID, course.Title, course.Description).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Description,
		&updated.AuthorID,
		&updated.Image,
		&updated.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "course not found for update", zap.String("id", course.ID))
			return nil, entities.ErrCourseNotFound
		}
		log.Error(ctx, "error updating course", zap.Error(err))
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return &updated, nil
}

// Enroll records an enrollment; enrolling twice is a no-op.
func (r *CourseRepository) Enroll(ctx context.Context, userID, courseID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "course"), zap.String("method", "Enroll"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
        INSERT INTO enrollments (user_id, course_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, userID, courseID); err != nil {
		if isForeignKeyViolation(err) {
			log.Debug(ctx, "course or user missing for enrollment",
				zap.String("userID", userID), zap.String("courseID", courseID))
			return entities.ErrCourseNotFound
		}
		log.Error(ctx, "error creating enrollment", zap.Error(err))
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// Delete removes the course, its lessons, and its enrollments as one
// transaction, returning the stored image reference.
func (r *CourseRepository) Delete(ctx context.Context, courseID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("repository", "course"), zap.String("method", "Delete"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return "", fmt.Errorf("error starting course delete transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM lessons WHERE course_id = $1`, courseID); err != nil {
		_ = tx.Rollback(ctx)
		log.Error(ctx, "error deleting course lessons", zap.Error(err))
		return "", fmt.Errorf("error deleting course lessons: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1`, courseID); err != nil {
		_ = tx.Rollback(ctx)
		log.Error(ctx, "error deleting course enrollments", zap.Error(err))
		return "", fmt.Errorf("error deleting course enrollments: %w", err)
	}

	var imageRef string
	err = tx.QueryRow(ctx, `DELETE FROM courses WHERE id = $1 RETURNING COALESCE(image, '')`, courseID).Scan(&imageRef)
	if err != nil {
		_ = tx.Rollback(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "course not found for deletion", zap.String("id", courseID))
			return "", entities.ErrCourseNotFound
		}
		log.Error(ctx, "error deleting course", zap.Error(err))
		return "", fmt.Errorf("error deleting course: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing course delete", zap.Error(err))
		return "", fmt.Errorf("error committing course delete: %w", err)
	}

	return imageRef, nil
}
