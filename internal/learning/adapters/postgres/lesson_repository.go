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

// LessonRepository implements repositories.LessonRepository on Postgres.
type LessonRepository struct {
	pool         PgxPoolInterface
	queryTimeout time.Duration
	retry        *pgdb.Retry
}

// NewLessonRepository creates a lesson repository with the given query timeout.
func NewLessonRepository(pool PgxPoolInterface, queryTimeout time.Duration) repositories.LessonRepository {
	return &LessonRepository{
		pool:         pool,
		queryTimeout: queryTimeout,
		retry:        pgdb.NewRetry("lesson_repository", pgdb.DefaultRetryConfig()),
	}
}

const lessonColumns = "id, course_id, title, content, created_at"

// Create inserts a lesson under its parent course.
func (r *LessonRepository) Create(ctx context.Context, lesson *entities.Lesson) (*entities.Lesson, error) {
	log := logger.Log(ctx).With(zap.String("repository", "lesson"), zap.String("method", "Create"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
        INSERT INTO lessons (course_id, title, content)
        VALUES ($1, $2, $3)
        RETURNING ` + lessonColumns

	var created entities.Lesson
	err := r.pool.QueryRow(ctx, query, lesson.CourseID, lesson.Title, lesson.Content).Scan(
		&created.ID,
		&created.CourseID,
		&created.Title,
		&created.Content,
		&created.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug(ctx, "course not found for lesson", zap.String("courseID", lesson.CourseID))
			return nil, entities.ErrCourseNotFound
		}
		log.Error(ctx, "error creating lesson", zap.Error(err))
		return nil, fmt.Errorf("error creating lesson: %w", err)
	}

	return &created, nil
}

// FindByID loads a lesson by id.
func (r *LessonRepository) FindByID(ctx context.Context, id string) (*entities.Lesson, error) {
	log := logger.Log(ctx).With(zap.String("repository", "lesson"), zap.String("method", "FindByID"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := "SELECT " + lessonColumns + " FROM lessons WHERE id = $1"

	var lesson entities.Lesson
	err := r.retry.Execute(ctx, func() error {
		return r.pool.QueryRow(ctx, query, id).Scan(
			&lesson.ID,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.Content,
			&lesson.CreatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "lesson not found", zap.String("id", id))
			return nil, entities.ErrLessonNotFound
		}
		log.Error(ctx, "error querying lesson", zap.Error(err))
		return nil, fmt.Errorf("error querying lesson by id: %w", err)
	}

	return &lesson, nil
}

// FindByCourse returns the lessons of a course, oldest first.
func (r *LessonRepository) FindByCourse(ctx context.Context, courseID string) ([]*entities.Lesson, error) {
	log := logger.Log(ctx).With(zap.String("repository", "lesson"), zap.String("method", "FindByCourse"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := "SELECT " + lessonColumns + " FROM lessons WHERE course_id = $1 ORDER BY created_at"

	var lessons []*entities.Lesson
	err := r.retry.Execute(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, courseID)
		if err != nil {
			return err
		}
		defer rows.Close()

		lessons = make([]*entities.Lesson, 0)
		for rows.Next() {
			var lesson entities.Lesson
			if err := rows.Scan(
				&lesson.ID,
				&lesson.CourseID,
				&lesson.Title,
				&lesson.Content,
				&lesson.CreatedAt,
			); err != nil {
				return err
			}
			lessons = append(lessons, &lesson)
		}
		return rows.Err()
	})
	if err != nil {
		log.Error(ctx, "error listing lessons", zap.Error(err))
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}

	return lessons, nil
}

// Update overwrites title and content only.
func (r *LessonRepository) Update(ctx context.Context, lesson *entities.Lesson) (*entities.Lesson, error) {
	log := logger.Log(ctx).With(zap.String("repository", "lesson"), zap.String("method", "Update"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
        UPDATE lessons
        SET title = $2, content = $3
        WHERE id = $1
        RETURNING ` + lessonColumns

	var updated entities.Lesson
	err := r.pool.QueryRow(ctx, query, lesson.ID, lesson.Title, lesson.Content).Scan(
		&updated.ID,
		&updated.CourseID,
		&updated.Title,
		&updated.Content,
		&updated.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "lesson not found for update", zap.String("id", lesson.ID))
			return nil, entities.ErrLessonNotFound
		}
		log.Error(ctx, "error updating lesson", zap.Error(err))
		return nil, fmt.Errorf("error updating lesson: %w", err)
	}

	return &updated, nil
}

// Delete removes a single lesson.
func (r *LessonRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "lesson"), zap.String("method", "Delete"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	result, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting lesson", zap.Error(err))
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "lesson not found for deletion", zap.String("id", id))
		return entities.ErrLessonNotFound
	}

	return nil
}
