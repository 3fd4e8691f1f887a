package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"langmaster/internal/learning/domain/entities"
	"langmaster/internal/learning/ports/repositories"
	"langmaster/pkg/logger"
)

// LessonUseCase handles lesson reads and the author's lesson management.
// Edit rights follow the owning course.
type LessonUseCase struct {
	lessons   repositories.LessonRepository
	policy    *Policy
	validator *Validator
}

// NewLessonUseCase creates the lesson use case.
func NewLessonUseCase(lessons repositories.LessonRepository, policy *Policy, validator *Validator) *LessonUseCase {
	return &LessonUseCase{lessons: lessons, policy: policy, validator: validator}
}

// CreateLesson adds a lesson to a course the actor owns.
func (l *LessonUseCase) CreateLesson(ctx context.Context, actorID, courseID string, input LessonInput) (*entities.Lesson, error) {
	log := logger.Log(ctx).With(zap.String("method", "CreateLesson"), zap.String("courseID", courseID))

	allowed, err := l.policy.CanEditCourse(ctx, actorID, courseID)
	if err != nil {
		log.Error(ctx, "error checking edit permission", zap.Error(err))
		return nil, fmt.Errorf("checking permission: %w", err)
	}
	if !allowed {
		log.Debug(ctx, "lesson creation denied", zap.String("userID", actorID))
		return nil, ErrNotFound
	}

	if err = l.validator.ValidateStruct(input); err != nil {
		log.Debug(ctx, "invalid lesson input", zap.Error(err))
		return nil, fmt.Errorf("validating input: %w", err)
	}

	created, err := l.lessons.Create(ctx, &entities.Lesson{
		CourseID: courseID,
		Title:    input.Title,
		Content:  input.Content,
	})
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			return nil, ErrNotFound
		}
		log.Error(ctx, "failed to create lesson", zap.Error(err))
		return nil, fmt.Errorf("creating lesson: %w", err)
	}

	log.Info(ctx, "lesson created", zap.String("lessonID", created.ID))
	return created, nil
}

// GetLesson returns a lesson's content. Any authenticated user may read it.
func (l *LessonUseCase) GetLesson(ctx context.Context, actorID, lessonID string) (*entities.Lesson, error) {
	log := logger.Log(ctx).With(zap.String("method", "GetLesson"), zap.String("lessonID", lessonID))

	if !l.policy.CanViewLesson(actorID) {
		log.Debug(ctx, "lesson view denied")
		return nil, ErrNotFound
	}

	lesson, err := l.lessons.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, entities.ErrLessonNotFound) {
			log.Debug(ctx, "lesson not found")
			return nil, ErrNotFound
		}
		log.Error(ctx, "error loading lesson", zap.Error(err))
		return nil, fmt.Errorf("loading lesson: %w", err)
	}

	return lesson, nil
}

// ListCourseLessons returns a course's lessons, oldest first. The list is
// part of the public course page.
func (l *LessonUseCase) ListCourseLessons(ctx context.Context, courseID string) ([]*entities.Lesson, error) {
	lessons, err := l.lessons.FindByCourse(ctx, courseID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error listing lessons", zap.Error(err), zap.String("courseID", courseID))
		return nil, fmt.Errorf("listing lessons: %w", err)
	}
	return lessons, nil
}

// UpdateLesson overwrites a lesson's title and content. The lesson is loaded
// first to resolve its course, then the course's edit rule applies.
func (l *LessonUseCase) UpdateLesson(ctx context.Context, actorID, lessonID string, input LessonInput) (*entities.Lesson, error) {
	log := logger.Log(ctx).With(zap.String("method", "UpdateLesson"), zap.String("lessonID", lessonID))

	lesson, err := l.loadForEdit(ctx, actorID, lessonID)
	if err != nil {
		return nil, err
	}

	if err = l.validator.ValidateStruct(input); err != nil {
		log.Debug(ctx, "invalid lesson input", zap.Error(err))
		return nil, fmt.Errorf("validating input: %w", err)
	}

	lesson.Title = input.Title
	lesson.Content = input.Content

	updated, err := l.lessons.Update(ctx, lesson)
	if err != nil {
		if errors.Is(err, entities.ErrLessonNotFound) {
			return nil, ErrNotFound
		}
		log.Error(ctx, "failed to update lesson", zap.Error(err))
		return nil, fmt.Errorf("updating lesson: %w", err)
	}

	log.Info(ctx, "lesson updated")
	return updated, nil
}

// DeleteLesson removes a lesson from a course the actor owns.
func (l *LessonUseCase) DeleteLesson(ctx context.Context, actorID, lessonID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DeleteLesson"), zap.String("lessonID", lessonID))

	if _, err := l.loadForEdit(ctx, actorID, lessonID); err != nil {
		return err
	}

	if err := l.lessons.Delete(ctx, lessonID); err != nil {
		if errors.Is(err, entities.ErrLessonNotFound) {
			return ErrNotFound
		}
		log.Error(ctx, "failed to delete lesson", zap.Error(err))
		return fmt.Errorf("deleting lesson: %w", err)
	}

	log.Info(ctx, "lesson deleted")
	return nil
}

// loadForEdit fetches the lesson and verifies the actor may edit its course.
func (l *LessonUseCase) loadForEdit(ctx context.Context, actorID, lessonID string) (*entities.Lesson, error) {
	log := logger.Log(ctx).With(zap.String("lessonID", lessonID))

	lesson, err := l.lessons.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, entities.ErrLessonNotFound) {
			log.Debug(ctx, "lesson not found")
			return nil, ErrNotFound
		}
		log.Error(ctx, "error loading lesson", zap.Error(err))
		return nil, fmt.Errorf("loading lesson: %w", err)
	}

	allowed, err := l.policy.CanEditCourse(ctx, actorID, lesson.CourseID)
	if err != nil {
		log.Error(ctx, "error checking edit permission", zap.Error(err))
		return nil, fmt.Errorf("checking permission: %w", err)
	}
	if !allowed {
		log.Debug(ctx, "lesson edit denied", zap.String("userID", actorID))
		return nil, ErrNotFound
	}

	return lesson, nil
}
