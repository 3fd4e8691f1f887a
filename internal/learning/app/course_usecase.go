package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"langmaster/internal/learning/domain/entities"
	"langmaster/internal/learning/ports/repositories"
	svc "langmaster/internal/learning/ports/services"
	"langmaster/pkg/logger"
)

// CourseView is a course as shown on its page, together with the viewer's
// relationship to it.
type CourseView struct {
	Course   *entities.Course
	Image    io.ReadCloser
	Owner    bool
	Enrolled bool
}

// CourseUseCase handles the course catalog, enrollment, and the author's
// course management.
type CourseUseCase struct {
	courses   repositories.CourseRepository
	images    svc.ImageStore
	policy    *Policy
	validator *Validator
}

// NewCourseUseCase creates the course use case.
func NewCourseUseCase(
	courses repositories.CourseRepository,
	images svc.ImageStore,
	policy *Policy,
	validator *Validator,
) *CourseUseCase {
	return &CourseUseCase{
		courses:   courses,
		images:    images,
		policy:    policy,
		validator: validator,
	}
}

// CreateCourse stores the image stream first and the row next; a failed
// insert removes the stored file so no orphan bytes remain.
func (c *CourseUseCase) CreateCourse(
	ctx context.Context,
	actorID string,
	input CourseInput,
	imageName string,
	image io.Reader,
) (*entities.Course, error) {
	log := logger.Log(ctx).With(zap.String("method", "CreateCourse"), zap.String("userID", actorID))

	allowed, err := c.policy.CanCreateCourse(ctx, actorID)
	if err != nil {
		log.Error(ctx, "error checking course creation permission", zap.Error(err))
		return nil, fmt.Errorf("checking permission: %w", err)
	}
	if !allowed {
		log.Debug(ctx, "course creation denied")
		return nil, ErrNotFound
	}

	if err = c.validator.ValidateStruct(input); err != nil {
		log.Debug(ctx, "invalid course input", zap.Error(err))
		return nil, fmt.Errorf("validating input: %w", err)
	}

	imageRef := ""
	if image != nil {
		imageRef, err = c.images.Save(ctx, imageName, image)
		if err != nil {
			log.Error(ctx, "failed to store course image", zap.Error(err))
			return nil, fmt.Errorf("storing image: %w", err)
		}
	}

	created, err := c.courses.Create(ctx, &entities.Course{
		Title:       input.Title,
		Description: input.Description,
		AuthorID:    actorID,
		Image:       imageRef,
	})
	if err != nil {
		if imageRef != "" {
			if rmErr := c.images.Remove(ctx, imageRef); rmErr != nil {
				log.Warn(ctx, "failed to remove orphan image", zap.Error(rmErr), zap.String("image", imageRef))
			}
		}
		log.Error(ctx, "failed to create course", zap.Error(err))
		return nil, fmt.Errorf("creating course: %w", err)
	}

	log.Info(ctx, "course created", zap.String("courseID", created.ID))
	return created, nil
}

// GetCourse returns a course page view. The catalog is public, so no
// authentication is required; an anonymous viewer is neither owner nor
// enrolled. A course whose image file is gone yields ErrImageNotFound.
func (c *CourseUseCase) GetCourse(ctx context.Context, actorID, courseID string) (*CourseView, error) {
	log := logger.Log(ctx).With(zap.String("method", "GetCourse"), zap.String("courseID", courseID))

	course, err := c.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			log.Debug(ctx, "course not found")
			return nil, ErrNotFound
		}
		log.Error(ctx, "error loading course", zap.Error(err))
		return nil, fmt.Errorf("loading course: %w", err)
	}

	view := &CourseView{Course: course}

	if course.Image != "" {
		view.Image, err = c.images.Open(ctx, course.Image)
		if err != nil {
			log.Error(ctx, "error opening course image", zap.Error(err), zap.String("image", course.Image))
			return nil, fmt.Errorf("opening image: %w", err)
		}
	}

	if actorID != "" {
		view.Owner, err = c.courses.IsOwner(ctx, actorID, courseID)
		if err != nil {
			c.closeImage(ctx, view)
			log.Error(ctx, "error checking ownership", zap.Error(err))
			return nil, fmt.Errorf("checking ownership: %w", err)
		}
		view.Enrolled, err = c.courses.IsEnrolled(ctx, actorID, courseID)
		if err != nil {
			c.closeImage(ctx, view)
			log.Error(ctx, "error checking enrollment", zap.Error(err))
			return nil, fmt.Errorf("checking enrollment: %w", err)
		}
	}

	return view, nil
}

// ListAll returns the whole catalog, oldest first.
func (c *CourseUseCase) ListAll(ctx context.Context) ([]*entities.Course, error) {
	courses, err := c.courses.FindAll(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error listing catalog", zap.Error(err))
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}

// ListCreated returns the actor's own courses.
func (c *CourseUseCase) ListCreated(ctx context.Context, actorID string) ([]*entities.Course, error) {
	if actorID == "" {
		return nil, ErrNotFound
	}
	courses, err := c.courses.FindByAuthor(ctx, actorID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error listing created courses", zap.Error(err), zap.String("userID", actorID))
		return nil, fmt.Errorf("listing created courses: %w", err)
	}
	return courses, nil
}

// ListEnrolled returns the courses the actor is taking.
func (c *CourseUseCase) ListEnrolled(ctx context.Context, actorID string) ([]*entities.Course, error) {
	if actorID == "" {
		return nil, ErrNotFound
	}
	courses, err := c.courses.FindEnrolled(ctx, actorID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error listing enrolled courses", zap.Error(err), zap.String("userID", actorID))
		return nil, fmt.Errorf("listing enrolled courses: %w", err)
	}
	return courses, nil
}

// Enroll records the actor as taking the course. Enrolling twice is a no-op.
func (c *CourseUseCase) Enroll(ctx context.Context, actorID, courseID string) error {
	log := logger.Log(ctx).With(zap.String("method", "Enroll"),
		zap.String("userID", actorID), zap.String("courseID", courseID))

	if actorID == "" {
		return ErrNotFound
	}

	if err := c.courses.Enroll(ctx, actorID, courseID); err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) || errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "enrollment target not found")
			return ErrNotFound
		}
		log.Error(ctx, "failed to enroll", zap.Error(err))
		return fmt.Errorf("enrolling: %w", err)
	}

	log.Info(ctx, "user enrolled")
	return nil
}

// GetCourseForEdit loads a course for its edit form. Only the owner gets it;
// everyone else sees ErrNotFound.
func (c *CourseUseCase) GetCourseForEdit(ctx context.Context, actorID, courseID string) (*entities.Course, error) {
	log := logger.Log(ctx).With(zap.String("method", "GetCourseForEdit"), zap.String("courseID", courseID))

	allowed, err := c.policy.CanEditCourse(ctx, actorID, courseID)
	if err != nil {
		log.Error(ctx, "error checking edit permission", zap.Error(err))
		return nil, fmt.Errorf("checking permission: %w", err)
	}
	if !allowed {
		log.Debug(ctx, "course edit denied", zap.String("userID", actorID))
		return nil, ErrNotFound
	}

	course, err := c.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			return nil, ErrNotFound
		}
		log.Error(ctx, "error loading course", zap.Error(err))
		return nil, fmt.Errorf("loading course: %w", err)
	}

	return course, nil
}

// UpdateCourse overwrites the course's title and description. Owner only.
func (c *CourseUseCase) UpdateCourse(ctx context.Context, actorID, courseID string, input CourseInput) (*entities.Course, error) {
	log := logger.Log(ctx).With(zap.String("method", "UpdateCourse"), zap.String("courseID", courseID))

	allowed, err := c.policy.CanEditCourse(ctx, actorID, courseID)
	if err != nil {
		log.Error(ctx, "error checking edit permission", zap.Error(err))
		return nil, fmt.Errorf("checking permission: %w", err)
	}
	if !allowed {
		log.Debug(ctx, "course update denied", zap.String("userID", actorID))
		return nil, ErrNotFound
	}

	if err = c.validator.ValidateStruct(input); err != nil {
		log.Debug(ctx, "invalid course input", zap.Error(err))
		return nil, fmt.Errorf("validating input: %w", err)
	}

	updated, err := c.courses.Update(ctx, &entities.Course{
		ID:          courseID,
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			return nil, ErrNotFound
		}
		log.Error(ctx, "failed to update course", zap.Error(err))
		return nil, fmt.Errorf("updating course: %w", err)
	}

	log.Info(ctx, "course updated")
	return updated, nil
}

// DeleteCourse removes the course with its lessons and enrollments, then the
// stored image file. A failed file removal is logged, not surfaced: the row
// is already gone.
func (c *CourseUseCase) DeleteCourse(ctx context.Context, actorID, courseID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DeleteCourse"), zap.String("courseID", courseID))

	allowed, err := c.policy.CanEditCourse(ctx, actorID, courseID)
	if err != nil {
		log.Error(ctx, "error checking edit permission", zap.Error(err))
		return fmt.Errorf("checking permission: %w", err)
	}
	if !allowed {
		log.Debug(ctx, "course deletion denied", zap.String("userID", actorID))
		return ErrNotFound
	}

	imageRef, err := c.courses.Delete(ctx, courseID)
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			return ErrNotFound
		}
		log.Error(ctx, "failed to delete course", zap.Error(err))
		return fmt.Errorf("deleting course: %w", err)
	}

	if imageRef != "" {
		if rmErr := c.images.Remove(ctx, imageRef); rmErr != nil {
			log.Warn(ctx, "failed to remove course image", zap.Error(rmErr), zap.String("image", imageRef))
		}
	}

	log.Info(ctx, "course deleted")
	return nil
}

func (c *CourseUseCase) closeImage(ctx context.Context, view *CourseView) {
	if view.Image == nil {
		return
	}
	if err := view.Image.Close(); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to close image stream", zap.Error(err))
	}
}
