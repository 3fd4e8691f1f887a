package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"langmaster/internal/learning/app"
	"langmaster/internal/learning/domain/entities"
)

func newLessonUseCase(users *mockUserRepository, courses *mockCourseRepository, lessons *mockLessonRepository) *app.LessonUseCase {
	return app.NewLessonUseCase(lessons, app.NewPolicy(users, courses), app.NewValidator())
}

func TestLessonUseCase_CreateLesson(t *testing.T) {
	ctx := testContext(t)

	input := app.LessonInput{Title: "Greetings", Content: "Hola means hello"}

	t.Run("course owner creates a lesson", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		courses.On("IsOwner", mock.Anything, "author-1", "course-1").Return(true, nil)
		lessons.On("Create", mock.Anything, mock.MatchedBy(func(l *entities.Lesson) bool {
			return l.CourseID == "course-1" && l.Title == input.Title
		})).Return(&entities.Lesson{ID: "lesson-1", CourseID: "course-1", Title: input.Title, Content: input.Content}, nil)

		useCase := newLessonUseCase(users, courses, lessons)
		created, err := useCase.CreateLesson(ctx, "author-1", "course-1", input)

		require.NoError(t, err)
		assert.Equal(t, "lesson-1", created.ID)
	})

	t.Run("non-owner gets ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		courses.On("IsOwner", mock.Anything, "other-user", "course-1").Return(false, nil)

		useCase := newLessonUseCase(users, courses, lessons)
		created, err := useCase.CreateLesson(ctx, "other-user", "course-1", input)

		assert.Nil(t, created)
		require.ErrorIs(t, err, app.ErrNotFound)

		lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty title never reaches the repository", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		courses.On("IsOwner", mock.Anything, "author-1", "course-1").Return(true, nil)

		useCase := newLessonUseCase(users, courses, lessons)
		created, err := useCase.CreateLesson(ctx, "author-1", "course-1", app.LessonInput{Content: "body"})

		assert.Nil(t, created)
		require.ErrorIs(t, err, app.ErrValidation)

		lessons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLessonUseCase_GetLesson(t *testing.T) {
	ctx := testContext(t)

	storedLesson := &entities.Lesson{ID: "lesson-1", CourseID: "course-1", Title: "Greetings"}

	t.Run("authenticated user reads the lesson", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		lessons.On("FindByID", mock.Anything, "lesson-1").Return(storedLesson, nil)

		useCase := newLessonUseCase(users, courses, lessons)
		lesson, err := useCase.GetLesson(ctx, "user-1", "lesson-1")

		require.NoError(t, err)
		assert.Equal(t, "Greetings", lesson.Title)
	})

	t.Run("anonymous viewer gets ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		useCase := newLessonUseCase(users, courses, lessons)
		lesson, err := useCase.GetLesson(ctx, "", "lesson-1")

		assert.Nil(t, lesson)
		require.ErrorIs(t, err, app.ErrNotFound)

		lessons.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown lesson maps to ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		lessons.On("FindByID", mock.Anything, "missing-id").Return(nil, entities.ErrLessonNotFound)

		useCase := newLessonUseCase(users, courses, lessons)
		lesson, err := useCase.GetLesson(ctx, "user-1", "missing-id")

		assert.Nil(t, lesson)
		require.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestLessonUseCase_ListCourseLessons(t *testing.T) {
	ctx := testContext(t)

	t.Run("returns the course outline", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		lessons.On("FindByCourse", mock.Anything, "course-1").Return([]*entities.Lesson{
			{ID: "lesson-1", CourseID: "course-1", Title: "First"},
			{ID: "lesson-2", CourseID: "course-1", Title: "Second"},
		}, nil)

		useCase := newLessonUseCase(users, courses, lessons)
		outline, err := useCase.ListCourseLessons(ctx, "course-1")

		require.NoError(t, err)
		require.Len(t, outline, 2)
		assert.Equal(t, "lesson-1", outline[0].ID)
	})
}

func TestLessonUseCase_UpdateLesson(t *testing.T) {
	ctx := testContext(t)

	storedLesson := &entities.Lesson{ID: "lesson-1", CourseID: "course-1", Title: "Old", Content: "Old body"}
	input := app.LessonInput{Title: "New", Content: "New body"}

	t.Run("course owner updates the lesson", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		lessons.On("FindByID", mock.Anything, "lesson-1").Return(storedLesson, nil)
		courses.On("IsOwner", mock.Anything, "author-1", "course-1").Return(true, nil)
		lessons.On("Update", mock.Anything, mock.MatchedBy(func(l *entities.Lesson) bool {
			return l.ID == "lesson-1" && l.Title == "New" && l.Content == "New body"
		})).Return(&entities.Lesson{ID: "lesson-1", CourseID: "course-1", Title: "New", Content: "New body"}, nil)

		useCase := newLessonUseCase(users, courses, lessons)
		updated, err := useCase.UpdateLesson(ctx, "author-1", "lesson-1", input)

		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
	})

	t.Run("ownership is checked against the lesson's course", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		lessons.On("FindByID", mock.Anything, "lesson-1").Return(storedLesson, nil)
		courses.On("IsOwner", mock.Anything, "other-user", "course-1").Return(false, nil)

		useCase := newLessonUseCase(users, courses, lessons)
		updated, err := useCase.UpdateLesson(ctx, "other-user", "lesson-1", input)

		assert.Nil(t, updated)
		require.ErrorIs(t, err, app.ErrNotFound)

		lessons.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestLessonUseCase_DeleteLesson(t *testing.T) {
	ctx := testContext(t)

	storedLesson := &entities.Lesson{ID: "lesson-1", CourseID: "course-1", Title: "Greetings"}

	t.Run("course owner deletes the lesson", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		lessons.On("FindByID", mock.Anything, "lesson-1").Return(storedLesson, nil)
		courses.On("IsOwner", mock.Anything, "author-1", "course-1").Return(true, nil)
		lessons.On("Delete", mock.Anything, "lesson-1").Return(nil)

		useCase := newLessonUseCase(users, courses, lessons)
		require.NoError(t, useCase.DeleteLesson(ctx, "author-1", "lesson-1"))
	})

	t.Run("non-owner gets ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		lessons := new(mockLessonRepository)

		lessons.On("FindByID", mock.Anything, "lesson-1").Return(storedLesson, nil)
		courses.On("IsOwner", mock.Anything, "other-user", "course-1").Return(false, nil)

		useCase := newLessonUseCase(users, courses, lessons)
		err := useCase.DeleteLesson(ctx, "other-user", "lesson-1")

		require.ErrorIs(t, err, app.ErrNotFound)
		lessons.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
