package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"langmaster/internal/learning/app"
)

func TestPolicy_CanCreateCourse(t *testing.T) {
	ctx := testContext(t)

	t.Run("admin may create courses", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		users.On("IsAdmin", mock.Anything, "admin-1").Return(true, nil)

		policy := app.NewPolicy(users, courses)
		allowed, err := policy.CanCreateCourse(ctx, "admin-1")

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("regular user may not", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		users.On("IsAdmin", mock.Anything, "user-1").Return(false, nil)

		policy := app.NewPolicy(users, courses)
		allowed, err := policy.CanCreateCourse(ctx, "user-1")

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("anonymous caller is denied without a query", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)

		policy := app.NewPolicy(users, courses)
		allowed, err := policy.CanCreateCourse(ctx, "")

		require.NoError(t, err)
		assert.False(t, allowed)

		users.AssertNotCalled(t, "IsAdmin", mock.Anything, mock.Anything)
	})

	t.Run("repository failure surfaces as an error, not a denial", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		users.On("IsAdmin", mock.Anything, "user-1").Return(false, errors.New("connection refused"))

		policy := app.NewPolicy(users, courses)
		allowed, err := policy.CanCreateCourse(ctx, "user-1")

		require.Error(t, err)
		assert.False(t, allowed)
	})
}

func TestPolicy_CanEditCourse(t *testing.T) {
	ctx := testContext(t)

	t.Run("owner may edit", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		courses.On("IsOwner", mock.Anything, "author-1", "course-1").Return(true, nil)

		policy := app.NewPolicy(users, courses)
		allowed, err := policy.CanEditCourse(ctx, "author-1", "course-1")

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("admin without ownership may not edit", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)
		courses.On("IsOwner", mock.Anything, "admin-1", "course-1").Return(false, nil)

		policy := app.NewPolicy(users, courses)
		allowed, err := policy.CanEditCourse(ctx, "admin-1", "course-1")

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("anonymous caller is denied without a query", func(t *testing.T) {
		users := new(mockUserRepository)
		courses := new(mockCourseRepository)

		policy := app.NewPolicy(users, courses)
		allowed, err := policy.CanEditCourse(ctx, "", "course-1")

		require.NoError(t, err)
		assert.False(t, allowed)

		courses.AssertNotCalled(t, "IsOwner", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPolicy_CanViewLesson(t *testing.T) {
	users := new(mockUserRepository)
	courses := new(mockCourseRepository)
	policy := app.NewPolicy(users, courses)

	assert.True(t, policy.CanViewLesson("user-1"))
	assert.False(t, policy.CanViewLesson(""))
}
