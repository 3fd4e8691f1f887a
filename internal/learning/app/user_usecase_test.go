package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"langmaster/internal/learning/app"
	"langmaster/internal/learning/domain/entities"
)

func TestUserUseCase_GetProfile(t *testing.T) {
	ctx := testContext(t)

	storedUser := &entities.User{ID: "user-1", Name: "learner", Email: "learner@example.com"}

	t.Run("returns the profile with the admin flag", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByName", mock.Anything, "learner").Return(storedUser, nil)
		users.On("IsAdmin", mock.Anything, "user-1").Return(true, nil)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		profile, err := useCase.GetProfile(ctx, "viewer-1", "learner")

		require.NoError(t, err)
		assert.Equal(t, "user-1", profile.User.ID)
		assert.True(t, profile.IsAdmin)
	})

	t.Run("anonymous viewer gets ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		profile, err := useCase.GetProfile(ctx, "", "learner")

		assert.Nil(t, profile)
		require.ErrorIs(t, err, app.ErrNotFound)

		users.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})

	t.Run("unknown name maps to ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByName", mock.Anything, "ghost").Return(nil, entities.ErrUserNotFound)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		profile, err := useCase.GetProfile(ctx, "viewer-1", "ghost")

		assert.Nil(t, profile)
		require.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestUserUseCase_UpdateProfile(t *testing.T) {
	ctx := testContext(t)

	t.Run("updates the actor's own name and email", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.ID == "user-1" && u.Name == "renamed" && u.Email == "renamed@example.com"
		})).Return(&entities.User{ID: "user-1", Name: "renamed", Email: "renamed@example.com"}, nil)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		updated, err := useCase.UpdateProfile(ctx, "user-1", app.ProfileInput{
			Name:  "renamed",
			Email: "renamed@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)

		users.AssertExpectations(t)
	})

	t.Run("taken name surfaces ErrDuplicateName", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("Update", mock.Anything, mock.Anything).Return(nil, entities.ErrDuplicateName)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		updated, err := useCase.UpdateProfile(ctx, "user-1", app.ProfileInput{
			Name:  "taken",
			Email: "me@example.com",
		})

		assert.Nil(t, updated)
		require.ErrorIs(t, err, entities.ErrDuplicateName)
	})

	t.Run("invalid email never reaches the repository", func(t *testing.T) {
		users := new(mockUserRepository)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		updated, err := useCase.UpdateProfile(ctx, "user-1", app.ProfileInput{
			Name:  "learner",
			Email: "not-an-email",
		})

		assert.Nil(t, updated)
		require.ErrorIs(t, err, app.ErrValidation)

		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("anonymous actor gets ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		updated, err := useCase.UpdateProfile(ctx, "", app.ProfileInput{
			Name:  "learner",
			Email: "learner@example.com",
		})

		assert.Nil(t, updated)
		require.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestUserUseCase_DeleteAccount(t *testing.T) {
	ctx := testContext(t)

	t.Run("deletes the actor's own account", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("Delete", mock.Anything, "user-1").Return(nil)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		require.NoError(t, useCase.DeleteAccount(ctx, "user-1"))

		users.AssertExpectations(t)
	})

	t.Run("missing account maps to ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("Delete", mock.Anything, "gone-id").Return(entities.ErrUserNotFound)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		err := useCase.DeleteAccount(ctx, "gone-id")

		require.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("anonymous actor gets ErrNotFound", func(t *testing.T) {
		users := new(mockUserRepository)

		useCase := app.NewUserUseCase(users, app.NewValidator())
		err := useCase.DeleteAccount(ctx, "")

		require.ErrorIs(t, err, app.ErrNotFound)
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
