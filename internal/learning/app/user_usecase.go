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

// Profile is a user as shown on the profile page.
type Profile struct {
	User    *entities.User
	IsAdmin bool
}

// UserUseCase handles profile reads, updates, and account deletion.
type UserUseCase struct {
	users     repositories.UserRepository
	validator *Validator
}

// NewUserUseCase creates the user use case.
func NewUserUseCase(users repositories.UserRepository, validator *Validator) *UserUseCase {
	return &UserUseCase{users: users, validator: validator}
}

// GetProfile returns a user's profile. Viewing profiles requires
// authentication; anonymous callers get ErrNotFound.
func (u *UserUseCase) GetProfile(ctx context.Context, actorID, name string) (*Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", "GetProfile"), zap.String("name", name))

	if actorID == "" {
		return nil, ErrNotFound
	}

	user, err := u.users.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "profile not found")
			return nil, ErrNotFound
		}
		log.Error(ctx, "error loading profile", zap.Error(err))
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	isAdmin, err := u.users.IsAdmin(ctx, user.ID)
	if err != nil {
		log.Error(ctx, "error checking admin flag", zap.Error(err))
		return nil, fmt.Errorf("checking admin flag: %w", err)
	}

	return &Profile{User: user, IsAdmin: isAdmin}, nil
}

// UpdateProfile overwrites the actor's own name and email. Password and id
// are never touched by this path.
func (u *UserUseCase) UpdateProfile(ctx context.Context, actorID string, input ProfileInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UpdateProfile"), zap.String("userID", actorID))

	if actorID == "" {
		return nil, ErrNotFound
	}

	if err := u.validator.ValidateStruct(input); err != nil {
		log.Debug(ctx, "invalid profile input", zap.Error(err))
		return nil, fmt.Errorf("validating input: %w", err)
	}

	updated, err := u.users.Update(ctx, &entities.User{
		ID:    actorID,
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "user not found for update")
			return nil, ErrNotFound
		}
		if errors.Is(err, entities.ErrDuplicateName) {
			log.Debug(ctx, "new name already taken", zap.String("name", input.Name))
			return nil, fmt.Errorf("updating profile: %w", entities.ErrDuplicateName)
		}
		log.Error(ctx, "error updating profile", zap.Error(err))
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	log.Info(ctx, "profile updated")
	return updated, nil
}

// DeleteAccount removes the actor's own account, cascading to the
// admin-flag table.
func (u *UserUseCase) DeleteAccount(ctx context.Context, actorID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DeleteAccount"), zap.String("userID", actorID))

	if actorID == "" {
		return ErrNotFound
	}

	if err := u.users.Delete(ctx, actorID); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "user not found for deletion")
			return ErrNotFound
		}
		log.Error(ctx, "error deleting account", zap.Error(err))
		return fmt.Errorf("deleting account: %w", err)
	}

	log.Info(ctx, "account deleted")
	return nil
}
