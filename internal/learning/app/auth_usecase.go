package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"langmaster/internal/learning/domain/entities"
	"langmaster/internal/learning/domain/services"
	"langmaster/internal/learning/ports/repositories"
	svc "langmaster/internal/learning/ports/services"
	"langmaster/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"
	methodIdentify = "Identify"

	msgStartRegistration = "starting user registration"
	msgInvalidInput      = "invalid registration input"
	msgNameTaken         = "user name already taken"
	msgUserRegistered    = "user registered successfully"
	msgLoginAttempt      = "login attempt"
	msgLoginUnknownName  = "login attempt with unknown name"
	msgWrongPassword     = "wrong password provided"
	msgUserLoggedIn      = "user logged in successfully"

	msgErrHashPassword   = "failed to hash password"
	msgErrCreateUser     = "failed to create user"
	msgErrFindingUser    = "error finding user by name"
	msgErrVerifyPassword = "error verifying password"
	msgErrIssueSession   = "failed to issue session token"

	errCtxValidatingInput   = "validating input"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxIssuingSession    = "issuing session"
	errCtxResolvingSession  = "resolving session"
)

// AuthUseCase handles registration, login, and per-request identity.
type AuthUseCase struct {
	users       repositories.UserRepository
	passwordSvc svc.PasswordService
	sessionSvc  svc.SessionService
	validator   *Validator
}

// NewAuthUseCase creates the authentication use case.
func NewAuthUseCase(
	users repositories.UserRepository,
	passwordSvc svc.PasswordService,
	sessionSvc svc.SessionService,
	validator *Validator,
) *AuthUseCase {
	return &AuthUseCase{
		users:       users,
		passwordSvc: passwordSvc,
		sessionSvc:  sessionSvc,
		validator:   validator,
	}
}

// Register creates a new account and returns an authenticated session.
// A taken name yields entities.ErrDuplicateName; uniqueness is enforced by
// the database, so two concurrent registrations cannot both succeed.
func (a *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("name", input.Name))
	log.Debug(ctx, msgStartRegistration)

	if err := a.validator.ValidateStruct(input); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.users.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateName) {
			log.Debug(ctx, msgNameTaken)
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, entities.ErrDuplicateName)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	return a.issueSession(ctx, createdUser)
}

// Login authenticates by name and password. An unknown name and a wrong
// password are both reported as ErrInvalidCredentials.
func (a *AuthUseCase) Login(ctx context.Context, name, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("name", name))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.users.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginUnknownName)
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgWrongPassword, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	return a.issueSession(ctx, user)
}

// Identify resolves a session token into the acting user's ID. Every
// authenticated operation starts here; identity never lives in shared state.
func (a *AuthUseCase) Identify(ctx context.Context, token string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIdentify))

	userID, err := a.sessionSvc.Identify(ctx, token)
	if err != nil {
		log.Debug(ctx, "session token rejected", zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxResolvingSession, err)
	}

	return userID, nil
}

func (a *AuthUseCase) issueSession(ctx context.Context, user *entities.User) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("userID", user.ID))

	token, expiresAt, err := a.sessionSvc.Issue(ctx, user.ID, user.Name)
	if err != nil {
		log.Error(ctx, msgErrIssueSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingSession, err)
	}

	return &services.Session{
		UserID:    user.ID,
		Name:      user.Name,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
