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

// UserRepository implements repositories.UserRepository on Postgres.
type UserRepository struct {
	pool         PgxPoolInterface
	queryTimeout time.Duration
	retry        *pgdb.Retry
}

// NewUserRepository creates a user repository with the given query timeout.
func NewUserRepository(pool PgxPoolInterface, queryTimeout time.Duration) repositories.UserRepository {
	return &UserRepository{
		pool:         pool,
		queryTimeout: queryTimeout,
		retry:        pgdb.NewRetry("user_repository", pgdb.DefaultRetryConfig()),
	}
}

const userColumns = "id, name, email, password_hash, registration_date"

// Create inserts a new user. The database generates the id and the
// registration date and enforces name uniqueness.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
        INSERT INTO users (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	var created entities.User
	err := r.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.PasswordHash,
		&created.RegistrationDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "user name already taken", zap.String("name", user.Name))
			return nil, entities.ErrDuplicateName
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &created, nil
}

// FindByID finds a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", "id", id)
}

// FindByName finds a user by exact, case-sensitive name.
func (r *UserRepository) FindByName(ctx context.Context, name string) (*entities.User, error) {
	return r.findOne(ctx, "FindByName", "name", name)
}

func (r *UserRepository) findOne(ctx context.Context, method, column, value string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := "SELECT " + userColumns + " FROM users WHERE " + column + " = $1"

	var user entities.User
	err := r.retry.Execute(ctx, func() error {
		return r.pool.QueryRow(ctx, query, value).Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.RegistrationDate,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String(column, value))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error querying user", zap.Error(err))
		return nil, fmt.Errorf("error querying user by %s: %w", column, err)
	}

	return &user, nil
}

// IsAdmin reports whether the user has an admin-flag row.
func (r *UserRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "IsAdmin"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `SELECT EXISTS (SELECT 1 FROM user_admins WHERE user_id = $1)`

	var isAdmin bool
	err := r.retry.Execute(ctx, func() error {
		return r.pool.QueryRow(ctx, query, userID).Scan(&isAdmin)
	})
	if err != nil {
		log.Error(ctx, "error checking admin flag", zap.Error(err))
		return false, fmt.Errorf("error checking admin flag: %w", err)
	}

	return isAdmin, nil
}

// SetAdmin grants the admin flag; granting twice is a no-op.
func (r *UserRepository) SetAdmin(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "SetAdmin"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `INSERT INTO user_admins (user_id) VALUES ($1) ON CONFLICT DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		if isForeignKeyViolation(err) {
			log.Debug(ctx, "user not found for admin grant", zap.String("userID", userID))
			return entities.ErrUserNotFound
		}
		log.Error(ctx, "error granting admin flag", zap.Error(err))
		return fmt.Errorf("error granting admin flag: %w", err)
	}

	return nil
}

// Update overwrites name and email only.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
        UPDATE users
        SET name = $2, email = $3
        WHERE id = $1
        RETURNING ` + userColumns

	var updated entities.User
	err := r.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Email,
		&updated.PasswordHash,
		&updated.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.String("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			log.Debug(ctx, "user name already taken", zap.String("name", user.Name))
			return nil, entities.ErrDuplicateName
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return &updated, nil
}

// Delete removes the admin-flag row and the user row as one transaction.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	ctx, cancel := boundContext(ctx, r.queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return fmt.Errorf("error starting user delete transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_admins WHERE user_id = $1`, userID); err != nil {
		_ = tx.Rollback(ctx)
		log.Error(ctx, "error deleting admin flag", zap.Error(err))
		return fmt.Errorf("error deleting admin flag: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		_ = tx.Rollback(ctx)
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		log.Debug(ctx, "user not found for deletion", zap.String("id", userID))
		return entities.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing user delete", zap.Error(err))
		return fmt.Errorf("error committing user delete: %w", err)
	}

	return nil
}
