package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"langmaster/pkg/logger"
)

// RetryConfig controls how queries are retried.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int
	// Backoff is the delay before the retry attempt.
	Backoff time.Duration
	// ShouldRetry decides whether the given error is worth a retry.
	ShouldRetry func(error) bool
}

// DefaultRetryConfig retries a failed query once after a short backoff,
// and only for transient errors.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 2,
		Backoff:     100 * time.Millisecond,
		ShouldRetry: IsTransient,
	}
}

// ErrRetryCanceled is returned when the context is canceled while waiting
// before a retry attempt.
var ErrRetryCanceled = errors.New("context canceled during retry")

// Log messages for the retry mechanism.
const (
	LogRetryAttempt = "retrying query after transient error"
	LogRetrySuccess = "query succeeded after retry"
)

// connectionExceptionClass is the SQLSTATE class for connection failures.
const connectionExceptionClass = "08"

// IsTransient reports whether an error is a transient storage condition.
// Context cancellation, missing rows, and server-reported constraint or
// syntax errors are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, connectionExceptionClass)
	}

	return pgconn.SafeToRetry(err)
}

// Retry executes operations with a bounded number of attempts.
type Retry struct {
	name   string
	config RetryConfig
}

// NewRetry creates a retry helper named for log attribution.
func NewRetry(name string, config RetryConfig) *Retry {
	if config.ShouldRetry == nil {
		config.ShouldRetry = IsTransient
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Retry{name: name, config: config}
}

// Execute runs the operation, retrying per the configuration.
func (r *Retry) Execute(ctx context.Context, operation func() error) error {
	log := logger.Log(ctx).With(zap.String("retry", r.name))

	var err error
	for attempt := 1; ; attempt++ {
		err = operation()
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRetrySuccess, zap.Int("attempts", attempt))
			}
			return nil
		}
		if attempt >= r.config.MaxAttempts || !r.config.ShouldRetry(err) {
			return err
		}

		log.Warn(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", r.config.Backoff),
			zap.Error(err))

		select {
		case <-time.After(r.config.Backoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrRetryCanceled, ctx.Err())
		}
	}
}
