// Package db initializes the learning platform database.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"langmaster/internal/learning/config"
	"langmaster/pkg/db/postgres"
	"langmaster/pkg/logger"
)

// Log messages.
const (
	LogDBInitializing    = "initializing learning platform database"
	LogDBInitialized     = "learning platform database initialized successfully"
	LogMigrationStarting = "starting database migrations for learning platform"
)

// Error messages.
const (
	ErrDBMigrations = "failed to apply learning platform database migrations"
	ErrDBConnection = "failed to connect to learning platform database"
	ErrGetPath      = "failed to get path"
)

// DB is the learning platform database connection.
type DB struct {
	database *postgres.Database
}

// New applies migrations and opens the connection pool.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	var migrationsPath string
	if !filepath.IsAbs(migrationsDir) {
		absPath, err := filepath.Abs(migrationsDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
		}
		migrationsPath = "file://" + absPath
	} else {
		migrationsPath = "file://" + migrationsDir
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{
		database: database,
	}, nil
}

// Close closes the connection pool.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool returns the connection pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping checks the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
