// Package main is the entry point of the learning platform.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"langmaster/internal/learning/adapters/postgres"
	"langmaster/internal/learning/adapters/services"
	"langmaster/internal/learning/adapters/storage"
	"langmaster/internal/learning/app"
	"langmaster/internal/learning/config"
	"langmaster/internal/learning/db"
	"langmaster/pkg/logger"
	"langmaster/pkg/shutdown"

	"go.uber.org/zap"
)

// Environment variables read before the configuration is loaded.
const (
	EnvLoggerMode  = "LM_LOGGER_MODE"
	EnvLoggerLevel = "LM_LOGGER_LEVEL"
)

// Error messages.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitStorage          = "failed to initialize content store"
	ErrProbeCatalog         = "failed to read course catalog"
)

// Ignored logger sync errors.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Log messages.
const (
	LogServiceStarted      = "learning platform started"
	LogServiceShutdownDone = "learning platform shutdown complete"
	LogClosingDB           = "closing database connections"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitStorage         = "initializing content store"
	LogInitUseCases        = "initializing use cases"
	LogCatalogReady        = "course catalog ready"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)

		database, err := db.New(ctx, &cfg.Postgres, "migrations/learning")
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage, zap.String("content_dir", cfg.Storage.ContentDir))
		imageStore, err := storage.NewFileStore(cfg.Storage.ContentDir)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool(), cfg.Postgres.GetQueryTimeout())
		userRepo := repoFactory.UserRepository()
		courseRepo := repoFactory.CourseRepository()
		lessonRepo := repoFactory.LessonRepository()

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(
			cfg.Session.SecretKey,
			cfg.Session.GetTokenTTL(),
			cfg.Session.BCryptCost,
		)
		passwordService := serviceFactory.PasswordService()
		sessionService := serviceFactory.SessionService()

		log.Info(ctx, LogInitUseCases)
		platform := app.NewPlatform(
			userRepo,
			courseRepo,
			lessonRepo,
			passwordService,
			sessionService,
			imageStore,
		)

		// Readiness probe: prove the pool and schema are usable before
		// declaring the platform up.
		catalog, err := platform.Courses.ListAll(ctx)
		if err != nil {
			log.Error(ctx, ErrProbeCatalog, zap.Error(err))
			exitCode = 1
			return
		}
		log.Info(ctx, LogCatalogReady, zap.Int("courses", len(catalog)))

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
