package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/rmsato/todoapi/internal/cache"
	"github.com/rmsato/todoapi/internal/config"
	"github.com/rmsato/todoapi/internal/notify"
	"github.com/rmsato/todoapi/internal/platform/logger"
	"github.com/rmsato/todoapi/internal/platform/postgres"
	"github.com/rmsato/todoapi/internal/platform/redis"
	"github.com/rmsato/todoapi/internal/service"
	"github.com/rmsato/todoapi/internal/service/auth"
	"github.com/rmsato/todoapi/internal/store"
	"github.com/rmsato/todoapi/internal/task"
)

// application holds the wired dependency graph for the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	redisClient *redisv9.Client

	userStore store.UserStore
	todoStore store.TodoStore

	jwtService auth.JWTService
	blacklist  auth.TokenBlacklist

	registrationService *service.RegistrationService
	userService         *service.UserService
	todoService         *service.TodoService

	mailer    notify.Mailer
	verifier  *notify.SignatureVerifier
	publisher notify.Publisher

	dispatcher *task.Dispatcher
}

// initializeApp loads configuration and wires every component, in
// dependency order: config, logging, Postgres (with migrations), Redis,
// then the services and the background dispatcher.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	app := &application{config: cfg, logger: log}

	if err := app.setupDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.setupRedis(ctx); err != nil {
		app.closeDatabase()
		return nil, err
	}
	if err := app.setupServices(); err != nil {
		app.closeRedis()
		app.closeDatabase()
		return nil, err
	}

	app.dispatcher = task.NewDispatcher(task.DispatcherConfig{
		WorkerCount: cfg.Notify.WorkerCount,
		QueueSize:   cfg.Notify.QueueSize,
	}, log)
	app.dispatcher.Start()

	app.registrationService = service.NewRegistrationService(
		app.userStore, auth.NewBcryptHasher(0), app.publisher, app.dispatcher, log)

	log.Info("application initialized",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))
	return app, nil
}

// setupDatabase opens the pgx-stdlib connection pool, verifies it with
// a ping, and applies pending migrations.
func (app *application) setupDatabase(ctx context.Context) error {
	db, err := sql.Open("pgx", app.config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db, app.logger); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.db = db
	app.userStore = postgres.NewUserStore(db, app.logger)
	app.todoStore = postgres.NewTodoStore(db, app.logger)
	return nil
}

// setupRedis connects to Redis, which backs the stats cache and the
// refresh-token blacklist.
func (app *application) setupRedis(ctx context.Context) error {
	client, err := redis.Connect(ctx, app.config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.redisClient = client
	app.blacklist = redis.NewBlacklist(client)
	return nil
}

// setupServices constructs the auth, user, todo, and notification
// components from the connected backends.
func (app *application) setupServices() error {
	jwtService, err := auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService

	var statsCache cache.Cache = redis.NewCache(app.redisClient)
	statsTTL := time.Duration(app.config.Redis.StatsTTLSeconds) * time.Second

	hasher := auth.NewBcryptHasher(0)
	app.userService = service.NewUserService(app.userStore, hasher, app.logger)
	app.todoService = service.NewTodoService(app.todoStore, statsCache, statsTTL, app.logger)

	app.publisher = notify.NewQStashPublisher(app.config.Notify, app.logger)
	app.mailer = notify.NewResendMailer(app.config.Notify, app.logger)
	app.verifier = notify.NewSignatureVerifier(
		app.config.Notify.SigningKeyCurrent, app.config.Notify.SigningKeyNext)
	return nil
}

// cleanup releases application resources in reverse construction
// order. The dispatcher drains first so in-flight notifications finish
// before their backends close.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}
	app.closeRedis()
	app.closeDatabase()
}

func (app *application) closeRedis() {
	if app.redisClient == nil {
		return
	}
	if err := app.redisClient.Close(); err != nil {
		app.logger.Error("failed to close redis client", slog.String("error", err.Error()))
	}
}

func (app *application) closeDatabase() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", slog.String("error", err.Error()))
	}
}
