// Package service contains the application services that orchestrate
// domain entities, stores, and background work behind the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/notify"
	"github.com/rmsato/todoapi/internal/platform/logger"
	"github.com/rmsato/todoapi/internal/service/auth"
	"github.com/rmsato/todoapi/internal/store"
	"github.com/rmsato/todoapi/internal/task"
)

// RegistrationService creates accounts and schedules the welcome
// notification. Registration commits first and notification publishing
// follows as fire-and-forget background work, so a queue outage can
// never fail or slow down account creation.
type RegistrationService struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	publisher notify.Publisher
	submitter task.Submitter
	logger    *slog.Logger
}

// NewRegistrationService creates a RegistrationService.
// submitter may be nil, in which case welcome notifications are skipped.
func NewRegistrationService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	publisher notify.Publisher,
	submitter task.Submitter,
	logger *slog.Logger,
) *RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RegistrationService{
		userStore: userStore,
		hasher:    hasher,
		publisher: publisher,
		submitter: submitter,
		logger:    logger.With(slog.String("service", "registration")),
	}
}

// Register creates a new account with a hashed password and enqueues
// the welcome notification. The returned user never carries the
// plaintext password.
//
// A taken email surfaces as store.ErrEmailExists whether it is caught
// by the pre-check or by the database constraint under a concurrent
// registration race.
func (s *RegistrationService) Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password, firstName, lastName)
	if err != nil {
		return nil, err
	}

	// Pre-check for a friendlier failure before paying for bcrypt; the
	// unique index remains the authority under concurrency.
	if _, err := s.userStore.GetByEmail(ctx, user.Email); err == nil {
		return nil, store.ErrEmailExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))

	s.enqueueWelcome(ctx, user)

	return user, nil
}

// enqueueWelcome hands the welcome notification to the dispatcher.
// Failures are logged and swallowed: the account already exists, and a
// missing welcome email must not surface to the registering user.
func (s *RegistrationService) enqueueWelcome(ctx context.Context, user *domain.User) {
	if s.submitter == nil || s.publisher == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	welcomeTask := notify.NewWelcomeEmailTask(s.publisher, notify.WelcomeMessage{
		Email:     user.Email,
		FirstName: user.FirstName,
	})
	if err := s.submitter.Submit(welcomeTask); err != nil {
		log.Error("failed to enqueue welcome notification",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
	}
}
