package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/service/auth"
	"github.com/rmsato/todoapi/internal/store"
)

// UserService implements credential checks and profile reads/updates
// for existing accounts. Account creation lives in RegistrationService.
type UserService struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(userStore store.UserStore, verifier auth.PasswordVerifier, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		userStore: userStore,
		verifier:  verifier,
		logger:    logger.With(slog.String("service", "user")),
	}
}

// Authenticate verifies the email/password pair and returns the
// account on success. Both an unknown email and a wrong password
// return domain.ErrUnauthorized, so the response does not reveal
// which half was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	// Deactivated accounts fail the same way as bad credentials.
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// Get retrieves an account by ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update and returns the
// updated account.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
