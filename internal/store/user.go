package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/rmsato/todoapi/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry
	// a hashed password. Returns ErrEmailExists if the email is already
	// taken (case-insensitively); the database uniqueness constraint is
	// the source of truth, so concurrent registrations with the same
	// email resolve to exactly one success.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email address, matched
	// case-insensitively. Returns ErrUserNotFound if no user exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's details. The caller must
	// provide a complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email another user holds.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID. The user's
	// todos are removed with them (cascade). Returns ErrUserNotFound
	// if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
