package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/rmsato/todoapi/internal/domain"
)

// TodoStore defines the interface for todo data persistence.
//
// Every read, update, and delete is scoped by owner: operations on a
// todo that exists but belongs to someone else return ErrTodoNotFound,
// never a permission error, so existence is not leaked across accounts.
type TodoStore interface {
	// Create saves a new todo to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetByOwnerAndID retrieves the todo with the given ID if it belongs
	// to ownerID. Returns ErrTodoNotFound otherwise.
	GetByOwnerAndID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Todo, error)

	// ListByOwner retrieves all todos belonging to ownerID, ordered by
	// creation time descending.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Todo, error)

	// Update persists the todo's current field values, scoped by
	// (ID, UserID). Returns ErrTodoNotFound if no such todo belongs to
	// the owner.
	Update(ctx context.Context, todo *domain.Todo) error

	// Delete removes the todo with the given ID if it belongs to
	// ownerID. Returns ErrTodoNotFound otherwise.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// CountByPriority returns per-priority todo counts for the owner,
	// ordered by priority label. Priorities with zero todos are absent.
	CountByPriority(ctx context.Context, ownerID uuid.UUID) ([]domain.PriorityStat, error)

	// CountByProgressBucket partitions the owner's todos into the five
	// progress buckets and returns the per-bucket counts.
	CountByProgressBucket(ctx context.Context, ownerID uuid.UUID) (*domain.ProgressStats, error)
}
