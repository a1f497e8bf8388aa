package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/platform/logger"
	"github.com/rmsato/todoapi/internal/store"
)

// TodoStore implements the store.TodoStore interface using a
// PostgreSQL database as the storage backend.
//
// All queries that address a single todo filter by (id, user_id), so a
// todo belonging to another owner is indistinguishable from a missing
// one.
type TodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTodoStore creates a new PostgreSQL implementation of the
// TodoStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is
// nil, a default logger will be used.
func NewTodoStore(db store.DBTX, logger *slog.Logger) *TodoStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Ensure TodoStore implements store.TodoStore interface
var _ store.TodoStore = (*TodoStore)(nil)

const todoColumns = `id, user_id, title, priority, progress, created_at, updated_at`

// Create implements store.TodoStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist (foreign
// key violation).
func (s *TodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during create",
			slog.String("error", err.Error()),
			slog.String("todo_id", todo.ID.String()))
		return err
	}

	query := `
		INSERT INTO todos (` + todoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Priority,
		todo.Progress,
		todo.CreatedAt,
		todo.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during todo creation",
				slog.String("todo_id", todo.ID.String()),
				slog.String("user_id", todo.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, todo.UserID)
		}

		log.Error("failed to create todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", todo.ID.String()),
			slog.String("user_id", todo.UserID.String()))
		return MapError(err)
	}

	log.Info("todo created successfully",
		slog.String("todo_id", todo.ID.String()),
		slog.String("user_id", todo.UserID.String()))
	return nil
}

// GetByOwnerAndID implements store.TodoStore.GetByOwnerAndID
func (s *TodoStore) GetByOwnerAndID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1 AND user_id = $2
	`

	var todo domain.Todo
	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Priority,
		&todo.Progress,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found for owner",
				slog.String("todo_id", id.String()),
				slog.String("user_id", ownerID.String()))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to get todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		return nil, MapError(err)
	}

	return &todo, nil
}

// ListByOwner implements store.TodoStore.ListByOwner
// Results are ordered by creation time descending.
func (s *TodoStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list todos",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.UserID,
			&todo.Title,
			&todo.Priority,
			&todo.Progress,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		todos = append(todos, &todo)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return todos, nil
}

// Update implements store.TodoStore.Update
// The WHERE clause is scoped by (id, user_id); updating someone else's
// todo affects zero rows and returns store.ErrTodoNotFound.
func (s *TodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during update",
			slog.String("error", err.Error()),
			slog.String("todo_id", todo.ID.String()))
		return err
	}

	query := `
		UPDATE todos
		SET title = $3,
		    priority = $4,
		    progress = $5,
		    updated_at = $6
		WHERE id = $1 AND user_id = $2
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Priority,
		todo.Progress,
		todo.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", todo.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTodoNotFound)
}

// Delete implements store.TodoStore.Delete
func (s *TodoStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`,
		id,
		ownerID,
	)
	if err != nil {
		log.Error("failed to delete todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTodoNotFound); err != nil {
		return err
	}

	log.Info("todo deleted",
		slog.String("todo_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return nil
}

// CountByPriority implements store.TodoStore.CountByPriority
// Groups with zero todos produce no row, matching the API contract
// that absent priorities are simply missing from the result.
func (s *TodoStore) CountByPriority(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]domain.PriorityStat, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT priority, COUNT(*)
		FROM todos
		WHERE user_id = $1
		GROUP BY priority
		ORDER BY priority
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to count todos by priority",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	stats := make([]domain.PriorityStat, 0, 3)
	for rows.Next() {
		var stat domain.PriorityStat
		if err := rows.Scan(&stat.Priority, &stat.Count); err != nil {
			return nil, MapError(err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return stats, nil
}

// CountByProgressBucket implements store.TodoStore.CountByProgressBucket
// Buckets use inclusive upper bounds, so the five counts always
// partition the owner's total.
func (s *TodoStore) CountByProgressBucket(
	ctx context.Context,
	ownerID uuid.UUID,
) (*domain.ProgressStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE progress BETWEEN 0 AND 20),
			COUNT(*) FILTER (WHERE progress BETWEEN 21 AND 40),
			COUNT(*) FILTER (WHERE progress BETWEEN 41 AND 60),
			COUNT(*) FILTER (WHERE progress BETWEEN 61 AND 80),
			COUNT(*) FILTER (WHERE progress BETWEEN 81 AND 100)
		FROM todos
		WHERE user_id = $1
	`

	var stats domain.ProgressStats
	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(
		&stats.Range0To20,
		&stats.Range21To40,
		&stats.Range41To60,
		&stats.Range61To80,
		&stats.Range81To100,
	)
	if err != nil {
		log.Error("failed to count todos by progress bucket",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err)
	}

	return &stats, nil
}
