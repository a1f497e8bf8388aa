package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/store"
)

// MockTodoStore implements store.TodoStore for testing.
type MockTodoStore struct {
	// Function fields for customizable behavior
	CreateFn                func(ctx context.Context, todo *domain.Todo) error
	GetByOwnerAndIDFn       func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Todo, error)
	ListByOwnerFn           func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Todo, error)
	UpdateFn                func(ctx context.Context, todo *domain.Todo) error
	DeleteFn                func(ctx context.Context, ownerID, id uuid.UUID) error
	CountByPriorityFn       func(ctx context.Context, ownerID uuid.UUID) ([]domain.PriorityStat, error)
	CountByProgressBucketFn func(ctx context.Context, ownerID uuid.UUID) (*domain.ProgressStats, error)

	// Todos backs the default implementation, keyed by todo ID.
	Todos map[uuid.UUID]*domain.Todo
}

// Compile-time interface check
var _ store.TodoStore = (*MockTodoStore)(nil)

// NewMockTodoStore creates a mock store with an empty todo map.
func NewMockTodoStore() *MockTodoStore {
	return &MockTodoStore{Todos: make(map[uuid.UUID]*domain.Todo)}
}

// Create implements the TodoStore interface
func (m *MockTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, todo)
	}

	copied := *todo
	m.Todos[todo.ID] = &copied
	return nil
}

// GetByOwnerAndID implements the TodoStore interface
func (m *MockTodoStore) GetByOwnerAndID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Todo, error) {
	if m.GetByOwnerAndIDFn != nil {
		return m.GetByOwnerAndIDFn(ctx, ownerID, id)
	}

	todo, exists := m.Todos[id]
	if !exists || todo.UserID != ownerID {
		return nil, store.ErrTodoNotFound
	}
	copied := *todo
	return &copied, nil
}

// ListByOwner implements the TodoStore interface
func (m *MockTodoStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Todo, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	var todos []*domain.Todo
	for _, todo := range m.Todos {
		if todo.UserID == ownerID {
			copied := *todo
			todos = append(todos, &copied)
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

// Update implements the TodoStore interface
func (m *MockTodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, todo)
	}

	existing, exists := m.Todos[todo.ID]
	if !exists || existing.UserID != todo.UserID {
		return store.ErrTodoNotFound
	}
	copied := *todo
	m.Todos[todo.ID] = &copied
	return nil
}

// Delete implements the TodoStore interface
func (m *MockTodoStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}

	existing, exists := m.Todos[id]
	if !exists || existing.UserID != ownerID {
		return store.ErrTodoNotFound
	}
	delete(m.Todos, id)
	return nil
}

// CountByPriority implements the TodoStore interface
func (m *MockTodoStore) CountByPriority(ctx context.Context, ownerID uuid.UUID) ([]domain.PriorityStat, error) {
	if m.CountByPriorityFn != nil {
		return m.CountByPriorityFn(ctx, ownerID)
	}

	counts := make(map[domain.Priority]int)
	for _, todo := range m.Todos {
		if todo.UserID == ownerID {
			counts[todo.Priority]++
		}
	}

	var stats []domain.PriorityStat
	for priority, count := range counts {
		stats = append(stats, domain.PriorityStat{Priority: priority, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Priority < stats[j].Priority
	})
	return stats, nil
}

// CountByProgressBucket implements the TodoStore interface
func (m *MockTodoStore) CountByProgressBucket(ctx context.Context, ownerID uuid.UUID) (*domain.ProgressStats, error) {
	if m.CountByProgressBucketFn != nil {
		return m.CountByProgressBucketFn(ctx, ownerID)
	}

	stats := &domain.ProgressStats{}
	for _, todo := range m.Todos {
		if todo.UserID != ownerID {
			continue
		}
		switch {
		case todo.Progress <= 20:
			stats.Range0To20++
		case todo.Progress <= 40:
			stats.Range21To40++
		case todo.Progress <= 60:
			stats.Range41To60++
		case todo.Progress <= 80:
			stats.Range61To80++
		default:
			stats.Range81To100++
		}
	}
	return stats, nil
}
