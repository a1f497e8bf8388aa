package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rmsato/todoapi/internal/cache"
	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/platform/logger"
	"github.com/rmsato/todoapi/internal/store"
)

// Cache key prefixes for derived todo statistics, suffixed with the
// owner's user ID.
const (
	priorityStatsKeyPrefix = "todos:stats:priority:"
	progressStatsKeyPrefix = "todos:stats:progress:"
)

// TodoService implements todo CRUD and the derived statistics reads.
//
// Stats use an invalidate-on-write cache: every mutation deletes both
// of the owner's stat keys before returning, so cached values can only
// be stale for requests already in flight. The TTL is a backstop
// against missed invalidations, not the freshness mechanism.
type TodoService struct {
	todoStore store.TodoStore
	cache     cache.Cache
	statsTTL  time.Duration
	logger    *slog.Logger
}

// NewTodoService creates a TodoService. cache may be nil, in which case
// stats are computed on every read.
func NewTodoService(todoStore store.TodoStore, statsCache cache.Cache, statsTTL time.Duration, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TodoService{
		todoStore: todoStore,
		cache:     statsCache,
		statsTTL:  statsTTL,
		logger:    logger.With(slog.String("service", "todo")),
	}
}

// Create validates and persists a new todo for the owner.
func (s *TodoService) Create(ctx context.Context, ownerID uuid.UUID, title string, priority domain.Priority, progress int) (*domain.Todo, error) {
	todo, err := domain.NewTodo(ownerID, title, priority, progress)
	if err != nil {
		return nil, err
	}

	if err := s.todoStore.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return todo, nil
}

// Get retrieves a single todo owned by ownerID.
// Returns store.ErrTodoNotFound if it does not exist or belongs to
// another account.
func (s *TodoService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Todo, error) {
	return s.todoStore.GetByOwnerAndID(ctx, ownerID, id)
}

// List retrieves all of the owner's todos, newest first.
func (s *TodoService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Todo, error) {
	return s.todoStore.ListByOwner(ctx, ownerID)
}

// Replace overwrites all mutable fields of the todo with the given
// values, as a PUT would. Returns the updated todo.
func (s *TodoService) Replace(ctx context.Context, ownerID, id uuid.UUID, title string, priority domain.Priority, progress int) (*domain.Todo, error) {
	todo, err := s.todoStore.GetByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if priority == "" {
		priority = domain.PriorityMedium
	}
	patch := domain.TodoPatch{Title: &title, Priority: &priority, Progress: &progress}
	if err := todo.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.todoStore.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return todo, nil
}

// Patch applies a partial update to the todo and returns the result.
func (s *TodoService) Patch(ctx context.Context, ownerID, id uuid.UUID, patch domain.TodoPatch) (*domain.Todo, error) {
	todo, err := s.todoStore.GetByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := todo.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.todoStore.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return todo, nil
}

// Delete removes the todo if it belongs to ownerID.
func (s *TodoService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.todoStore.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)

	return nil
}

// PriorityStats returns per-priority counts of the owner's todos,
// served from cache when a fresh entry exists.
func (s *TodoService) PriorityStats(ctx context.Context, ownerID uuid.UUID) ([]domain.PriorityStat, error) {
	key := priorityStatsKeyPrefix + ownerID.String()

	var cached []domain.PriorityStat
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return cached, nil
	}

	stats, err := s.todoStore.CountByPriority(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, stats)

	return stats, nil
}

// ProgressStats returns the owner's todos partitioned into progress
// buckets, served from cache when a fresh entry exists.
func (s *TodoService) ProgressStats(ctx context.Context, ownerID uuid.UUID) (*domain.ProgressStats, error) {
	key := progressStatsKeyPrefix + ownerID.String()

	var cached domain.ProgressStats
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return &cached, nil
	}

	stats, err := s.todoStore.CountByProgressBucket(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, stats)

	return stats, nil
}

// cacheGet loads and decodes a cached stats entry into dest. A cache
// error or undecodable entry counts as a miss: stats are always
// recomputable from the store.
func (s *TodoService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("stats cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if !found {
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn("discarding undecodable stats cache entry", slog.String("key", key))
		return false
	}

	return true
}

// cacheSet stores a computed stats value. Failures are logged, not
// returned: a cold cache degrades to recomputation on the next read.
func (s *TodoService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn("failed to encode stats for cache", slog.String("key", key), slog.String("error", err.Error()))
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.statsTTL); err != nil {
		log.Warn("stats cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// invalidateStats drops both of the owner's cached stat entries after a
// mutation. An invalidation failure is logged but does not fail the
// write; the TTL bounds how long the stale entry can survive.
func (s *TodoService) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}

	keys := []string{
		priorityStatsKeyPrefix + ownerID.String(),
		progressStatsKeyPrefix + ownerID.String(),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Warn("stats cache invalidation failed",
			slog.String("user_id", ownerID.String()),
			slog.String("error", fmt.Sprintf("%v", err)))
	}
}
