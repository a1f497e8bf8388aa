package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmsato/todoapi/internal/domain"
)

func TestNewTodo(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	tests := []struct {
		name     string
		title    string
		priority domain.Priority
		progress int
		wantErr  error
	}{
		{
			name:     "valid todo",
			title:    "Write report",
			priority: domain.PriorityHigh,
			progress: 50,
		},
		{
			name:     "empty priority defaults to medium",
			title:    "Write report",
			priority: "",
			progress: 0,
		},
		{
			name:     "title is trimmed",
			title:    "  Write report  ",
			priority: domain.PriorityLow,
		},
		{
			name:    "blank title",
			title:   "   ",
			wantErr: domain.ErrBlankTitle,
		},
		{
			name:    "title too long",
			title:   strings.Repeat("x", 256),
			wantErr: domain.ErrTitleTooLong,
		},
		{
			name:     "unknown priority",
			title:    "Write report",
			priority: "URGENT",
			wantErr:  domain.ErrInvalidPriority,
		},
		{
			name:     "progress below range",
			title:    "Write report",
			progress: -1,
			wantErr:  domain.ErrInvalidProgress,
		},
		{
			name:     "progress above range",
			title:    "Write report",
			progress: 101,
			wantErr:  domain.ErrInvalidProgress,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			todo, err := domain.NewTodo(ownerID, tt.title, tt.priority, tt.progress)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, ownerID, todo.UserID)
			assert.Equal(t, strings.TrimSpace(tt.title), todo.Title)
			if tt.priority == "" {
				assert.Equal(t, domain.PriorityMedium, todo.Priority)
			} else {
				assert.Equal(t, tt.priority, todo.Priority)
			}
		})
	}
}

func TestNewTodoProgressBoundaries(t *testing.T) {
	t.Parallel()

	// Every value in [0,100] is accepted.
	for p := 0; p <= 100; p++ {
		_, err := domain.NewTodo(uuid.New(), "boundary", domain.PriorityMedium, p)
		require.NoError(t, err, "progress=%d", p)
	}
}

func TestTodoApplyPatch(t *testing.T) {
	t.Parallel()

	todo, err := domain.NewTodo(uuid.New(), "Original", domain.PriorityMedium, 10)
	require.NoError(t, err)

	title := "  Updated  "
	progress := 80
	require.NoError(t, todo.Apply(domain.TodoPatch{Title: &title, Progress: &progress}))
	assert.Equal(t, "Updated", todo.Title)
	assert.Equal(t, 80, todo.Progress)
	assert.Equal(t, domain.PriorityMedium, todo.Priority, "unset field untouched")

	high := domain.PriorityHigh
	require.NoError(t, todo.Apply(domain.TodoPatch{Priority: &high}))
	assert.Equal(t, domain.PriorityHigh, todo.Priority)

	bad := 101
	err = todo.Apply(domain.TodoPatch{Progress: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidProgress)
}

func TestProgressStatsTotal(t *testing.T) {
	t.Parallel()

	stats := domain.ProgressStats{
		Range0To20:   2,
		Range21To40:  1,
		Range41To60:  3,
		Range61To80:  0,
		Range81To100: 4,
	}
	assert.Equal(t, 10, stats.Total())
}
