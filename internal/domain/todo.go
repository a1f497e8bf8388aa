package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency level of a todo.
type Priority string

// Valid priority values.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Common todo validation errors
var (
	ErrEmptyTodoID     = errors.New("todo ID cannot be empty")
	ErrEmptyTodoOwner  = errors.New("todo owner ID cannot be empty")
	ErrBlankTitle      = errors.New("title cannot be blank")
	ErrTitleTooLong    = errors.New("title must be at most 255 characters long")
	ErrInvalidPriority = errors.New("priority must be one of LOW, MEDIUM, HIGH")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

// Todo represents a user-owned task record with priority and progress.
// Todos belong to exactly one user and are listed newest first.
type Todo struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Priority  Priority  `json:"priority"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTodo creates a new Todo for the given owner. The title is trimmed;
// an empty priority defaults to MEDIUM. Returns an error if validation
// fails.
func NewTodo(userID uuid.UUID, title string, priority Priority, progress int) (*Todo, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	todo := &Todo{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Priority:  priority,
		Progress:  progress,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}

	return todo, nil
}

// Validate checks if the Todo has valid data.
// Returns an error if any field fails validation.
func (t *Todo) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTodoID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTodoOwner
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrBlankTitle
	}

	if len(t.Title) > 255 {
		return ErrTitleTooLong
	}

	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}

	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, t.Progress)
	}

	return nil
}

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TodoPatch enumerates the todo fields a partial update may change.
// Nil fields are left untouched. Using an explicit struct keeps patch
// field names compile-time checked.
type TodoPatch struct {
	Title    *string
	Priority *Priority
	Progress *int
}

// Apply copies the set fields of the patch onto the todo and refreshes
// the update timestamp. Returns an error if the result fails validation.
func (t *Todo) Apply(patch TodoPatch) error {
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Progress != nil {
		t.Progress = *patch.Progress
	}
	t.UpdatedAt = time.Now().UTC()

	return t.Validate()
}

// PriorityStat is one row of the per-priority aggregate: how many of
// the owner's todos carry the given priority. Priorities with no todos
// are absent from the result.
type PriorityStat struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
}

// ProgressStats partitions an owner's todos into five progress buckets
// with inclusive upper bounds. The five counts always sum to the
// owner's total todo count.
type ProgressStats struct {
	Range0To20   int `json:"range_0_20"`
	Range21To40  int `json:"range_21_40"`
	Range41To60  int `json:"range_41_60"`
	Range61To80  int `json:"range_61_80"`
	Range81To100 int `json:"range_81_100"`
}

// Total returns the sum of all bucket counts.
func (s ProgressStats) Total() int {
	return s.Range0To20 + s.Range21To40 + s.Range41To60 + s.Range61To80 + s.Range81To100
}
