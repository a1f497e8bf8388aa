package notify

import (
	"context"

	"github.com/google/uuid"
)

// TaskTypeWelcomeEmail identifies welcome notification tasks.
const TaskTypeWelcomeEmail = "welcome_email"

// WelcomeEmailTask publishes a welcome notification for a new account
// through the background dispatcher. Execution is best-effort: the
// dispatcher logs failures and moves on, so a queue outage never blocks
// or fails registration.
type WelcomeEmailTask struct {
	id        uuid.UUID
	publisher Publisher
	msg       WelcomeMessage
}

// NewWelcomeEmailTask creates a task that publishes msg when executed.
func NewWelcomeEmailTask(publisher Publisher, msg WelcomeMessage) *WelcomeEmailTask {
	return &WelcomeEmailTask{
		id:        uuid.New(),
		publisher: publisher,
		msg:       msg,
	}
}

// ID implements task.Task.ID
func (t *WelcomeEmailTask) ID() uuid.UUID {
	return t.id
}

// Type implements task.Task.Type
func (t *WelcomeEmailTask) Type() string {
	return TaskTypeWelcomeEmail
}

// Execute implements task.Task.Execute
func (t *WelcomeEmailTask) Execute(ctx context.Context) error {
	return t.publisher.PublishWelcomeEmail(ctx, t.msg)
}
