// Package task provides an in-process background dispatcher for
// fire-and-forget work. Submitting never blocks request handling, and
// task failures are logged, not retried: for notification publishing,
// retry is the external queue's job once the message reaches it.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// Submitter is the narrow interface services use to hand work to the
// dispatcher.
type Submitter interface {
	// Submit enqueues a task for background execution.
	// Returns an error if the queue is full or closed.
	Submit(task Task) error
}
