package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTask is a controllable Task implementation for dispatcher tests.
type fakeTask struct {
	id      uuid.UUID
	execute func(ctx context.Context) error
}

func newFakeTask(execute func(ctx context.Context) error) *fakeTask {
	return &fakeTask{id: uuid.New(), execute: execute}
}

func (t *fakeTask) ID() uuid.UUID { return t.id }
func (t *fakeTask) Type() string  { return "fake" }
func (t *fakeTask) Execute(ctx context.Context) error {
	if t.execute != nil {
		return t.execute(ctx)
	}
	return nil
}

func TestDispatcherRunsSubmittedTasks(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{WorkerCount: 2, QueueSize: 10}, nil)
	d.Start()

	var executed atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := d.Submit(newFakeTask(func(ctx context.Context) error {
			defer wg.Done()
			executed.Add(1)
			return nil
		}))
		require.NoError(t, err)
	}

	wg.Wait()
	d.Stop()

	assert.Equal(t, int32(5), executed.Load())
}

func TestDispatcherSwallowsTaskErrors(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{WorkerCount: 1, QueueSize: 10}, nil)
	d.Start()

	var afterFailure atomic.Bool
	var wg sync.WaitGroup
	wg.Add(2)

	require.NoError(t, d.Submit(newFakeTask(func(ctx context.Context) error {
		defer wg.Done()
		return errors.New("publish failed")
	})))
	require.NoError(t, d.Submit(newFakeTask(func(ctx context.Context) error {
		defer wg.Done()
		afterFailure.Store(true)
		return nil
	})))

	wg.Wait()
	d.Stop()

	// A failing task does not take the worker down.
	assert.True(t, afterFailure.Load())
}

func TestDispatcherQueueFull(t *testing.T) {
	t.Parallel()

	// No workers started, so the queue fills up.
	d := NewDispatcher(DispatcherConfig{WorkerCount: 1, QueueSize: 1}, nil)

	require.NoError(t, d.Submit(newFakeTask(nil)))

	err := d.Submit(newFakeTask(nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestDispatcherStopDrainsQueue(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{WorkerCount: 1, QueueSize: 10}, nil)

	var executed atomic.Int32
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Submit(newFakeTask(func(ctx context.Context) error {
			executed.Add(1)
			return nil
		})))
	}

	// Start after queueing so Stop must drain all three.
	d.Start()
	d.Stop()

	assert.Equal(t, int32(3), executed.Load())

	// Submitting after Stop fails.
	err := d.Submit(newFakeTask(nil))
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestDispatcherTaskTimeout(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{
		WorkerCount: 1,
		QueueSize:   1,
		TaskTimeout: 10 * time.Millisecond,
	}, nil)
	d.Start()

	done := make(chan error, 1)
	require.NoError(t, d.Submit(newFakeTask(func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("task context was never cancelled")
	}

	d.Stop()
}
