package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Common errors returned by the dispatcher
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// DispatcherConfig holds configuration for the dispatcher
type DispatcherConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// TaskTimeout bounds the execution time of a single task.
	// If zero, defaults to 30 seconds.
	TaskTimeout time.Duration
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		WorkerCount: 2,
		QueueSize:   100,
		TaskTimeout: 30 * time.Second,
	}
}

// Dispatcher manages background task processing with a worker pool
// reading from a buffered channel queue.
type Dispatcher struct {
	tasks      chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     DispatcherConfig
	logger     *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Ensure Dispatcher implements the Submitter interface
var _ Submitter = (*Dispatcher)(nil)

// NewDispatcher creates a new Dispatcher
func NewDispatcher(config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if config.TaskTimeout == 0 {
		config.TaskTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		tasks:      make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "task_dispatcher")),
	}
}

// Submit adds a new task to the queue.
// Returns ErrQueueFull if the queue is at capacity and ErrQueueClosed
// after Stop; it never blocks the caller.
func (d *Dispatcher) Submit(task Task) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrQueueClosed
	}

	select {
	case d.tasks <- task:
		d.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(d.tasks),
			"queue_cap", cap(d.tasks))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(d.tasks))
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	for i := 0; i < d.config.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	d.logger.Info("dispatcher started",
		"worker_count", d.config.WorkerCount,
		"queue_size", d.config.QueueSize)
}

// Stop closes the queue, waits for queued tasks to drain, and stops
// the workers.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	// Workers exit once the channel drains.
	d.wg.Wait()
	d.cancelFunc()

	d.logger.Info("dispatcher stopped")
}

// worker consumes tasks from the queue until it is closed and drained.
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	log := d.logger.With(slog.Int("worker_id", id))
	log.Debug("worker started")

	for task := range d.tasks {
		d.run(log, task)
	}

	log.Debug("worker stopped")
}

// run executes a single task with a timeout. Failures are logged and
// swallowed: tasks here are best-effort by contract.
func (d *Dispatcher) run(log *slog.Logger, task Task) {
	ctx, cancel := context.WithTimeout(d.ctx, d.config.TaskTimeout)
	defer cancel()

	start := time.Now()
	if err := task.Execute(ctx); err != nil {
		log.Error("task execution failed",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"duration", time.Since(start),
			"error", err)
		return
	}

	log.Debug("task completed",
		"task_id", task.ID(),
		"task_type", task.Type(),
		"duration", time.Since(start))
}
