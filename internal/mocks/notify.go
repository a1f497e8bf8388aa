package mocks

import (
	"context"
	"sync"

	"github.com/rmsato/todoapi/internal/notify"
	"github.com/rmsato/todoapi/internal/task"
)

// MockPublisher implements notify.Publisher and records every message
// it receives.
type MockPublisher struct {
	PublishFn func(ctx context.Context, msg notify.WelcomeMessage) error

	mu        sync.Mutex
	Published []notify.WelcomeMessage
}

// Compile-time interface check
var _ notify.Publisher = (*MockPublisher)(nil)

// PublishWelcomeEmail implements the Publisher interface
func (m *MockPublisher) PublishWelcomeEmail(ctx context.Context, msg notify.WelcomeMessage) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, msg)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, msg)
	return nil
}

// Messages returns a snapshot of the published messages.
func (m *MockPublisher) Messages() []notify.WelcomeMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.WelcomeMessage(nil), m.Published...)
}

// MockMailer implements notify.Mailer and records every send.
type MockMailer struct {
	SendFn func(ctx context.Context, email, firstName string) error

	mu   sync.Mutex
	Sent []struct{ Email, FirstName string }
}

// Compile-time interface check
var _ notify.Mailer = (*MockMailer)(nil)

// SendWelcomeEmail implements the Mailer interface
func (m *MockMailer) SendWelcomeEmail(ctx context.Context, email, firstName string) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, email, firstName)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, struct{ Email, FirstName string }{email, firstName})
	return nil
}

// MockSubmitter implements task.Submitter. By default submitted tasks
// execute synchronously, which makes fire-and-forget flows observable
// in tests without goroutine coordination.
type MockSubmitter struct {
	SubmitFn func(t task.Task) error

	mu        sync.Mutex
	Submitted []task.Task
}

// Compile-time interface check
var _ task.Submitter = (*MockSubmitter)(nil)

// Submit implements the Submitter interface
func (m *MockSubmitter) Submit(t task.Task) error {
	if m.SubmitFn != nil {
		return m.SubmitFn(t)
	}

	m.mu.Lock()
	m.Submitted = append(m.Submitted, t)
	m.mu.Unlock()

	return t.Execute(context.Background())
}
