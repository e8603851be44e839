// Package notify_test provides mock implementations for notification testing.
// Related: internal/notify/sender.go, internal/notify/trigger.go
// Tags: notify, mocks, testing

package notify

import (
	"context"
	"errors"
	"sync"
)

// MockSender records SendVisual calls and returns configured errors.
type MockSender struct {
	mu sync.Mutex

	VisualError     error
	visualAvailable bool

	VisualCalls      []Notification
	LastNotification Notification
}

// NewMockSender creates a new mock sender that is available and never fails
func NewMockSender() *MockSender {
	return &MockSender{visualAvailable: true}
}

// WithVisualError configures the mock to return an error on SendVisual
func (m *MockSender) WithVisualError(err error) *MockSender {
	m.VisualError = err
	return m
}

// WithVisualAvailable configures whether visual notifications are available
func (m *MockSender) WithVisualAvailable(available bool) *MockSender {
	m.visualAvailable = available
	return m
}

// SendVisual records the call and returns configured error
func (m *MockSender) SendVisual(n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.VisualCalls = append(m.VisualCalls, n)
	m.LastNotification = n
	return m.VisualError
}

// VisualAvailable returns whether visual notifications are available
func (m *MockSender) VisualAvailable() bool {
	return m.visualAvailable
}

// VisualCallCount returns the number of SendVisual calls
func (m *MockSender) VisualCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.VisualCalls)
}

// mockReporter records reported messages
type mockReporter struct {
	successes []string
	errors    []string
}

func (r *mockReporter) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *mockReporter) Error(msg string)   { r.errors = append(r.errors, msg) }

func (r *mockReporter) total() int { return len(r.successes) + len(r.errors) }

// countingPermissioner returns a fixed answer and counts requests
type countingPermissioner struct {
	answer Permission
	calls  int
}

func (p *countingPermissioner) RequestPermission(_ context.Context) Permission {
	p.calls++
	return p.answer
}

// ErrMockVisual is returned by senders configured to fail
var ErrMockVisual = errors.New("mock visual notification error")
