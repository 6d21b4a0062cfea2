package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/crewboard/internal/activity"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	NotifyFunc func(ctx context.Context, n Notification) error

	// Call records
	NotifyCalls []Notification
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyCalls = nil
}

func (m *Mock) Notify(ctx context.Context, n Notification) error {
	m.mu.Lock()
	m.NotifyCalls = append(m.NotifyCalls, n)
	fn := m.NotifyFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, n)
	}
	return nil
}

// Calls returns a copy of the recorded notifications.
func (m *Mock) Calls() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.NotifyCalls...)
}

// For returns the statuses sent to userID in call order.
func (m *Mock) For(userID string) []activity.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	var statuses []activity.Status
	for _, n := range m.NotifyCalls {
		if n.UserID == userID {
			statuses = append(statuses, n.Status)
		}
	}
	return statuses
}
