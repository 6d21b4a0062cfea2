package profile

import (
	"context"
	"sync"

	"github.com/mauv0809/crewboard/internal/availability"
)

// Mock is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu           sync.Mutex
	availability map[string][]availability.Interval

	// Spies for method calls
	GetAvailabilityFunc func(ctx context.Context, userID string) ([]availability.Interval, error)

	// Call records
	GetAvailabilityCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{availability: make(map[string][]availability.Interval)}
}

// Set stores the availability returned for userID.
func (m *Mock) Set(userID string, intervals ...availability.Interval) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.availability[userID] = intervals
}

func (m *Mock) GetAvailability(ctx context.Context, userID string) ([]availability.Interval, error) {
	m.mu.Lock()
	m.GetAvailabilityCalls = append(m.GetAvailabilityCalls, userID)
	fn := m.GetAvailabilityFunc
	intervals, ok := m.availability[userID]
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, userID)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return intervals, nil
}
