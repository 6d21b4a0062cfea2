package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mauv0809/crewboard/internal/activity"
)

// Mock is an in-memory implementation of the Ledger interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu      sync.Mutex
	matches []*Match
	nextID  int

	// Spies for method calls
	RecordAcceptanceFunc func(ctx context.Context, activityID, userID string, position activity.Position) (*Match, error)
	FindAllAcceptedFunc  func(ctx context.Context, activityID string) ([]*Match, error)
	RemoveFunc           func(ctx context.Context, activityID, userID string) (bool, error)

	// Call records
	RecordAcceptanceCalls []struct {
		ActivityID string
		UserID     string
		Position   activity.Position
	}
	RemoveCalls []struct {
		ActivityID string
		UserID     string
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordAcceptanceCalls = nil
	m.RemoveCalls = nil
}

// Seed adds an accepted match without going through RecordAcceptance.
func (m *Mock) Seed(activityID, userID string, position activity.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(activityID, userID, position)
}

func (m *Mock) insert(activityID, userID string, position activity.Position) *Match {
	m.nextID++
	match := &Match{
		ID:         fmt.Sprintf("match-%d", m.nextID),
		ActivityID: activityID,
		UserID:     userID,
		Position:   position,
		Status:     activity.StatusAccepted,
		CreatedAt:  time.Now().UTC(),
	}
	m.matches = append(m.matches, match)
	return match
}

func (m *Mock) find(activityID, userID string) int {
	for i, match := range m.matches {
		if match.ActivityID == activityID && match.UserID == userID {
			return i
		}
	}
	return -1
}

func (m *Mock) Exists(ctx context.Context, activityID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(activityID, userID) >= 0, nil
}

func (m *Mock) RecordAcceptance(ctx context.Context, activityID, userID string, position activity.Position) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordAcceptanceCalls = append(m.RecordAcceptanceCalls, struct {
		ActivityID string
		UserID     string
		Position   activity.Position
	}{activityID, userID, position})
	if m.RecordAcceptanceFunc != nil {
		return m.RecordAcceptanceFunc(ctx, activityID, userID, position)
	}
	if m.find(activityID, userID) >= 0 {
		return nil, ErrDuplicateMatch
	}
	match := *m.insert(activityID, userID, position)
	return &match, nil
}

func (m *Mock) FindAllAccepted(ctx context.Context, activityID string) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindAllAcceptedFunc != nil {
		return m.FindAllAcceptedFunc(ctx, activityID)
	}
	var out []*Match
	for _, match := range m.matches {
		if match.ActivityID == activityID && match.Status == activity.StatusAccepted {
			c := *match
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *Mock) FindByUser(ctx context.Context, userID string) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Match
	for _, match := range m.matches {
		if match.UserID == userID {
			c := *match
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *Mock) Remove(ctx context.Context, activityID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, struct {
		ActivityID string
		UserID     string
	}{activityID, userID})
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, activityID, userID)
	}
	i := m.find(activityID, userID)
	if i < 0 {
		return false, nil
	}
	m.matches = append(m.matches[:i], m.matches[i+1:]...)
	return true, nil
}
