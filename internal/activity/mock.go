package activity

import (
	"context"
	"sort"
	"sync"
)

// MockStore is an in-memory implementation of the Store interface for testing.
// It honours the version check on Save. It is safe for concurrent use.
type MockStore struct {
	mu         sync.Mutex
	activities map[string]*Activity

	// Spies for method calls
	LoadFunc func(ctx context.Context, id string) (*Activity, error)
	SaveFunc func(ctx context.Context, a *Activity) error
	// BeforeSaveFunc runs ahead of the version check, e.g. to simulate a concurrent writer with Touch.
	BeforeSaveFunc func(a *Activity)

	// Call records
	SaveCalls []*Activity
}

// NewMock creates a new mock instance seeded with the given activities.
func NewMock(seed ...*Activity) *MockStore {
	m := &MockStore{activities: make(map[string]*Activity)}
	for _, a := range seed {
		c := a.Clone()
		if c.Version == 0 {
			c.Version = 1
		}
		m.activities[c.ID] = c
	}
	return m
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = nil
}

// Get returns a copy of the stored activity, bypassing spies.
func (m *MockStore) Get(id string) *Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.activities[id]; ok {
		return a.Clone()
	}
	return nil
}

// Touch bumps the stored version as if another writer had saved the activity.
func (m *MockStore) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.activities[id]; ok {
		a.Version++
	}
}

func (m *MockStore) Create(ctx context.Context, a *Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.Version = 1
	m.activities[a.ID] = a.Clone()
	return nil
}

func (m *MockStore) Load(ctx context.Context, id string) (*Activity, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a.Clone(), nil
}

func (m *MockStore) Save(ctx context.Context, a *Activity) error {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, a.Clone())
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	if m.BeforeSaveFunc != nil {
		m.BeforeSaveFunc(a)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.activities[a.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Version != a.Version {
		return ErrVersionConflict
	}
	a.Version++
	m.activities[a.ID] = a.Clone()
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]*Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Activity, 0, len(m.activities))
	for _, a := range m.activities {
		out = append(out, a.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
