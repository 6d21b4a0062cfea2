package club

import (
	"context"
	"sort"
	"sync"
)

// MockDirectory is an in-memory implementation of the Directory interface for testing.
// It is safe for concurrent use.
type MockDirectory struct {
	mu      sync.Mutex
	members map[string]*Member

	// Spies for method calls
	GetMemberFunc func(ctx context.Context, id string) (*Member, error)

	// Call records
	GetMemberCalls     []string
	LinkSlackUserCalls []struct {
		MemberID    string
		SlackUserID string
	}
}

// NewMock creates a new mock instance seeded with the given members.
func NewMock(seed ...*Member) *MockDirectory {
	m := &MockDirectory{members: make(map[string]*Member)}
	for _, member := range seed {
		c := *member
		m.members[c.ID] = &c
	}
	return m
}

// Reset clears all call records.
func (m *MockDirectory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMemberCalls = nil
	m.LinkSlackUserCalls = nil
}

func (m *MockDirectory) UpsertMember(ctx context.Context, member *Member) error {
	return m.UpsertMembers(ctx, []*Member{member})
}

func (m *MockDirectory) UpsertMembers(ctx context.Context, members []*Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range members {
		c := *member
		if existing, ok := m.members[c.ID]; ok && c.SlackUserID == nil {
			c.SlackUserID = existing.SlackUserID
		}
		m.members[c.ID] = &c
	}
	return nil
}

func (m *MockDirectory) GetMember(ctx context.Context, id string) (*Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMemberCalls = append(m.GetMemberCalls, id)
	if m.GetMemberFunc != nil {
		return m.GetMemberFunc(ctx, id)
	}
	member, ok := m.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	c := *member
	return &c, nil
}

func (m *MockDirectory) GetMemberBySlackID(ctx context.Context, slackUserID string) (*Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range m.members {
		if member.SlackUserID != nil && *member.SlackUserID == slackUserID {
			c := *member
			return &c, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (m *MockDirectory) GetAllMembers(ctx context.Context) ([]*Member, error) {
	return m.list(func(*Member) bool { return true }), nil
}

func (m *MockDirectory) GetUnlinkedMembers(ctx context.Context) ([]*Member, error) {
	return m.list(func(member *Member) bool { return member.SlackUserID == nil }), nil
}

func (m *MockDirectory) LinkSlackUser(ctx context.Context, memberID, slackUserID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LinkSlackUserCalls = append(m.LinkSlackUserCalls, struct {
		MemberID    string
		SlackUserID string
	}{memberID, slackUserID})
	member, ok := m.members[memberID]
	if !ok {
		return ErrMemberNotFound
	}
	id := slackUserID
	member.SlackUserID = &id
	return nil
}

func (m *MockDirectory) list(keep func(*Member) bool) []*Member {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Member
	for _, member := range m.members {
		if keep(member) {
			c := *member
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
