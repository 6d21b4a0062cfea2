package club

import "context"

// Directory is the club's member directory. Notifiers use it to route messages to members.
type Directory interface {
	UpsertMember(ctx context.Context, m *Member) error
	UpsertMembers(ctx context.Context, members []*Member) error
	GetMember(ctx context.Context, id string) (*Member, error)
	GetMemberBySlackID(ctx context.Context, slackUserID string) (*Member, error)
	GetAllMembers(ctx context.Context) ([]*Member, error)
	GetUnlinkedMembers(ctx context.Context) ([]*Member, error)
	LinkSlackUser(ctx context.Context, memberID, slackUserID string) error
}
