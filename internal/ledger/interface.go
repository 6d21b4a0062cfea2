package ledger

import (
	"context"

	"github.com/mauv0809/crewboard/internal/activity"
)

// Ledger records accepted (activity, user, position) triples.
// Matches reference activities and users by id only.
type Ledger interface {
	Exists(ctx context.Context, activityID, userID string) (bool, error)
	// RecordAcceptance fails with ErrDuplicateMatch if the pair is already matched.
	RecordAcceptance(ctx context.Context, activityID, userID string, position activity.Position) (*Match, error)
	FindAllAccepted(ctx context.Context, activityID string) ([]*Match, error)
	FindByUser(ctx context.Context, userID string) ([]*Match, error)
	// Remove deletes the match if present and reports whether one existed.
	Remove(ctx context.Context, activityID, userID string) (bool, error)
}
