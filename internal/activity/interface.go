package activity

import "context"

// Store persists activities. Save is a compare-and-swap on Version.
type Store interface {
	Create(ctx context.Context, a *Activity) error
	Load(ctx context.Context, id string) (*Activity, error)
	Save(ctx context.Context, a *Activity) error
	List(ctx context.Context) ([]*Activity, error)
}
