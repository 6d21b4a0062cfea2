// Package notifier carries notification intents from the roster to the members they concern.
package notifier

import (
	"context"

	"github.com/mauv0809/crewboard/internal/activity"
)

// Notification is the intent to tell one member about one state transition.
// NewDate and NewLocation are only set for CHANGES.
type Notification struct {
	UserID      string          `json:"user_id" msgpack:"user_id"`
	ActivityID  string          `json:"activity_id" msgpack:"activity_id"`
	Status      activity.Status `json:"status" msgpack:"status"`
	NewDate     string          `json:"new_date,omitempty" msgpack:"new_date,omitempty"`
	NewLocation string          `json:"new_location,omitempty" msgpack:"new_location,omitempty"`
	DryRun      bool            `json:"dry_run,omitempty" msgpack:"dry_run,omitempty"`
}

// Notifier defines a high-level interface for delivering notifications.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type contextKey string

const dryRunKey contextKey = "dry_run"

// WithDryRun marks notifications dispatched under ctx as dry runs.
func WithDryRun(ctx context.Context, dryRun bool) context.Context {
	return context.WithValue(ctx, dryRunKey, dryRun)
}

// IsDryRun reports whether ctx was marked with WithDryRun.
func IsDryRun(ctx context.Context) bool {
	dryRun, _ := ctx.Value(dryRunKey).(bool)
	return dryRun
}
