package roster

import (
	"context"
	"time"

	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/ledger"
	"github.com/mauv0809/crewboard/internal/metrics"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/mauv0809/crewboard/internal/profile"
)

// Unchanged is sent in place of a field a reschedule did not touch.
const Unchanged = "has not changed since the last update"

const (
	msgSignedUp    = "User successfully signed up for activity with id: %s."
	msgWaitlisted  = " The activity is currently full, you have been placed on the waitlist."
	msgAccepted    = "User with id: %s is accepted successfully to activity with id: %s"
	msgRejected    = "User with id: %s is rejected successfully from activity with id: %s"
	msgKicked      = "User with id: %s successfully kicked from activity with id: %s"
	msgNoLonger    = "User with id: %s is no longer participating in activity with id: %s"
	msgRescheduled = "Activity with id: %s successfully updated."
)

// dispatcher hands notifications off for delivery after a mutation is persisted.
type dispatcher interface {
	Dispatch(ctx context.Context, n notifier.Notification)
}

// Service runs the roster workflows against one activity at a time.
// Every workflow loads the activity, mutates a copy and saves it with a version check.
type Service struct {
	activities    activity.Store
	ledger        ledger.Ledger
	profiles      profile.Client
	notifications dispatcher
	metrics       metrics.Metrics
	now           func() time.Time
	maxAttempts   int
	backoff       time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxAttempts bounds how often a workflow is re-run after a version conflict.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithBackoff sets the pause between conflict retries.
func WithBackoff(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.backoff = d
		}
	}
}

// New creates a new Service.
func New(activities activity.Store, ledger ledger.Ledger, profiles profile.Client, notifications dispatcher, metrics metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		activities:    activities,
		ledger:        ledger,
		profiles:      profiles,
		notifications: notifications,
		metrics:       metrics,
		now:           time.Now,
		maxAttempts:   3,
		backoff:       10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
