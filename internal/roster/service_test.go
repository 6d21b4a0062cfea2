package roster_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/availability"
	"github.com/mauv0809/crewboard/internal/eligibility"
	"github.com/mauv0809/crewboard/internal/ledger"
	"github.com/mauv0809/crewboard/internal/metrics"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/mauv0809/crewboard/internal/profile"
	"github.com/mauv0809/crewboard/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// now is Sunday 2026-10-18 12:00 UTC.
var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// wednesday is the start of most test activities.
var wednesday = time.Date(2026, 10, 21, 14, 5, 0, 0, time.UTC)

type fixture struct {
	store      *activity.MockStore
	ledger     *ledger.Mock
	profiles   *profile.Mock
	gateway    *notifier.Mock
	dispatcher *notifier.Dispatcher
	metrics    *metrics.Mock
	svc        *roster.Service
}

func newFixture(t *testing.T, seed ...*activity.Activity) *fixture {
	t.Helper()
	f := &fixture{
		store:    activity.NewMock(seed...),
		ledger:   ledger.NewMock(),
		profiles: profile.NewMock(),
		gateway:  notifier.NewMock(),
		metrics:  metrics.NewMock(),
	}
	f.dispatcher = notifier.NewDispatcher(f.gateway, f.metrics, time.Second, 4)
	f.svc = roster.New(f.store, f.ledger, f.profiles, f.dispatcher, f.metrics,
		roster.WithClock(func() time.Time { return now }),
		roster.WithMaxAttempts(3),
		roster.WithBackoff(time.Millisecond),
	)
	return f
}

// sent waits for pending deliveries and returns the statuses userID received.
func (f *fixture) sent(userID string) []activity.Status {
	f.dispatcher.Wait()
	return f.gateway.For(userID)
}

func (f *fixture) total() int {
	f.dispatcher.Wait()
	return len(f.gateway.Calls())
}

func training(id string, positions ...activity.Position) *activity.Activity {
	return &activity.Activity{
		ID:         id,
		OwnerID:    "owner",
		Name:       "Morning row",
		Kind:       activity.KindTraining,
		Start:      wednesday,
		Location:   "Boathouse",
		Positions:  positions,
		Applicants: []string{},
	}
}

func window(day time.Weekday, fromH, fromM, toH, toM int) []availability.Interval {
	return []availability.Interval{{
		Day:   day,
		Start: availability.Clock(fromH, fromM, 0),
		End:   availability.Clock(toH, toM, 0),
	}}
}

func availableRequest(userID string) eligibility.Request {
	return eligibility.Request{UserID: userID, Availability: window(time.Wednesday, 14, 0, 15, 0)}
}

func TestSignUp_EndToEndBoundary(t *testing.T) {
	f := newFixture(t, training("a1", activity.PositionCoach, activity.PositionCoxswain))
	ctx := context.Background()

	msg, err := f.svc.SignUp(ctx, "a1", eligibility.Request{UserID: "u1", Availability: window(time.Wednesday, 14, 5, 14, 6)})
	require.NoError(t, err)
	assert.Equal(t, "User successfully signed up for activity with id: a1.", msg)

	a := f.store.Get("a1")
	assert.Equal(t, []string{"u1"}, a.Applicants)
	assert.Len(t, a.Positions, 2, "signing up does not consume a position")

	_, err = f.svc.SignUp(ctx, "a1", eligibility.Request{UserID: "u2", Availability: window(time.Wednesday, 14, 6, 14, 7)})
	assert.ErrorIs(t, err, roster.ErrNotAvailable)
	assert.Equal(t, "User is not available for this activity!", err.Error())
	assert.Equal(t, []string{"u1"}, f.store.Get("a1").Applicants)

	assert.Zero(t, f.total())
}

func TestSignUp_AlreadyAppliedWinsOverNotAvailable(t *testing.T) {
	a := training("a1", activity.PositionPort)
	a.Applicants = []string{"u1"}
	f := newFixture(t, a)

	_, err := f.svc.SignUp(context.Background(), "a1", eligibility.Request{UserID: "u1"})
	assert.ErrorIs(t, err, roster.ErrAlreadyApplied)
	assert.Empty(t, f.store.SaveCalls, "refused sign ups are not persisted")
}

func TestSignUp_Competition(t *testing.T) {
	female := activity.GenderFemale
	org := "DSR"
	a := training("c1", activity.PositionPort)
	a.Kind = activity.KindCompetition
	a.Competition = &activity.Competition{Gender: &female, Organisation: &org}
	f := newFixture(t, a)
	ctx := context.Background()

	req := availableRequest("u1")
	req.Gender = activity.GenderFemale
	req.Organisation = "DSR"

	_, err := f.svc.SignUp(ctx, "c1", req)
	assert.ErrorIs(t, err, roster.ErrNotCompetitive)

	req.Competitive = true
	req.Organisation = "Kvik"
	_, err = f.svc.SignUp(ctx, "c1", req)
	assert.ErrorIs(t, err, roster.ErrOrganisationMismatch)
	assert.True(t, roster.IsValidation(err))

	req.Organisation = "DSR"
	_, err = f.svc.SignUp(ctx, "c1", req)
	assert.NoError(t, err)
}

func TestSignUp_Waitlisted(t *testing.T) {
	a := training("a1")
	a.Positions = []activity.Position{}
	f := newFixture(t, a)

	msg, err := f.svc.SignUp(context.Background(), "a1", availableRequest("u1"))
	require.NoError(t, err)
	assert.Equal(t, "User successfully signed up for activity with id: a1. The activity is currently full, you have been placed on the waitlist.", msg)
	assert.Equal(t, []activity.Status{activity.StatusActivityFull}, f.sent("u1"))
}

func TestSignUp_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SignUp(context.Background(), "missing", availableRequest("u1"))
	assert.ErrorIs(t, err, roster.ErrNotFound)
	assert.True(t, roster.IsNotFound(err))
}

func TestAcceptApplicant_DepletionFanOut(t *testing.T) {
	a := training("a1", activity.PositionCoxswain)
	a.Applicants = []string{"A", "B", "C"}
	f := newFixture(t, a)
	ctx := context.Background()

	msg, err := f.svc.AcceptApplicant(ctx, "a1", "A", activity.PositionCoxswain, "owner")
	require.NoError(t, err)
	assert.Equal(t, "User with id: A is accepted successfully to activity with id: a1", msg)

	assert.Equal(t, []activity.Status{activity.StatusAccepted}, f.sent("A"))
	assert.Equal(t, []activity.Status{activity.StatusActivityFull}, f.sent("B"))
	assert.Equal(t, []activity.Status{activity.StatusActivityFull}, f.sent("C"))
	assert.Equal(t, 3, f.total())
	assert.Empty(t, f.store.Get("a1").Positions)

	t.Run("retrying the same accept sends nothing", func(t *testing.T) {
		_, err := f.svc.AcceptApplicant(ctx, "a1", "A", activity.PositionCoxswain, "owner")
		assert.ErrorIs(t, err, roster.ErrDuplicateMatch)
		assert.True(t, roster.IsConflict(err))
		assert.Equal(t, 3, f.total())
	})
}

func TestAcceptApplicant_FanOutSkipsExistingMatches(t *testing.T) {
	a := training("a1", activity.PositionCoxswain, activity.PositionPort)
	a.Applicants = []string{"A", "B", "C", "D"}
	f := newFixture(t, a)
	ctx := context.Background()

	_, err := f.svc.AcceptApplicant(ctx, "a1", "A", activity.PositionPort, "owner")
	require.NoError(t, err)
	assert.Equal(t, 1, f.total(), "no fan out while positions remain")

	_, err = f.svc.AcceptApplicant(ctx, "a1", "B", activity.PositionCoxswain, "owner")
	require.NoError(t, err)

	assert.Equal(t, []activity.Status{activity.StatusAccepted}, f.sent("A"))
	assert.Equal(t, []activity.Status{activity.StatusAccepted}, f.sent("B"))
	assert.Equal(t, []activity.Status{activity.StatusActivityFull}, f.sent("C"))
	assert.Equal(t, []activity.Status{activity.StatusActivityFull}, f.sent("D"))
}

func TestAcceptApplicant_Refusals(t *testing.T) {
	a := training("a1", activity.PositionCoxswain)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)
	ctx := context.Background()

	_, err := f.svc.AcceptApplicant(ctx, "a1", "A", activity.PositionCoxswain, "someone-else")
	assert.ErrorIs(t, err, roster.ErrNotOwner)

	_, err = f.svc.AcceptApplicant(ctx, "a1", "A", activity.PositionCoach, "owner")
	assert.ErrorIs(t, err, roster.ErrPositionNotOpen)
	assert.True(t, roster.IsConflict(err))

	assert.Empty(t, f.ledger.RecordAcceptanceCalls)
	assert.Empty(t, f.store.SaveCalls)
	assert.Len(t, f.store.Get("a1").Positions, 1)
	assert.Zero(t, f.total())
}

func TestAcceptApplicant_RetriesVersionConflict(t *testing.T) {
	a := training("a1", activity.PositionCoxswain, activity.PositionPort)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)

	conflicts := 0
	f.store.BeforeSaveFunc = func(a *activity.Activity) {
		if conflicts == 0 {
			conflicts++
			f.store.Touch(a.ID)
		}
	}

	_, err := f.svc.AcceptApplicant(context.Background(), "a1", "A", activity.PositionCoxswain, "owner")
	require.NoError(t, err)

	assert.Equal(t, 1, f.metrics.SaveConflicts())
	assert.Len(t, f.ledger.RecordAcceptanceCalls, 2)
	assert.Len(t, f.ledger.RemoveCalls, 1, "the first attempt's match is rolled back")
	assert.Equal(t, []activity.Position{activity.PositionPort}, f.store.Get("a1").Positions)

	matches, err := f.ledger.FindAllAccepted(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, []activity.Status{activity.StatusAccepted}, f.sent("A"))
}

func TestAcceptApplicant_ConflictExhausted(t *testing.T) {
	a := training("a1", activity.PositionCoxswain)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)
	f.store.BeforeSaveFunc = func(a *activity.Activity) {
		f.store.Touch(a.ID)
	}

	_, err := f.svc.AcceptApplicant(context.Background(), "a1", "A", activity.PositionCoxswain, "owner")
	assert.ErrorIs(t, err, roster.ErrConflict)
	assert.True(t, roster.IsConflict(err))
	assert.Equal(t, 3, f.metrics.SaveConflicts())

	exists, err := f.ledger.Exists(context.Background(), "a1", "A")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Len(t, f.store.Get("a1").Positions, 1)
	assert.Zero(t, f.total())
}

func TestAcceptApplicant_RequiresApplicant(t *testing.T) {
	a := training("a1", activity.PositionPort)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)

	_, err := f.svc.AcceptApplicant(context.Background(), "a1", "X", activity.PositionPort, "owner")
	assert.ErrorIs(t, err, roster.ErrNotSignedUp)
	assert.True(t, roster.IsNotFound(err))

	assert.Empty(t, f.ledger.RecordAcceptanceCalls)
	assert.Empty(t, f.store.SaveCalls)
	assert.Equal(t, []activity.Position{activity.PositionPort}, f.store.Get("a1").Positions)
	assert.Zero(t, f.total())
}

func TestRejectApplicant(t *testing.T) {
	a := training("a1", activity.PositionCoxswain)
	a.Applicants = []string{"A", "B"}
	f := newFixture(t, a)
	ctx := context.Background()

	_, err := f.svc.RejectApplicant(ctx, "a1", "A", "intruder")
	assert.ErrorIs(t, err, roster.ErrNotOwner)

	msg, err := f.svc.RejectApplicant(ctx, "a1", "A", "owner")
	require.NoError(t, err)
	assert.Equal(t, "User with id: A is rejected successfully from activity with id: a1", msg)
	assert.Equal(t, []string{"B"}, f.store.Get("a1").Applicants)
	assert.Equal(t, []activity.Status{activity.StatusRejected}, f.sent("A"))
	assert.Empty(t, f.ledger.RemoveCalls, "rejection does not touch the ledger")

	_, err = f.svc.RejectApplicant(ctx, "a1", "A", "owner")
	assert.ErrorIs(t, err, roster.ErrNotSignedUp)
}

func TestRemoveParticipant_Twice(t *testing.T) {
	a := training("a1", activity.PositionCoxswain)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)
	ctx := context.Background()

	msg, err := f.svc.RemoveParticipant(ctx, "a1", "A")
	require.NoError(t, err)
	assert.Equal(t, "User with id: A successfully kicked from activity with id: a1", msg)

	saved := len(f.store.SaveCalls)
	before := f.store.Get("a1")

	_, err = f.svc.RemoveParticipant(ctx, "a1", "A")
	assert.ErrorIs(t, err, roster.ErrNotSignedUp)
	assert.True(t, roster.IsNotFound(err))
	assert.Len(t, f.store.SaveCalls, saved)
	assert.Equal(t, before, f.store.Get("a1"))
	assert.Equal(t, []activity.Status{activity.StatusKicked}, f.sent("A"))
}

func TestRemoveParticipant_MatchedDoesNotReopenPosition(t *testing.T) {
	a := training("a1", activity.PositionCoxswain, activity.PositionPort)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)
	ctx := context.Background()

	_, err := f.svc.AcceptApplicant(ctx, "a1", "A", activity.PositionCoxswain, "owner")
	require.NoError(t, err)
	require.Len(t, f.store.Get("a1").Positions, 1)

	msg, err := f.svc.RemoveParticipant(ctx, "a1", "A")
	require.NoError(t, err)
	assert.Equal(t, "User with id: A is no longer participating in activity with id: a1", msg)

	assert.Equal(t, []activity.Position{activity.PositionPort}, f.store.Get("a1").Positions)
	exists, err := f.ledger.Exists(ctx, "a1", "A")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ElementsMatch(t, []activity.Status{activity.StatusAccepted, activity.StatusKicked}, f.sent("A"))
}

func TestRemoveParticipant_MatchWithoutApplicant(t *testing.T) {
	f := newFixture(t, training("a1", activity.PositionPort))
	f.ledger.Seed("a1", "X", activity.PositionCoxswain)
	ctx := context.Background()

	msg, err := f.svc.RemoveParticipant(ctx, "a1", "X")
	require.NoError(t, err)
	assert.Equal(t, "User with id: X is no longer participating in activity with id: a1", msg)

	participants, err := f.svc.ListParticipants(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, participants)
	assert.Equal(t, []activity.Status{activity.StatusKicked}, f.sent("X"))
}

func TestRemoveParticipant_LedgerFailureChangesNothing(t *testing.T) {
	a := training("a1", activity.PositionCoxswain, activity.PositionPort)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)
	ctx := context.Background()

	_, err := f.svc.AcceptApplicant(ctx, "a1", "A", activity.PositionCoxswain, "owner")
	require.NoError(t, err)
	saved := len(f.store.SaveCalls)

	f.ledger.RemoveFunc = func(ctx context.Context, activityID, userID string) (bool, error) {
		return false, errors.New("db down")
	}
	_, err = f.svc.RemoveParticipant(ctx, "a1", "A")
	require.Error(t, err)
	assert.Len(t, f.store.SaveCalls, saved, "the activity is not saved without the ledger change")
	assert.Equal(t, []string{"A"}, f.store.Get("a1").Applicants)
	exists, err := f.ledger.Exists(ctx, "a1", "A")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []activity.Status{activity.StatusAccepted}, f.sent("A"))

	f.ledger.RemoveFunc = nil
	msg, err := f.svc.RemoveParticipant(ctx, "a1", "A")
	require.NoError(t, err)
	assert.Equal(t, "User with id: A is no longer participating in activity with id: a1", msg)
	assert.Empty(t, f.store.Get("a1").Applicants)
	exists, err = f.ledger.Exists(ctx, "a1", "A")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemoveParticipant_ConflictRestoresMatch(t *testing.T) {
	a := training("a1", activity.PositionCoxswain, activity.PositionPort)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)
	ctx := context.Background()

	_, err := f.svc.AcceptApplicant(ctx, "a1", "A", activity.PositionCoxswain, "owner")
	require.NoError(t, err)
	f.dispatcher.Wait()

	f.store.BeforeSaveFunc = func(a *activity.Activity) {
		f.store.Touch(a.ID)
	}
	_, err = f.svc.RemoveParticipant(ctx, "a1", "A")
	assert.ErrorIs(t, err, roster.ErrConflict)

	matches, err := f.ledger.FindAllAccepted(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, activity.PositionCoxswain, matches[0].Position)
	assert.Equal(t, []string{"A"}, f.store.Get("a1").Applicants)
	assert.Equal(t, []activity.Status{activity.StatusAccepted}, f.sent("A"))
}

func TestRescheduleActivity_InThePast(t *testing.T) {
	f := newFixture(t, training("a1", activity.PositionPort))

	past := now.Add(-time.Hour)
	_, err := f.svc.RescheduleActivity(context.Background(), "a1", &past, nil)
	assert.ErrorIs(t, err, roster.ErrActivityExpired)
	assert.True(t, roster.IsValidation(err))

	exactlyNow := now
	_, err = f.svc.RescheduleActivity(context.Background(), "a1", &exactlyNow, nil)
	assert.ErrorIs(t, err, roster.ErrActivityExpired)
	assert.Empty(t, f.store.SaveCalls)
}

func TestRescheduleActivity_NothingToChange(t *testing.T) {
	a := training("a1", activity.PositionPort)
	a.Applicants = []string{"P"}
	f := newFixture(t, a)
	f.ledger.Seed("a1", "P", activity.PositionCoxswain)

	_, err := f.svc.RescheduleActivity(context.Background(), "a1", nil, nil)
	assert.ErrorIs(t, err, roster.ErrNothingToChange)
	assert.True(t, roster.IsValidation(err))
	assert.Empty(t, f.store.SaveCalls)
	assert.Zero(t, f.total())
}

func TestRescheduleActivity_LocationOnly(t *testing.T) {
	f := newFixture(t, training("a1", activity.PositionPort))
	f.ledger.Seed("a1", "P", activity.PositionCoxswain)

	location := "Bagsværd Sø"
	msg, err := f.svc.RescheduleActivity(context.Background(), "a1", nil, &location)
	require.NoError(t, err)
	assert.Equal(t, "Activity with id: a1 successfully updated.", msg)
	assert.Equal(t, location, f.store.Get("a1").Location)
	assert.Equal(t, wednesday, f.store.Get("a1").Start)

	f.dispatcher.Wait()
	calls := f.gateway.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, notifier.Notification{
		UserID:      "P",
		ActivityID:  "a1",
		Status:      activity.StatusChanges,
		NewDate:     roster.Unchanged,
		NewLocation: location,
	}, calls[0])
	assert.Empty(t, f.profiles.GetAvailabilityCalls, "availability is only rechecked for a new start")
}

func TestRescheduleActivity_Cascade(t *testing.T) {
	monday := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	a := training("a1", activity.PositionPort)
	a.Start = monday
	a.Applicants = []string{"P", "Q"}
	f := newFixture(t, a)
	f.ledger.Seed("a1", "P", activity.PositionCoxswain)
	f.ledger.Seed("a1", "Q", activity.PositionCoach)
	f.profiles.Set("P", window(time.Monday, 10, 0, 11, 0)...)
	f.profiles.Set("Q", append(window(time.Monday, 10, 0, 11, 0), window(time.Tuesday, 9, 0, 12, 0)...)...)

	tuesday := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	_, err := f.svc.RescheduleActivity(context.Background(), "a1", &tuesday, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []activity.Status{activity.StatusChanges, activity.StatusKicked}, f.sent("P"))
	assert.Equal(t, []activity.Status{activity.StatusChanges}, f.sent("Q"))

	stored := f.store.Get("a1")
	assert.Equal(t, tuesday, stored.Start)
	assert.Equal(t, []string{"Q"}, stored.Applicants)
	assert.Equal(t, []activity.Position{activity.PositionPort}, stored.Positions)

	exists, err := f.ledger.Exists(context.Background(), "a1", "P")
	require.NoError(t, err)
	assert.False(t, exists)

	for _, n := range f.gateway.Calls() {
		if n.Status == activity.StatusChanges {
			assert.Equal(t, tuesday.Format(time.RFC3339), n.NewDate)
			assert.Equal(t, roster.Unchanged, n.NewLocation)
		}
	}
}

func TestRescheduleActivity_ProfileFailureIsBestEffort(t *testing.T) {
	a := training("a1", activity.PositionPort)
	a.Applicants = []string{"P", "Q"}
	f := newFixture(t, a)
	f.ledger.Seed("a1", "P", activity.PositionCoxswain)
	f.ledger.Seed("a1", "Q", activity.PositionCoach)
	f.profiles.GetAvailabilityFunc = func(ctx context.Context, userID string) ([]availability.Interval, error) {
		if userID == "P" {
			return nil, errors.New("profile service unavailable")
		}
		return nil, nil
	}

	thursday := time.Date(2026, 10, 22, 18, 0, 0, 0, time.UTC)
	_, err := f.svc.RescheduleActivity(context.Background(), "a1", &thursday, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, f.metrics.ProfileLookupFailed())
	assert.Equal(t, []string{"P", "Q"}, f.profiles.GetAvailabilityCalls)
	assert.Equal(t, []activity.Status{activity.StatusChanges}, f.sent("P"), "P keeps the place when the lookup fails")
	assert.ElementsMatch(t, []activity.Status{activity.StatusChanges, activity.StatusKicked}, f.sent("Q"))
}

func TestRescheduleActivity_MatchedButNotApplicant(t *testing.T) {
	f := newFixture(t, training("a1", activity.PositionPort))
	f.ledger.Seed("a1", "P", activity.PositionCoxswain)
	f.profiles.Set("P")

	later := wednesday.Add(2 * time.Hour)
	_, err := f.svc.RescheduleActivity(context.Background(), "a1", &later, nil)
	require.NoError(t, err)

	exists, err := f.ledger.Exists(context.Background(), "a1", "P")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ElementsMatch(t, []activity.Status{activity.StatusChanges, activity.StatusKicked}, f.sent("P"))
}

func TestNotificationFailureDoesNotFailOperation(t *testing.T) {
	a := training("a1", activity.PositionCoxswain)
	a.Applicants = []string{"A"}
	f := newFixture(t, a)
	f.gateway.NotifyFunc = func(ctx context.Context, n notifier.Notification) error {
		return errors.New("gateway down")
	}

	_, err := f.svc.AcceptApplicant(context.Background(), "a1", "A", activity.PositionCoxswain, "owner")
	require.NoError(t, err)
	f.dispatcher.Wait()
	assert.Equal(t, 1, f.metrics.NotificationsFailed(string(activity.StatusAccepted)))
}

func TestCreateActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateActivity(ctx, &activity.Activity{
		OwnerID:    "owner",
		Name:       "Regatta",
		Kind:       activity.KindCompetition,
		Start:      wednesday,
		Positions:  []activity.Position{activity.PositionPort, activity.PositionStarboard},
		Applicants: []string{"sneaky"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Applicants)
	assert.NotNil(t, created.Competition)
	assert.Equal(t, int64(1), f.store.Get(created.ID).Version)

	got, err := f.svc.GetActivity(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Regatta", got.Name)

	_, err = f.svc.CreateActivity(ctx, &activity.Activity{
		OwnerID:   "owner",
		Name:      "Yesterday",
		Kind:      activity.KindTraining,
		Start:     now.Add(-24 * time.Hour),
		Positions: []activity.Position{activity.PositionPort},
	})
	assert.ErrorIs(t, err, activity.ErrInvalid)
	assert.True(t, roster.IsValidation(err))
}

func TestListParticipants(t *testing.T) {
	f := newFixture(t, training("a1", activity.PositionPort))
	f.ledger.Seed("a1", "P", activity.PositionCoxswain)
	f.ledger.Seed("a2", "Q", activity.PositionCoxswain)

	matches, err := f.svc.ListParticipants(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "P", matches[0].UserID)

	_, err = f.svc.ListParticipants(context.Background(), "a2")
	assert.ErrorIs(t, err, roster.ErrNotFound)
}
