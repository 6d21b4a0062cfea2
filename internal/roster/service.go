// Package roster coordinates sign-up, acceptance, rejection, removal and rescheduling
// of members against the positions of an activity.
package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/availability"
	"github.com/mauv0809/crewboard/internal/eligibility"
	"github.com/mauv0809/crewboard/internal/ledger"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/sethvargo/go-retry"
)

// CreateActivity validates and stores a new activity. An empty ID is generated.
func (s *Service) CreateActivity(ctx context.Context, a *activity.Activity) (*activity.Activity, error) {
	defer s.observe("create_activity", time.Now())

	a = a.Clone()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Applicants = []string{}
	if err := a.Validate(s.now()); err != nil {
		return nil, err
	}
	if err := s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetActivity returns the current state of an activity.
func (s *Service) GetActivity(ctx context.Context, activityID string) (*activity.Activity, error) {
	return s.activities.Load(ctx, activityID)
}

// ListActivities returns every activity ordered by start.
func (s *Service) ListActivities(ctx context.Context) ([]*activity.Activity, error) {
	return s.activities.List(ctx)
}

// ListParticipants returns the accepted matches of an activity.
func (s *Service) ListParticipants(ctx context.Context, activityID string) ([]*ledger.Match, error) {
	if _, err := s.activities.Load(ctx, activityID); err != nil {
		return nil, err
	}
	return s.ledger.FindAllAccepted(ctx, activityID)
}

// SignUp puts the requesting member on the applicant list if they are eligible.
// When no open position is left the member is waitlisted and told so.
func (s *Service) SignUp(ctx context.Context, activityID string, req eligibility.Request) (string, error) {
	defer s.observe("sign_up", time.Now())

	var depleted bool
	err := s.mutate(ctx, activityID, func(ctx context.Context, a *activity.Activity) error {
		if result := eligibility.Evaluate(a, req); result != eligibility.Eligible {
			return eligibilityErrors[result]
		}
		a.SignUp(req.UserID)
		depleted = a.IsDepleted()
		return nil
	}, nil)
	if err != nil {
		log.Info("Sign up refused", "activityID", activityID, "userID", req.UserID, "reason", err)
		return "", err
	}

	msg := fmt.Sprintf(msgSignedUp, activityID)
	log.Info("Signed up", "activityID", activityID, "userID", req.UserID, "waitlisted", depleted)
	if depleted {
		s.notify(ctx, req.UserID, activityID, activity.StatusActivityFull)
		msg += msgWaitlisted
	}
	return msg, nil
}

// AcceptApplicant gives userID one open slot of position and records the match.
// When this fills the last slot, every applicant without a match learns the activity is full.
func (s *Service) AcceptApplicant(ctx context.Context, activityID, userID string, position activity.Position, requesterID string) (string, error) {
	defer s.observe("accept_applicant", time.Now())

	var (
		depleted   bool
		applicants []string
	)
	err := s.mutate(ctx, activityID, func(ctx context.Context, a *activity.Activity) error {
		if a.OwnerID != requesterID {
			return ErrNotOwner
		}
		if !a.HasApplicant(userID) {
			return ErrNotSignedUp
		}
		matched, err := s.ledger.Exists(ctx, activityID, userID)
		if err != nil {
			return err
		}
		if matched {
			return ErrDuplicateMatch
		}
		if err := a.AcceptAndConsume(position); err != nil {
			log.Info("Position not open", "activityID", activityID, "position", position)
			return ErrPositionNotOpen
		}
		if _, err := s.ledger.RecordAcceptance(ctx, activityID, userID, position); err != nil {
			return err
		}
		depleted = a.IsDepleted()
		applicants = a.Applicants
		return nil
	}, func(ctx context.Context) {
		// The activity was not saved, so the match must not outlive it.
		if _, err := s.ledger.Remove(ctx, activityID, userID); err != nil {
			log.Error("Failed to roll back match", "error", err, "activityID", activityID, "userID", userID)
		}
	})
	if err != nil {
		log.Info("Accept refused", "activityID", activityID, "userID", userID, "position", position, "reason", err)
		return "", err
	}

	log.Info("Accepted applicant", "activityID", activityID, "userID", userID, "position", position, "depleted", depleted)
	s.notify(ctx, userID, activityID, activity.StatusAccepted)
	if depleted {
		s.notifyFull(ctx, activityID, userID, applicants)
	}
	return fmt.Sprintf(msgAccepted, userID, activityID), nil
}

// notifyFull tells each applicant that has no match yet that the activity is full.
func (s *Service) notifyFull(ctx context.Context, activityID, acceptedID string, applicants []string) {
	matches, err := s.ledger.FindAllAccepted(ctx, activityID)
	if err != nil {
		log.Error("Failed to list matches for full activity notifications", "error", err, "activityID", activityID)
		return
	}
	matched := make(map[string]bool, len(matches))
	for _, m := range matches {
		matched[m.UserID] = true
	}
	for _, applicant := range applicants {
		if applicant == acceptedID || matched[applicant] {
			continue
		}
		s.notify(ctx, applicant, activityID, activity.StatusActivityFull)
	}
}

// RejectApplicant takes userID off the applicant list.
func (s *Service) RejectApplicant(ctx context.Context, activityID, userID, requesterID string) (string, error) {
	defer s.observe("reject_applicant", time.Now())

	err := s.mutate(ctx, activityID, func(ctx context.Context, a *activity.Activity) error {
		if a.OwnerID != requesterID {
			return ErrNotOwner
		}
		if !a.RemoveApplicant(userID) {
			return ErrNotSignedUp
		}
		return nil
	}, nil)
	if err != nil {
		log.Info("Reject refused", "activityID", activityID, "userID", userID, "reason", err)
		return "", err
	}

	log.Info("Rejected applicant", "activityID", activityID, "userID", userID)
	s.notify(ctx, userID, activityID, activity.StatusRejected)
	return fmt.Sprintf(msgRejected, userID, activityID), nil
}

// RemoveParticipant kicks userID from the activity and deletes their match if they had one.
// A user counts as signed up while they are an applicant or hold a match.
// The position they held is not reopened.
func (s *Service) RemoveParticipant(ctx context.Context, activityID, userID string) (string, error) {
	defer s.observe("remove_participant", time.Now())

	var removed *ledger.Match
	err := s.mutate(ctx, activityID, func(ctx context.Context, a *activity.Activity) error {
		removed = nil
		match, err := s.matchFor(ctx, activityID, userID)
		if err != nil {
			return err
		}
		if !a.RemoveApplicant(userID) && match == nil {
			return ErrNotSignedUp
		}
		if match == nil {
			return nil
		}
		if _, err := s.ledger.Remove(ctx, activityID, userID); err != nil {
			return fmt.Errorf("failed to remove match: %w", err)
		}
		removed = match
		return nil
	}, func(ctx context.Context) {
		// The activity was not saved, so the match comes back.
		if removed == nil {
			return
		}
		if _, err := s.ledger.RecordAcceptance(ctx, activityID, userID, removed.Position); err != nil {
			log.Error("Failed to restore match", "error", err, "activityID", activityID, "userID", userID, "position", removed.Position)
		}
	})
	if err != nil {
		log.Info("Remove refused", "activityID", activityID, "userID", userID, "reason", err)
		return "", err
	}

	matched := removed != nil
	log.Info("Removed participant", "activityID", activityID, "userID", userID, "matched", matched)
	s.notify(ctx, userID, activityID, activity.StatusKicked)
	if matched {
		return fmt.Sprintf(msgNoLonger, userID, activityID), nil
	}
	return fmt.Sprintf(msgKicked, userID, activityID), nil
}

// matchFor returns userID's accepted match on the activity, or nil.
func (s *Service) matchFor(ctx context.Context, activityID, userID string) (*ledger.Match, error) {
	matches, err := s.ledger.FindAllAccepted(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up match: %w", err)
	}
	for _, m := range matches {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

// RescheduleActivity moves the activity and/or changes its location, tells every participant,
// and removes participants whose availability no longer covers a new start.
func (s *Service) RescheduleActivity(ctx context.Context, activityID string, newStart *time.Time, newLocation *string) (string, error) {
	defer s.observe("reschedule_activity", time.Now())

	if newStart == nil && newLocation == nil {
		return "", ErrNothingToChange
	}
	err := s.mutate(ctx, activityID, func(ctx context.Context, a *activity.Activity) error {
		if newStart != nil {
			if !newStart.After(s.now()) {
				return ErrActivityExpired
			}
			a.Start = *newStart
		}
		if newLocation != nil {
			a.Location = *newLocation
		}
		return nil
	}, nil)
	if err != nil {
		log.Info("Reschedule refused", "activityID", activityID, "reason", err)
		return "", err
	}
	log.Info("Rescheduled activity", "activityID", activityID, "newStart", newStart, "newLocation", newLocation)

	// The activity is saved. Everything below is best effort.
	ctx = context.WithoutCancel(ctx)
	participants, err := s.ledger.FindAllAccepted(ctx, activityID)
	if err != nil {
		log.Error("Failed to list participants after reschedule", "error", err, "activityID", activityID)
		return fmt.Sprintf(msgRescheduled, activityID), nil
	}

	date, location := Unchanged, Unchanged
	if newStart != nil {
		date = newStart.Format(time.RFC3339)
	}
	if newLocation != nil {
		location = *newLocation
	}
	for _, p := range participants {
		s.notifications.Dispatch(ctx, notifier.Notification{
			UserID:      p.UserID,
			ActivityID:  activityID,
			Status:      activity.StatusChanges,
			NewDate:     date,
			NewLocation: location,
		})
	}

	if newStart != nil {
		for _, p := range participants {
			s.recheckAvailability(ctx, activityID, p.UserID, *newStart)
		}
	}
	return fmt.Sprintf(msgRescheduled, activityID), nil
}

// recheckAvailability removes userID when their current availability does not cover start.
func (s *Service) recheckAvailability(ctx context.Context, activityID, userID string, start time.Time) {
	intervals, err := s.profiles.GetAvailability(ctx, userID)
	if err != nil {
		s.metrics.IncProfileLookupFailed()
		log.Error("Failed to fetch availability", "error", err, "activityID", activityID, "userID", userID)
		return
	}
	if availability.CoversStart(intervals, start) {
		return
	}

	log.Info("Participant no longer available", "activityID", activityID, "userID", userID)
	if _, err := s.RemoveParticipant(ctx, activityID, userID); err != nil {
		log.Error("Failed to remove unavailable participant", "error", err, "activityID", activityID, "userID", userID)
	}
}

// mutate loads the activity, applies change to a copy and saves it with a version check.
// A version conflict reruns the whole attempt against a fresh load, up to maxAttempts.
// undo runs when change succeeded but the save did not.
func (s *Service) mutate(ctx context.Context, activityID string, change func(context.Context, *activity.Activity) error, undo func(context.Context)) error {
	backoff := retry.WithMaxRetries(uint64(s.maxAttempts-1), retry.NewConstant(s.backoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		a, err := s.activities.Load(ctx, activityID)
		if err != nil {
			return err
		}
		if err := change(ctx, a); err != nil {
			return err
		}
		err = s.activities.Save(ctx, a)
		if err == nil {
			return nil
		}
		if undo != nil {
			undo(ctx)
		}
		if errors.Is(err, activity.ErrVersionConflict) {
			s.metrics.IncSaveConflict()
			log.Warn("Version conflict, retrying", "activityID", activityID, "version", a.Version)
			return retry.RetryableError(err)
		}
		return err
	})
	if errors.Is(err, activity.ErrVersionConflict) {
		return ErrConflict
	}
	return err
}

func (s *Service) notify(ctx context.Context, userID, activityID string, status activity.Status) {
	s.notifications.Dispatch(ctx, notifier.Notification{
		UserID:     userID,
		ActivityID: activityID,
		Status:     status,
	})
}

func (s *Service) observe(operation string, start time.Time) {
	s.metrics.ObserveOperationDuration(operation, time.Since(start).Seconds())
}
