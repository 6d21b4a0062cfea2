// Package activity holds the activity aggregate, its position inventory and its store.
package activity

import (
	"fmt"
	"slices"
	"time"
)

// Validate checks the invariants of a freshly created activity.
func (a *Activity) Validate(now time.Time) error {
	switch {
	case a.OwnerID == "":
		return fmt.Errorf("%w: owner is required", ErrInvalid)
	case a.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case len(a.Positions) == 0:
		return fmt.Errorf("%w: at least one position is required", ErrInvalid)
	case !a.Start.After(now):
		return fmt.Errorf("%w: start must be in the future", ErrInvalid)
	}
	switch a.Kind {
	case KindTraining:
		if a.Competition != nil {
			return fmt.Errorf("%w: trainings cannot carry competition requirements", ErrInvalid)
		}
	case KindCompetition:
		if a.Competition == nil {
			a.Competition = &Competition{}
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalid, a.Kind)
	}
	return nil
}

// Clone returns a deep copy so a workflow can mutate it and discard the result on failure.
func (a *Activity) Clone() *Activity {
	c := *a
	c.Positions = slices.Clone(a.Positions)
	c.Applicants = slices.Clone(a.Applicants)
	if a.Competition != nil {
		comp := *a.Competition
		c.Competition = &comp
	}
	return &c
}

// HasApplicant reports whether userID is on the applicant list.
func (a *Activity) HasApplicant(userID string) bool {
	return slices.Contains(a.Applicants, userID)
}

// SignUp appends userID to the applicants. Duplicate prevention is the caller's job.
func (a *Activity) SignUp(userID string) {
	a.Applicants = append(a.Applicants, userID)
}

// IsDepleted reports whether no open positions remain.
func (a *Activity) IsDepleted() bool {
	return len(a.Positions) < 1
}

// AcceptAndConsume removes the first open occurrence of position.
func (a *Activity) AcceptAndConsume(position Position) error {
	i := slices.Index(a.Positions, position)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPositionNotOpen, position)
	}
	a.Positions = slices.Delete(a.Positions, i, i+1)
	return nil
}

// RemoveApplicant removes one occurrence of userID and reports whether anything was removed.
func (a *Activity) RemoveApplicant(userID string) bool {
	i := slices.Index(a.Applicants, userID)
	if i < 0 {
		return false
	}
	a.Applicants = slices.Delete(a.Applicants, i, i+1)
	return true
}
