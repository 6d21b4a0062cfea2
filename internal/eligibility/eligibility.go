// Package eligibility decides whether a member may sign up for an activity.
package eligibility

import (
	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/availability"
)

// Result is the outcome of an eligibility check. Exactly one reason is reported.
type Result int

const (
	Eligible Result = iota
	AlreadyApplied
	NotAvailable
	NotCompetitive
	GenderMismatch
	OrganisationMismatch
)

func (r Result) String() string {
	switch r {
	case Eligible:
		return "ELIGIBLE"
	case AlreadyApplied:
		return "ALREADY_APPLIED"
	case NotAvailable:
		return "NOT_AVAILABLE"
	case NotCompetitive:
		return "NOT_COMPETITIVE"
	case GenderMismatch:
		return "GENDER_MISMATCH"
	case OrganisationMismatch:
		return "ORGANISATION_MISMATCH"
	default:
		return "UNKNOWN"
	}
}

// Request is what a member declares when signing up. The attributes are self-asserted.
type Request struct {
	UserID       string
	Availability []availability.Interval
	Gender       activity.Gender
	Organisation string
	Competitive  bool
}

// Evaluate checks the request against the activity. The order of the checks is part of the contract:
// applied, availability, then the competition rules (competitive, gender, organisation).
func Evaluate(a *activity.Activity, req Request) Result {
	if a.HasApplicant(req.UserID) {
		return AlreadyApplied
	}
	if !availability.CoversStart(req.Availability, a.Start) {
		return NotAvailable
	}

	switch a.Kind {
	case activity.KindCompetition:
		if !req.Competitive {
			return NotCompetitive
		}
		rules := a.Competition
		if rules == nil {
			return Eligible
		}
		if rules.Gender != nil && *rules.Gender != req.Gender {
			return GenderMismatch
		}
		if rules.Organisation != nil && *rules.Organisation != req.Organisation {
			return OrganisationMismatch
		}
	}
	return Eligible
}
