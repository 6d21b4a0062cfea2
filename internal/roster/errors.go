package roster

import (
	"errors"

	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/availability"
	"github.com/mauv0809/crewboard/internal/eligibility"
	"github.com/mauv0809/crewboard/internal/ledger"
)

// Caller-facing failures. The messages are returned to clients verbatim.
var (
	ErrAlreadyApplied       = errors.New("User already signed up for this activity!")
	ErrNotAvailable         = errors.New("User is not available for this activity!")
	ErrNotCompetitive       = errors.New("User is not competitive!")
	ErrGenderMismatch       = errors.New("User does not fulfill gender requirement!")
	ErrOrganisationMismatch = errors.New("User does not fulfill organisation requirement!")
	ErrActivityExpired      = errors.New("The new activity date is in the past!")
	ErrNotSignedUp          = errors.New("User is not signed up for this activity!")
	ErrNotOwner             = errors.New("Only the owner of the activity can do this!")
	ErrConflict             = errors.New("The activity was changed by someone else, please try again!")
	ErrNothingToChange      = errors.New("Provide a new start or a new location!")

	ErrNotFound        = activity.ErrNotFound
	ErrPositionNotOpen = activity.ErrPositionNotOpen
	ErrDuplicateMatch  = ledger.ErrDuplicateMatch
)

var eligibilityErrors = map[eligibility.Result]error{
	eligibility.AlreadyApplied:       ErrAlreadyApplied,
	eligibility.NotAvailable:         ErrNotAvailable,
	eligibility.NotCompetitive:       ErrNotCompetitive,
	eligibility.GenderMismatch:       ErrGenderMismatch,
	eligibility.OrganisationMismatch: ErrOrganisationMismatch,
}

// IsValidation reports whether err is an expected rejection of the caller's input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrAlreadyApplied, ErrNotAvailable, ErrNotCompetitive, ErrGenderMismatch,
		ErrOrganisationMismatch, ErrActivityExpired, ErrNothingToChange, activity.ErrInvalid, availability.ErrInvalidInterval,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err stems from the activity's current state or a concurrent change.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrPositionNotOpen) ||
		errors.Is(err, ErrDuplicateMatch) ||
		errors.Is(err, activity.ErrVersionConflict)
}

// IsNotFound reports whether err means the activity or the participant does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotSignedUp)
}
