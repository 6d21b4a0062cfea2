package activity

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when an activity does not exist.
	ErrNotFound = errors.New("Activity not found!")
	// ErrVersionConflict is returned by Save when the stored version moved on since Load.
	ErrVersionConflict = errors.New("activity was modified concurrently")
	// ErrPositionNotOpen is returned when no open slot of the requested position remains.
	ErrPositionNotOpen = errors.New("The position is not open for this activity!")
	// ErrInvalid is returned when an activity fails validation on creation.
	ErrInvalid = errors.New("invalid activity")
)

// Kind tags the activity variant.
type Kind string

const (
	KindTraining    Kind = "TRAINING"
	KindCompetition Kind = "COMPETITION"
)

// Position is a typed slot on a boat or a bank.
type Position string

const (
	PositionCoxswain  Position = "COX"
	PositionPort      Position = "PORT"
	PositionStarboard Position = "STARBOARD"
	PositionSculling  Position = "SCULLING"
	PositionCoach     Position = "COACH"
)

// Gender is declared by members and required by some competitions.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Status is shared by matches and the notifications emitted for them.
type Status string

const (
	StatusAccepted     Status = "ACCEPTED"
	StatusRejected     Status = "REJECTED"
	StatusWithdrawn    Status = "WITHDRAWN"
	StatusKicked       Status = "KICKED"
	StatusDeleted      Status = "DELETED"
	StatusChanges      Status = "CHANGES"
	StatusActivityFull Status = "ACTIVITY_FULL"
	StatusDefault      Status = "DEFAULT"
)

// Competition holds the constraints only a competition carries.
// A nil field means no constraint. Competitiveness is always required.
type Competition struct {
	Gender       *Gender `json:"gender,omitempty"`
	Organisation *string `json:"organisation,omitempty"`
}

// Activity is a training session or a competition with open positions and a waitlist of applicants.
// Competition is non-nil iff Kind is KindCompetition.
type Activity struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Name        string       `json:"name"`
	Kind        Kind         `json:"kind"`
	Start       time.Time    `json:"start"`
	Location    string       `json:"location,omitempty"`
	Positions   []Position   `json:"positions"`
	Applicants  []string     `json:"applicants"`
	Competition *Competition `json:"competition,omitempty"`
	Version     int64        `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// store handles activity persistence.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
