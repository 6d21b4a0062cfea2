package club

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// ErrMemberNotFound is returned when no member has the given id.
var ErrMemberNotFound = errors.New("Member not found!")

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Member is a club member as known to the roster.
type Member struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Organisation string    `json:"organisation,omitempty"`
	SlackUserID  *string   `json:"slack_user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
