package ledger

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/crewboard/internal/activity"
)

// ErrDuplicateMatch is returned when a user is already matched to an activity.
var ErrDuplicateMatch = errors.New("User is already accepted for this activity!")

// store handles all database operations for the match ledger.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Match binds one user to one position on one activity.
type Match struct {
	ID         string            `json:"id"`
	ActivityID string            `json:"activity_id"`
	UserID     string            `json:"user_id"`
	Position   activity.Position `json:"position"`
	Status     activity.Status   `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
