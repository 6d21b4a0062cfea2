package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/crewboard/internal/activity"
)

var _ Ledger = (*store)(nil)

// New creates a new match Ledger.
func New(db *sql.DB) Ledger {
	return &store{
		db: db,
	}
}

func (s *store) Exists(ctx context.Context, activityID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists(ctx, activityID, userID)
}

func (s *store) exists(ctx context.Context, activityID, userID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM matches WHERE activity_id = ? AND user_id = ?", activityID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check match for user %s on activity %s: %w", userID, activityID, err)
	}
	return count > 0, nil
}

func (s *store) RecordAcceptance(ctx context.Context, activityID, userID string, position activity.Position) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.exists(ctx, activityID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateMatch
	}

	m := &Match{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		UserID:     userID,
		Position:   position,
		Status:     activity.StatusAccepted,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO matches (id, activity_id, user_id, position, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ActivityID, m.UserID, string(m.Position), string(m.Status), m.CreatedAt.Unix(),
	)
	if err != nil {
		// Another connection may have inserted the pair in between.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateMatch
		}
		return nil, fmt.Errorf("failed to record match: %w", err)
	}
	log.Info("Recorded match", "activityID", activityID, "userID", userID, "position", position)
	return m, nil
}

func (s *store) FindAllAccepted(ctx context.Context, activityID string) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, `
		SELECT id, activity_id, user_id, position, status, created_at
		FROM matches
		WHERE activity_id = ? AND status = ?
		ORDER BY created_at ASC, id ASC`, activityID, string(activity.StatusAccepted))
}

func (s *store) FindByUser(ctx context.Context, userID string) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, `
		SELECT id, activity_id, user_id, position, status, created_at
		FROM matches
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID)
}

func (s *store) Remove(ctx context.Context, activityID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM matches WHERE activity_id = ? AND user_id = ?", activityID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove match for user %s on activity %s: %w", userID, activityID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		log.Info("Removed match", "activityID", activityID, "userID", userID)
	}
	return affected > 0, nil
}

func (s *store) query(ctx context.Context, query string, args ...any) ([]*Match, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var (
			m                Match
			position, status string
			createdAt        int64
		)
		if err := rows.Scan(&m.ID, &m.ActivityID, &m.UserID, &position, &status, &createdAt); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		m.Position = activity.Position(position)
		m.Status = activity.Status(status)
		m.CreatedAt = time.Unix(createdAt, 0).UTC()
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}
