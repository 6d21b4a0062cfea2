package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

var _ Directory = (*store)(nil)

// New creates a new member Directory.
func New(db *sql.DB) Directory {
	return &store{
		db: db,
	}
}

const selectMember = `SELECT id, name, organisation, slack_user_id, created_at, updated_at FROM members`

// UpsertMember inserts a member or updates the name and organisation of an existing one.
// An existing Slack link is kept when m.SlackUserID is nil.
func (s *store) UpsertMember(ctx context.Context, m *Member) error {
	return s.UpsertMembers(ctx, []*Member{m})
}

// UpsertMembers upserts all members in a single transaction.
func (s *store) UpsertMembers(ctx context.Context, members []*Member) error {
	if len(members) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO members (id, name, organisation, slack_user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			organisation = excluded.organisation,
			slack_user_id = COALESCE(excluded.slack_user_id, members.slack_user_id),
			updated_at = excluded.updated_at;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Truncate(time.Second)
	for _, m := range members {
		var slackID sql.NullString
		if m.SlackUserID != nil {
			slackID = sql.NullString{String: *m.SlackUserID, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, m.ID, m.Name, m.Organisation, slackID, now.Unix(), now.Unix()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert member %s: %w", m.ID, err)
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Upserted members", "count", len(members))
	return nil
}

func (s *store) GetMember(ctx context.Context, id string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := scanMember(s.db.QueryRowContext(ctx, selectMember+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

func (s *store) GetMemberBySlackID(ctx context.Context, slackUserID string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := scanMember(s.db.QueryRowContext(ctx, selectMember+" WHERE slack_user_id = ?", slackUserID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

func (s *store) GetAllMembers(ctx context.Context) ([]*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMembers(ctx, selectMember+" ORDER BY name ASC")
}

func (s *store) GetUnlinkedMembers(ctx context.Context) ([]*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMembers(ctx, selectMember+" WHERE slack_user_id IS NULL OR slack_user_id = '' ORDER BY name ASC")
}

func (s *store) LinkSlackUser(ctx context.Context, memberID, slackUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE members SET slack_user_id = ?, updated_at = ? WHERE id = ?",
		slackUserID, time.Now().UTC().Unix(), memberID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	log.Info("Linked member to Slack user", "memberID", memberID, "slackUserID", slackUserID)
	return nil
}

func (s *store) queryMembers(ctx context.Context, query string, args ...any) ([]*Member, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			log.Error("Failed to scan member row", "error", err)
			continue
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// scanMember is a helper function to scan a single member row.
func scanMember(scanner interface{ Scan(...any) error }) (*Member, error) {
	var (
		m                    Member
		organisation, slack  sql.NullString
		createdAt, updatedAt int64
	)
	if err := scanner.Scan(&m.ID, &m.Name, &organisation, &slack, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	m.Organisation = organisation.String
	if slack.Valid && slack.String != "" {
		id := slack.String
		m.SlackUserID = &id
	}
	m.CreatedAt = time.Unix(createdAt, 0).UTC()
	m.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &m, nil
}
