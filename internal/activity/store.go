package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var _ Store = (*store)(nil)

// New creates a new activity Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

const selectActivity = `
	SELECT id, owner_id, name, kind, start_time, location, positions_blob, applicants_blob,
		required_gender, required_organisation, version, created_at, updated_at
	FROM activities`

// Create inserts a new activity at version 1.
func (s *store) Create(ctx context.Context, a *Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positionsBlob, applicantsBlob, err := encodeLists(a)
	if err != nil {
		return err
	}
	gender, organisation := competitionColumns(a)

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO activities (id, owner_id, name, kind, start_time, start_unix, location, positions_blob, applicants_blob,
			required_gender, required_organisation, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		a.ID, a.OwnerID, a.Name, string(a.Kind), a.Start.Format(time.RFC3339), a.Start.Unix(), a.Location,
		positionsBlob, applicantsBlob, gender, organisation, now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	a.Version = 1
	a.CreatedAt = now
	a.UpdatedAt = now
	log.Info("Created activity", "activityID", a.ID, "kind", a.Kind, "positions", len(a.Positions))
	return nil
}

// Load retrieves an activity by ID.
func (s *store) Load(ctx context.Context, id string) (*Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectActivity+` WHERE id = ?`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load activity %s: %w", id, err)
	}
	return a, nil
}

// Save writes back an activity if nobody else saved it since it was loaded,
// and bumps a.Version on success.
func (s *store) Save(ctx context.Context, a *Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positionsBlob, applicantsBlob, err := encodeLists(a)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE activities
		SET start_time = ?, start_unix = ?, location = ?, positions_blob = ?, applicants_blob = ?,
			version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		a.Start.Format(time.RFC3339), a.Start.Unix(), a.Location, positionsBlob, applicantsBlob, now.Unix(), a.ID, a.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", a.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", a.ID, err)
	}
	if affected == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM activities WHERE id = ?`, a.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		log.Warn("Activity version conflict", "activityID", a.ID, "version", a.Version)
		return ErrVersionConflict
	}
	a.Version++
	a.UpdatedAt = now
	log.Debug("Saved activity", "activityID", a.ID, "version", a.Version)
	return nil
}

// List returns every activity ordered by start instant. start_time keeps the creator's offset,
// so it cannot be sorted as text.
func (s *store) List(ctx context.Context) ([]*Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectActivity+` ORDER BY start_unix ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			log.Error("Failed to scan activity row", "error", err)
			continue
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// scanActivity is a helper function to scan a single activity row.
func scanActivity(scanner interface{ Scan(...any) error }) (*Activity, error) {
	var (
		a                    Activity
		kind, start          string
		location             sql.NullString
		positionsBlob        []byte
		applicantsBlob       []byte
		gender, organisation sql.NullString
		createdAt, updatedAt int64
	)
	err := scanner.Scan(
		&a.ID, &a.OwnerID, &a.Name, &kind, &start, &location, &positionsBlob, &applicantsBlob,
		&gender, &organisation, &a.Version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Kind = Kind(kind)
	a.Location = location.String
	a.CreatedAt = time.Unix(createdAt, 0).UTC()
	a.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	if a.Start, err = time.Parse(time.RFC3339, start); err != nil {
		return nil, fmt.Errorf("invalid start_time %q: %w", start, err)
	}
	if len(positionsBlob) > 0 {
		if err := msgpack.Unmarshal(positionsBlob, &a.Positions); err != nil {
			return nil, fmt.Errorf("failed to decode positions: %w", err)
		}
	}
	if len(applicantsBlob) > 0 {
		if err := msgpack.Unmarshal(applicantsBlob, &a.Applicants); err != nil {
			return nil, fmt.Errorf("failed to decode applicants: %w", err)
		}
	}
	if a.Positions == nil {
		a.Positions = []Position{}
	}
	if a.Applicants == nil {
		a.Applicants = []string{}
	}

	if a.Kind == KindCompetition {
		a.Competition = &Competition{}
		if gender.Valid {
			g := Gender(gender.String)
			a.Competition.Gender = &g
		}
		if organisation.Valid {
			org := organisation.String
			a.Competition.Organisation = &org
		}
	}
	return &a, nil
}

func encodeLists(a *Activity) ([]byte, []byte, error) {
	positions, err := msgpack.Marshal(a.Positions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode positions: %w", err)
	}
	applicants, err := msgpack.Marshal(a.Applicants)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode applicants: %w", err)
	}
	return positions, applicants, nil
}

func competitionColumns(a *Activity) (gender, organisation sql.NullString) {
	if a.Competition == nil {
		return
	}
	if a.Competition.Gender != nil {
		gender = sql.NullString{String: string(*a.Competition.Gender), Valid: true}
	}
	if a.Competition.Organisation != nil {
		organisation = sql.NullString{String: *a.Competition.Organisation, Valid: true}
	}
	return
}
