package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// CreateSchedule inserts a new schedule record.
func (q *queries) CreateSchedule(ctx context.Context, s *model.Schedule) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO schedule (id, org_id, name, description, start_date, end_date, status, version, published_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, s.ID, s.OrgID, s.Name, s.Description, s.StartDate, s.EndDate, string(s.Status), s.Version, s.PublishedBy)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// GetSchedule retrieves a schedule by id.
func (q *queries) GetSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, org_id, name, description, start_date, end_date, status, version, published_at, published_by, created_at, updated_at
		FROM schedule
		WHERE id = $1
	`, scheduleID)

	var s model.Schedule
	var status string
	var publishedAt *time.Time
	if err := row.Scan(&s.ID, &s.OrgID, &s.Name, &s.Description, &s.StartDate, &s.EndDate,
		&status, &s.Version, &publishedAt, &s.PublishedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.NotFoundError{Resource: "schedule", ID: scheduleID}
		}
		return nil, fmt.Errorf("failed to scan schedule: %w", err)
	}
	s.Status = model.ScheduleStatus(status)
	s.PublishedAt = publishedAt
	s.StartDate = timeutil.NormalizeDate(s.StartDate)
	s.EndDate = timeutil.NormalizeDate(s.EndDate)
	return &s, nil
}

// UpdateScheduleMeta applies the non-nil fields of update to a schedule.
func (q *queries) UpdateScheduleMeta(ctx context.Context, scheduleID string, update store.ScheduleUpdate) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE schedule SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			start_date = COALESCE($4, start_date),
			end_date = COALESCE($5, end_date),
			updated_at = NOW()
		WHERE id = $1
	`, scheduleID, update.Name, update.Description, update.StartDate, update.EndDate)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.NotFoundError{Resource: "schedule", ID: scheduleID}
	}
	return nil
}

// IncrementScheduleVersion bumps the schedule version and returns the new value.
func (q *queries) IncrementScheduleVersion(ctx context.Context, scheduleID string) (int, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE schedule SET version = version + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING version
	`, scheduleID)

	var version int
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &model.NotFoundError{Resource: "schedule", ID: scheduleID}
		}
		return 0, fmt.Errorf("failed to increment schedule version: %w", err)
	}
	return version, nil
}

// SetScheduleStatus transitions a schedule's status. Publishing stamps
// published_at and published_by; any other transition clears them.
func (q *queries) SetScheduleStatus(ctx context.Context, scheduleID string, status model.ScheduleStatus, actorID string) error {
	var tag pgconn.CommandTag
	var err error
	if status == model.ScheduleStatusPublished {
		tag, err = q.db.Exec(ctx, `
			UPDATE schedule SET status = $2, published_at = NOW(), published_by = $3, updated_at = NOW()
			WHERE id = $1
		`, scheduleID, string(status), actorID)
	} else {
		tag, err = q.db.Exec(ctx, `
			UPDATE schedule SET status = $2, published_at = NULL, published_by = '', updated_at = NOW()
			WHERE id = $1
		`, scheduleID, string(status))
	}
	if err != nil {
		return fmt.Errorf("failed to set schedule status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.NotFoundError{Resource: "schedule", ID: scheduleID}
	}
	return nil
}
