package postgres

import (
	"context"
	"fmt"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// InsertShift inserts a single shift. A violation of the per-worker overlap
// guard is returned as a typed OverlapViolationError.
func (q *queries) InsertShift(ctx context.Context, s *model.Shift) error {
	var employeeID, stationID, templateID *string
	if s.EmployeeID != "" {
		employeeID = &s.EmployeeID
	}
	if s.StationID != "" {
		stationID = &s.StationID
	}
	if s.TemplateID != "" {
		templateID = &s.TemplateID
	}

	_, err := q.db.Exec(ctx, `
		INSERT INTO shift (id, schedule_id, date, start_minute, end_minute, employee_id,
		                   role_id, station_id, template_id, status, break_minutes, break_paid, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, s.ID, s.ScheduleID, timeutil.NormalizeDate(s.Date), s.Window.Start.Minutes(), s.Window.End.Minutes(),
		employeeID, s.RoleID, stationID, templateID, string(s.Status), s.BreakMinutes, s.BreakPaid, s.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", translateShiftError(err, s.EmployeeID, s.Date, s.Window))
	}
	return nil
}

// ListShifts returns every shift of a schedule in deterministic order.
func (q *queries) ListShifts(ctx context.Context, scheduleID string) ([]model.Shift, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, schedule_id, date, start_minute, end_minute, employee_id,
		       role_id, station_id, template_id, status, break_minutes, break_paid, notes
		FROM shift
		WHERE schedule_id = $1
		ORDER BY date, start_minute, role_id, id
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// DeleteShiftsForSchedule removes all shifts belonging to a schedule,
// supporting full-replace regeneration.
func (q *queries) DeleteShiftsForSchedule(ctx context.Context, scheduleID string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM shift WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to delete shifts: %w", err)
	}
	return nil
}

// FindOverlappingShifts returns non-cancelled shifts for a worker on a date
// that overlap the queried window. The query optionally excludes one
// schedule and optionally restricts to published schedules.
func (q *queries) FindOverlappingShifts(ctx context.Context, query store.OverlapQuery) ([]model.Shift, error) {
	rows, err := q.db.Query(ctx, `
		SELECT s.id, s.schedule_id, s.date, s.start_minute, s.end_minute, s.employee_id,
		       s.role_id, s.station_id, s.template_id, s.status, s.break_minutes, s.break_paid, s.notes
		FROM shift s
		JOIN schedule sch ON sch.id = s.schedule_id
		WHERE s.employee_id = $1
		  AND s.date = $2
		  AND s.start_minute < $4
		  AND s.end_minute > $3
		  AND s.status <> 'cancelled'
		  AND ($5 = '' OR s.schedule_id::text <> $5)
		  AND (NOT $6 OR sch.status = 'published')
		ORDER BY s.start_minute, s.id
	`, query.EmployeeID, timeutil.NormalizeDate(query.Date),
		query.Window.Start.Minutes(), query.Window.End.Minutes(),
		query.ExcludeScheduleID, query.PublishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping shifts: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// shiftRows is satisfied by pgx.Rows; narrowed for scanShifts.
type shiftRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanShifts(rows shiftRows) ([]model.Shift, error) {
	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		var startMinute, endMinute int
		var employeeID, stationID, templateID *string
		var status string
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.Date, &startMinute, &endMinute, &employeeID,
			&s.RoleID, &stationID, &templateID, &status, &s.BreakMinutes, &s.BreakPaid, &s.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.Date = timeutil.NormalizeDate(s.Date)
		s.Window = timeutil.Window{Start: timeutil.TimeOfDay(startMinute), End: timeutil.TimeOfDay(endMinute)}
		s.Status = model.ShiftStatus(status)
		if employeeID != nil {
			s.EmployeeID = *employeeID
		}
		if stationID != nil {
			s.StationID = *stationID
		}
		if templateID != nil {
			s.TemplateID = *templateID
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return shifts, nil
}
