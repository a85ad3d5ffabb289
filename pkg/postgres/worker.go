package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// FindQualifiedActiveWorkers returns workers holding an active assignment of
// the given role who are active and schedulable, ordered by display name.
func (q *queries) FindQualifiedActiveWorkers(ctx context.Context, roleID, orgID string) ([]model.WorkerRef, error) {
	rows, err := q.db.Query(ctx, `
		SELECT w.id, w.first_name, w.last_name, w.display_name
		FROM worker w
		JOIN worker_role wr ON wr.employee_id = w.id
		WHERE wr.role_id = $1
		  AND wr.active
		  AND w.org_id = $2
		  AND w.active
		  AND w.schedulable
		ORDER BY w.display_name, w.first_name, w.last_name
	`, roleID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualified workers: %w", err)
	}
	defer rows.Close()

	var workers []model.WorkerRef
	for rows.Next() {
		var w model.WorkerRef
		if err := rows.Scan(&w.ID, &w.FirstName, &w.LastName, &w.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}

	return workers, nil
}

// GetWorker retrieves a single worker by employee id.
func (q *queries) GetWorker(ctx context.Context, employeeID string) (*model.WorkerRef, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, display_name
		FROM worker
		WHERE id = $1
	`, employeeID)

	var w model.WorkerRef
	if err := row.Scan(&w.ID, &w.FirstName, &w.LastName, &w.DisplayName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.NotFoundError{Resource: "worker", ID: employeeID}
		}
		return nil, fmt.Errorf("failed to scan worker: %w", err)
	}
	return &w, nil
}

// FindAvailability returns every availability record for a worker that could
// apply to the given date: recurring records on the matching day of week and
// date-specific records on the exact date. Effective-range filtering for
// recurring records happens in the caller via CoversDate.
func (q *queries) FindAvailability(ctx context.Context, employeeID string, date time.Time, dayOfWeek int) ([]model.WorkerAvailability, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, employee_id, availability_type, day_of_week, specific_date,
		       effective_from, effective_to, start_minute, end_minute, priority
		FROM worker_availability
		WHERE employee_id = $1
		  AND (day_of_week = $3 OR specific_date = $2)
	`, employeeID, timeutil.NormalizeDate(date), dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var records []model.WorkerAvailability
	for rows.Next() {
		var a model.WorkerAvailability
		var availType, priority string
		var dayOfWeek *int
		var startMinute, endMinute int
		if err := rows.Scan(&a.ID, &a.EmployeeID, &availType, &dayOfWeek, &a.SpecificDate,
			&a.EffectiveFrom, &a.EffectiveTo, &startMinute, &endMinute, &priority); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		a.Type = model.AvailabilityType(availType)
		a.Priority = model.AvailabilityPriority(priority)
		if dayOfWeek != nil {
			a.DayOfWeek = *dayOfWeek
		}
		a.Window = timeutil.Window{Start: timeutil.TimeOfDay(startMinute), End: timeutil.TimeOfDay(endMinute)}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}

	return records, nil
}
