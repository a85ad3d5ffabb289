package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// GetTemplate resolves a shift template with its role requirements and
// station assignments, both in their stored order.
func (q *queries) GetTemplate(ctx context.Context, templateID, orgID string) (*model.ShiftTemplate, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, org_id, name, start_minute, end_minute, break_minutes, break_paid, active
		FROM shift_template
		WHERE id = $1 AND org_id = $2
	`, templateID, orgID)

	var t model.ShiftTemplate
	var startMinute, endMinute int
	if err := row.Scan(&t.ID, &t.OrgID, &t.Name, &startMinute, &endMinute,
		&t.BreakMinutes, &t.BreakPaid, &t.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.NotFoundError{Resource: "shift template", ID: templateID}
		}
		return nil, fmt.Errorf("failed to scan shift template: %w", err)
	}
	t.Window = timeutil.Window{Start: timeutil.TimeOfDay(startMinute), End: timeutil.TimeOfDay(endMinute)}

	rows, err := q.db.Query(ctx, `
		SELECT role_id, quantity, min_proficiency, preferred_proficiency, priority, is_flexible
		FROM template_role_requirement
		WHERE template_id = $1
		ORDER BY position
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query role requirements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r model.RoleRequirement
		if err := rows.Scan(&r.RoleID, &r.Quantity, &r.MinProficiency,
			&r.PreferredProficiency, &r.Priority, &r.IsFlexible); err != nil {
			return nil, fmt.Errorf("failed to scan role requirement: %w", err)
		}
		t.Requirements = append(t.Requirements, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role requirements: %w", err)
	}

	stationRows, err := q.db.Query(ctx, `
		SELECT station_id
		FROM template_station
		WHERE template_id = $1
		ORDER BY position
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query template stations: %w", err)
	}
	defer stationRows.Close()

	for stationRows.Next() {
		var stationID string
		if err := stationRows.Scan(&stationID); err != nil {
			return nil, fmt.Errorf("failed to scan template station: %w", err)
		}
		t.StationIDs = append(t.StationIDs, stationID)
	}
	if err := stationRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template stations: %w", err)
	}

	return &t, nil
}
