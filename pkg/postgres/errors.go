package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// Postgres error codes we translate into domain errors.
const (
	codeExclusionViolation = "23P01"
	codeUniqueViolation    = "23505"
)

// shiftOverlapConstraint is the exclusion constraint guarding against
// overlapping non-cancelled shifts per employee and date.
const shiftOverlapConstraint = "shift_no_employee_overlap"

// translateError maps a constraint violation from the shift overlap guard to
// the typed domain error. Other errors pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		(pgErr.Code == codeExclusionViolation || pgErr.Code == codeUniqueViolation) &&
		pgErr.ConstraintName == shiftOverlapConstraint {
		return &model.OverlapViolationError{}
	}
	return err
}

// translateShiftError is translateError with the offending shift's identity
// attached, used on insert paths where the slot is known.
func translateShiftError(err error, employeeID string, date time.Time, window timeutil.Window) error {
	if err == nil {
		return nil
	}
	translated := translateError(err)
	var ov *model.OverlapViolationError
	if errors.As(translated, &ov) {
		return &model.OverlapViolationError{
			EmployeeID: employeeID,
			Date:       date,
			Window:     window,
		}
	}
	return err
}
