package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

func TestTranslateError_ExclusionViolation(t *testing.T) {
	err := translateError(&pgconn.PgError{
		Code:           codeExclusionViolation,
		ConstraintName: shiftOverlapConstraint,
	})
	assert.True(t, model.IsOverlapViolation(err), "got %v", err)
}

func TestTranslateError_UniqueViolationOnGuard(t *testing.T) {
	err := translateError(&pgconn.PgError{
		Code:           codeUniqueViolation,
		ConstraintName: shiftOverlapConstraint,
	})
	assert.True(t, model.IsOverlapViolation(err), "got %v", err)
}

func TestTranslateError_OtherConstraintPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           codeExclusionViolation,
		ConstraintName: "some_other_constraint",
	}
	err := translateError(pgErr)
	assert.False(t, model.IsOverlapViolation(err))
	assert.ErrorIs(t, err, pgErr)
}

func TestTranslateError_WrappedPgError(t *testing.T) {
	wrapped := fmt.Errorf("insert failed: %w", &pgconn.PgError{
		Code:           codeExclusionViolation,
		ConstraintName: shiftOverlapConstraint,
	})
	assert.True(t, model.IsOverlapViolation(translateError(wrapped)))
}

func TestTranslateError_NilAndPlain(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("connection refused")
	assert.ErrorIs(t, translateError(plain), plain)
}

func TestTranslateShiftError_AttachesSlot(t *testing.T) {
	date, err := timeutil.ParseDate("2024-01-01")
	require.NoError(t, err)
	window := timeutil.Window{Start: timeutil.TimeOfDay(9 * 60), End: timeutil.TimeOfDay(17 * 60)}

	translated := translateShiftError(&pgconn.PgError{
		Code:           codeExclusionViolation,
		ConstraintName: shiftOverlapConstraint,
	}, "w1", date, window)

	var ov *model.OverlapViolationError
	require.True(t, errors.As(translated, &ov), "got %v", translated)
	assert.Equal(t, "w1", ov.EmployeeID)
	assert.Equal(t, "2024-01-01", timeutil.FormatDate(ov.Date))
	assert.Equal(t, "09:00-17:00", ov.Window.String())
	assert.Contains(t, ov.Error(), "already has an overlapping shift")
}
