package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// ValidationError indicates malformed input: bad date ordering, missing
// required ids, and similar. The call aborts before any mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// ConflictError is returned when publication is refused. It carries the full
// structured report so callers can present actionable diagnostics.
type ConflictError struct {
	Report *ConflictReport
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule %s has %d shift conflicts with published schedules",
		e.Report.ScheduleID, len(e.Report.Conflicts))
}

// IsConflict extracts a ConflictError from err if present.
func IsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// OverlapViolationError is the typed translation of the database-level
// per-worker overlap guard firing. It is the last line of defense against
// races between concurrent generation calls touching the same worker.
type OverlapViolationError struct {
	EmployeeID string
	Date       time.Time
	Window     timeutil.Window
}

func (e *OverlapViolationError) Error() string {
	return fmt.Sprintf("employee %s already has an overlapping shift on %s (%s)",
		e.EmployeeID, timeutil.FormatDate(e.Date), e.Window)
}

// IsOverlapViolation reports whether err is an OverlapViolationError.
func IsOverlapViolation(err error) bool {
	var ov *OverlapViolationError
	return errors.As(err, &ov)
}
