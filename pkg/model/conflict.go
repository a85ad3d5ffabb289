package model

import (
	"time"

	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// ConflictingShift describes one already-published shift that overlaps a
// shift on the schedule being validated.
type ConflictingShift struct {
	ShiftID      string
	ScheduleID   string
	ScheduleName string
	Window       timeutil.Window
	Overlap      timeutil.OverlapKind
}

// ShiftConflict aggregates every published-schedule overlap found for one
// shift of the target schedule. The report carries one entry per affected
// shift, not one per overlapping pair.
type ShiftConflict struct {
	ShiftID       string
	EmployeeID    string
	EmployeeName  string
	Date          time.Time
	Window        timeutil.Window
	ConflictsWith []ConflictingShift
	Suggestions   []string
}

// ConflictReport is the result of a publication validation pass.
type ConflictReport struct {
	ScheduleID string
	Conflicts  []ShiftConflict
}

// IsValid reports whether the schedule may be published.
func (r *ConflictReport) IsValid() bool {
	return len(r.Conflicts) == 0
}
