// Package model defines the domain types shared across the scheduling engine.
package model

import (
	"fmt"
	"time"

	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// ScheduleStatus is the lifecycle state of a schedule.
type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusPublished ScheduleStatus = "published"
)

// ShiftStatus is the lifecycle state of a single shift.
type ShiftStatus string

const (
	ShiftStatusScheduled  ShiftStatus = "scheduled"
	ShiftStatusConfirmed  ShiftStatus = "confirmed"
	ShiftStatusInProgress ShiftStatus = "in_progress"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusCancelled  ShiftStatus = "cancelled"
	ShiftStatusNoShow     ShiftStatus = "no_show"
)

// AvailabilityType distinguishes recurring weekly availability, a one-off
// availability on a specific date, and a hard unavailability block.
type AvailabilityType string

const (
	AvailabilityRecurring   AvailabilityType = "recurring"
	AvailabilityOneTime     AvailabilityType = "one_time"
	AvailabilityUnavailable AvailabilityType = "unavailable"
)

// AvailabilityPriority is the worker-stated strength of an availability record.
type AvailabilityPriority string

const (
	PriorityRequired    AvailabilityPriority = "required"
	PriorityPreferred   AvailabilityPriority = "preferred"
	PriorityAvailable   AvailabilityPriority = "available"
	PriorityUnavailable AvailabilityPriority = "unavailable"
)

// Schedule is a dated roster owned by one organization. A schedule owns its
// shifts: regeneration deletes and recreates them wholesale.
type Schedule struct {
	ID          string
	OrgID       string
	Name        string
	Description string
	StartDate   time.Time // inclusive, midnight UTC
	EndDate     time.Time // inclusive, midnight UTC
	Status      ScheduleStatus
	Version     int
	PublishedAt *time.Time
	PublishedBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Shift is a concrete assignment slot on a schedule. EmployeeID is empty
// until a worker is assigned; StationID is empty for station-less templates.
type Shift struct {
	ID           string
	ScheduleID   string
	Date         time.Time
	Window       timeutil.Window
	EmployeeID   string
	RoleID       string
	StationID    string
	TemplateID   string
	Status       ShiftStatus
	BreakMinutes int
	BreakPaid    bool
	Notes        string
}

// RoleRequirement is one staffing line of a shift template: how many workers
// of a role are needed per template/station/date combination.
type RoleRequirement struct {
	RoleID               string
	Quantity             int
	MinProficiency       int
	PreferredProficiency int
	Priority             int
	IsFlexible           bool
}

// ShiftTemplate is a reusable staffing need: a time window plus per-role
// quantities and the stations it applies to. Immutable during a generation
// run.
type ShiftTemplate struct {
	ID           string
	OrgID        string
	Name         string
	Window       timeutil.Window
	BreakMinutes int
	BreakPaid    bool
	Requirements []RoleRequirement
	StationIDs   []string
	Active       bool
}

// WorkerRef is the projection of a worker record the engine needs: identity
// and display naming. Role membership and schedulability are filtered at the
// query.
type WorkerRef struct {
	ID          string
	FirstName   string
	LastName    string
	DisplayName string
}

// Name returns the worker's display name, falling back to "First Last".
func (w WorkerRef) Name() string {
	if w.DisplayName != "" {
		return w.DisplayName
	}
	return fmt.Sprintf("%s %s", w.FirstName, w.LastName)
}

// WorkerAvailability is one stated availability (or unavailability) window.
// Recurring records carry DayOfWeek (ISO, Monday=1) and an optional effective
// date range; one_time and unavailable records carry SpecificDate.
type WorkerAvailability struct {
	ID            string
	EmployeeID    string
	Type          AvailabilityType
	DayOfWeek     int
	SpecificDate  *time.Time
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	Window        timeutil.Window
	Priority      AvailabilityPriority
}

// CoversDate reports whether this record applies to the given date. It does
// not consider the time window, only the calendar.
func (a WorkerAvailability) CoversDate(date time.Time, dayOfWeek int) bool {
	switch a.Type {
	case AvailabilityRecurring:
		if a.DayOfWeek != dayOfWeek {
			return false
		}
		if a.EffectiveFrom != nil && date.Before(timeutil.NormalizeDate(*a.EffectiveFrom)) {
			return false
		}
		if a.EffectiveTo != nil && date.After(timeutil.NormalizeDate(*a.EffectiveTo)) {
			return false
		}
		return true
	case AvailabilityOneTime, AvailabilityUnavailable:
		return a.SpecificDate != nil && timeutil.SameDate(*a.SpecificDate, date)
	default:
		return false
	}
}

// Candidate is a worker considered for one slot, carrying the availability
// window that matched and, in partial-coverage mode, how much of the slot it
// covers.
type Candidate struct {
	Worker          WorkerRef
	Availability    timeutil.Window
	CoveragePercent float64
}
