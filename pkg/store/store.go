// Package store defines the persistence interfaces consumed by the
// scheduling engine. The postgres package provides the production
// implementation; tests substitute in-memory mocks.
package store

import (
	"context"
	"time"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// ScheduleUpdate enumerates the schedule fields a caller may change. Nil
// fields are left untouched.
type ScheduleUpdate struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// OverlapQuery describes a search for shifts that overlap a worker's slot.
type OverlapQuery struct {
	EmployeeID string
	Date       time.Time
	Window     timeutil.Window

	// ExcludeScheduleID skips shifts belonging to this schedule.
	ExcludeScheduleID string

	// PublishedOnly restricts the search to shifts on published schedules.
	PublishedOnly bool
}

// Querier is the full set of read/write operations the engine performs.
// Cancelled shifts never count as overlaps anywhere in this interface.
type Querier interface {
	// Schedules
	CreateSchedule(ctx context.Context, s *model.Schedule) error
	GetSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error)
	UpdateScheduleMeta(ctx context.Context, scheduleID string, update ScheduleUpdate) error
	IncrementScheduleVersion(ctx context.Context, scheduleID string) (int, error)
	// SetScheduleStatus transitions a schedule's status, stamping
	// published_at/published_by when the new status is published.
	SetScheduleStatus(ctx context.Context, scheduleID string, status model.ScheduleStatus, actorID string) error

	// Templates
	GetTemplate(ctx context.Context, templateID, orgID string) (*model.ShiftTemplate, error)

	// Workers
	FindQualifiedActiveWorkers(ctx context.Context, roleID, orgID string) ([]model.WorkerRef, error)
	GetWorker(ctx context.Context, employeeID string) (*model.WorkerRef, error)
	FindAvailability(ctx context.Context, employeeID string, date time.Time, dayOfWeek int) ([]model.WorkerAvailability, error)

	// Shifts
	InsertShift(ctx context.Context, shift *model.Shift) error
	ListShifts(ctx context.Context, scheduleID string) ([]model.Shift, error)
	DeleteShiftsForSchedule(ctx context.Context, scheduleID string) error
	FindOverlappingShifts(ctx context.Context, q OverlapQuery) ([]model.Shift, error)
}

// Store is a Querier that can also run work inside a single database
// transaction. The Querier passed to fn routes every operation through that
// transaction; fn returning an error rolls the whole transaction back.
type Store interface {
	Querier
	RunInTx(ctx context.Context, fn func(Querier) error) error
}
