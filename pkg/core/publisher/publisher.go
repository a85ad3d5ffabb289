// Package publisher implements the strict publication gate: a draft schedule
// may only be promoted when none of its shifts overlaps, per worker and
// date, with shifts on other already-published schedules.
package publisher

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// Store is the persistence surface the validator needs.
type Store interface {
	GetSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error)
	ListShifts(ctx context.Context, scheduleID string) ([]model.Shift, error)
	FindOverlappingShifts(ctx context.Context, q store.OverlapQuery) ([]model.Shift, error)
	GetWorker(ctx context.Context, employeeID string) (*model.WorkerRef, error)
}

// Validate checks every non-cancelled shift of the schedule against shifts
// on other published schedules for the same worker and date. The report
// carries one conflict per affected shift; an empty report approves
// publication. Generation already guarantees the schedule's own shifts do
// not overlap each other, so only cross-schedule conflicts are checked.
func Validate(ctx context.Context, st Store, logger *zap.Logger, scheduleID string) (*model.ConflictReport, error) {
	report := &model.ConflictReport{ScheduleID: scheduleID}

	shifts, err := st.ListShifts(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	logger.Debug("Validating schedule for publication",
		zap.String("schedule_id", scheduleID),
		zap.Int("shifts", len(shifts)))

	scheduleNames := make(map[string]string)
	workerNames := make(map[string]string)

	for _, shift := range shifts {
		if shift.Status == model.ShiftStatusCancelled || shift.EmployeeID == "" {
			continue
		}

		overlaps, err := st.FindOverlappingShifts(ctx, store.OverlapQuery{
			EmployeeID:        shift.EmployeeID,
			Date:              shift.Date,
			Window:            shift.Window,
			ExcludeScheduleID: scheduleID,
			PublishedOnly:     true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query published overlaps for shift %s: %w", shift.ID, err)
		}
		if len(overlaps) == 0 {
			continue
		}

		conflict := model.ShiftConflict{
			ShiftID:    shift.ID,
			EmployeeID: shift.EmployeeID,
			Date:       shift.Date,
			Window:     shift.Window,
		}
		if name, err := lookupWorkerName(ctx, st, workerNames, shift.EmployeeID); err == nil {
			conflict.EmployeeName = name
		}

		for _, other := range overlaps {
			kind := timeutil.ClassifyOverlap(shift.Window, other.Window)
			scheduleName, err := lookupScheduleName(ctx, st, scheduleNames, other.ScheduleID)
			if err != nil {
				return nil, err
			}
			conflict.ConflictsWith = append(conflict.ConflictsWith, model.ConflictingShift{
				ShiftID:      other.ID,
				ScheduleID:   other.ScheduleID,
				ScheduleName: scheduleName,
				Window:       other.Window,
				Overlap:      kind,
			})
			conflict.Suggestions = append(conflict.Suggestions, suggestion(kind, shift, other))
		}

		report.Conflicts = append(report.Conflicts, conflict)
	}

	logger.Debug("Publication validation complete",
		zap.String("schedule_id", scheduleID),
		zap.Int("conflicts", len(report.Conflicts)))

	return report, nil
}

func lookupScheduleName(ctx context.Context, st Store, cache map[string]string, scheduleID string) (string, error) {
	if name, ok := cache[scheduleID]; ok {
		return name, nil
	}
	sched, err := st.GetSchedule(ctx, scheduleID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve conflicting schedule %s: %w", scheduleID, err)
	}
	cache[scheduleID] = sched.Name
	return sched.Name, nil
}

func lookupWorkerName(ctx context.Context, st Store, cache map[string]string, employeeID string) (string, error) {
	if name, ok := cache[employeeID]; ok {
		return name, nil
	}
	worker, err := st.GetWorker(ctx, employeeID)
	if err != nil {
		return "", err
	}
	cache[employeeID] = worker.Name()
	return worker.Name(), nil
}

// suggestion proposes a remediation for one conflicting pair, keyed off how
// the published shift overlaps the draft one.
func suggestion(kind timeutil.OverlapKind, shift, other model.Shift) string {
	date := timeutil.FormatDate(shift.Date)
	switch kind {
	case timeutil.OverlapComplete, timeutil.OverlapContainedBy:
		return fmt.Sprintf("reassign the %s shift on %s to another worker or cancel the published shift %s", shift.Window, date, other.ID)
	case timeutil.OverlapPartialStart:
		return fmt.Sprintf("move the shift start on %s to %s or later", date, other.Window.End)
	case timeutil.OverlapPartialEnd:
		return fmt.Sprintf("move the shift end on %s to %s or earlier", date, other.Window.Start)
	default:
		return fmt.Sprintf("review the %s shift on %s against published shift %s", shift.Window, date, other.ID)
	}
}
