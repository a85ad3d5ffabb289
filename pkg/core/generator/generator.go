package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// Store is the persistence surface the generator needs. During a real run
// this is the transaction-scoped querier, so every insert commits or rolls
// back with the rest of the call.
type Store interface {
	FindQualifiedActiveWorkers(ctx context.Context, roleID, orgID string) ([]model.WorkerRef, error)
	FindAvailability(ctx context.Context, employeeID string, date time.Time, dayOfWeek int) ([]model.WorkerAvailability, error)
	FindOverlappingShifts(ctx context.Context, q store.OverlapQuery) ([]model.Shift, error)
	InsertShift(ctx context.Context, shift *model.Shift) error
}

// DayMappingEntry restricts one template to specific ISO weekdays
// (Monday=1 through Sunday=7). Entry order drives processing order.
type DayMappingEntry struct {
	TemplateID string
	Days       []int
}

// Request carries everything a generation run needs. Templates are resolved
// beforehand by the caller; ids that failed to resolve arrive in
// MissingTemplateIDs and have already been warned about.
type Request struct {
	Schedule *model.Schedule

	// Templates in resolution order. Immutable during the run.
	Templates []*model.ShiftTemplate

	// DayMapping, when non-nil, switches to mapping mode: entries are
	// processed in order and a template only applies on its listed days.
	// Nil applies every template to every date in range.
	DayMapping []DayMappingEntry

	AllowPartialTime bool

	// Blackout dates (formatted with timeutil.FormatDate) are skipped with a
	// warning.
	Blackout map[string]bool

	MissingTemplateIDs []string
}

// Generate runs the shift assignment algorithm and returns the summary.
// Uncovered and partially covered slots are soft outcomes recorded in the
// summary; an error is returned only for persistence failures, which must
// abort the caller's transaction.
func Generate(ctx context.Context, st Store, logger *zap.Logger, req Request) (*model.GenerationSummary, error) {
	summary := &model.GenerationSummary{
		MissingTemplateIDs: req.MissingTemplateIDs,
	}
	for _, tmpl := range req.Templates {
		summary.ValidTemplateIDs = append(summary.ValidTemplateIDs, tmpl.ID)
	}

	sess := NewSession()
	dates := timeutil.DatesBetween(req.Schedule.StartDate, req.Schedule.EndDate)

	logger.Debug("Starting shift generation",
		zap.String("schedule_id", req.Schedule.ID),
		zap.Int("templates", len(req.Templates)),
		zap.Int("dates", len(dates)),
		zap.Bool("partial_time", req.AllowPartialTime))

	run := &runState{
		req:            req,
		sess:           sess,
		summary:        summary,
		logger:         logger,
		blackoutWarned: make(map[string]bool),
	}

	if req.DayMapping != nil {
		templatesByID := make(map[string]*model.ShiftTemplate, len(req.Templates))
		for _, tmpl := range req.Templates {
			templatesByID[tmpl.ID] = tmpl
		}
		for _, entry := range req.DayMapping {
			tmpl, ok := templatesByID[entry.TemplateID]
			if !ok {
				// Missing or inactive template: already recorded, skip.
				continue
			}
			daySet := make(map[int]bool, len(entry.Days))
			for _, d := range entry.Days {
				daySet[d] = true
			}
			if err := run.processTemplate(ctx, st, tmpl, dates, daySet); err != nil {
				return nil, err
			}
		}
	} else {
		for _, tmpl := range req.Templates {
			if err := run.processTemplate(ctx, st, tmpl, dates, nil); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Shift generation finished",
		zap.String("schedule_id", req.Schedule.ID),
		zap.Int("requested", summary.Requested),
		zap.Int("generated", summary.Generated),
		zap.Int("partial_coverage", summary.PartialCoverage),
		zap.Int("no_coverage", summary.NoCoverage),
		zap.Int("warnings", len(summary.Warnings)))

	return summary, nil
}

// runState bundles the per-call values threaded through the loop.
type runState struct {
	req            Request
	sess           *Session
	summary        *model.GenerationSummary
	logger         *zap.Logger
	blackoutWarned map[string]bool
}

// processTemplate iterates stations, role requirements and dates for one
// template. daySet nil means the template applies every day.
func (r *runState) processTemplate(ctx context.Context, st Store, tmpl *model.ShiftTemplate, dates []time.Time, daySet map[int]bool) error {
	stations := tmpl.StationIDs
	if len(stations) == 0 {
		stations = []string{""}
		r.summary.Warnf("template %q has no station assignments, creating shifts without a station", tmpl.Name)
	}

	for _, station := range stations {
		for _, requirement := range tmpl.Requirements {
			for _, date := range dates {
				if daySet != nil && !daySet[timeutil.ISOWeekday(date)] {
					continue
				}
				if r.req.Blackout[timeutil.FormatDate(date)] {
					if !r.blackoutWarned[timeutil.FormatDate(date)] {
						r.blackoutWarned[timeutil.FormatDate(date)] = true
						r.summary.Warnf("skipping %s: blackout date", timeutil.FormatDate(date))
					}
					continue
				}
				if err := r.fillSlot(ctx, st, tmpl, station, requirement, date); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// fillSlot assigns up to requirement.Quantity workers to one
// template/station/role/date combination.
func (r *runState) fillSlot(ctx context.Context, st Store, tmpl *model.ShiftTemplate, station string, requirement model.RoleRequirement, date time.Time) error {
	slot := tmpl.Window
	r.summary.Requested += requirement.Quantity

	candidates, stats, err := selectCandidates(ctx, st, r.sess,
		r.req.Schedule.OrgID, requirement.RoleID, date, slot, r.req.AllowPartialTime)
	if err != nil {
		return err
	}

	assigned := 0
	for _, cand := range candidates {
		if assigned >= requirement.Quantity {
			break
		}

		window := slot
		if r.req.AllowPartialTime && !cand.Availability.Contains(slot) {
			clipped, ok := slot.Intersect(cand.Availability)
			if !ok {
				continue
			}
			window = clipped
		}

		shift := &model.Shift{
			ID:           uuid.New().String(),
			ScheduleID:   r.req.Schedule.ID,
			Date:         date,
			Window:       window,
			EmployeeID:   cand.Worker.ID,
			RoleID:       requirement.RoleID,
			StationID:    station,
			TemplateID:   tmpl.ID,
			Status:       model.ShiftStatusScheduled,
			BreakMinutes: tmpl.BreakMinutes,
			BreakPaid:    tmpl.BreakPaid,
		}
		if err := st.InsertShift(ctx, shift); err != nil {
			// Any persistence failure aborts the whole call; the caller's
			// transaction rolls everything back.
			return fmt.Errorf("failed to persist shift for %s on %s: %w",
				cand.Worker.ID, timeutil.FormatDate(date), err)
		}
		r.sess.Track(cand.Worker.ID, date, window)
		r.summary.Generated++
		assigned++

		r.logger.Debug("Assigned shift",
			zap.String("employee_id", cand.Worker.ID),
			zap.String("date", timeutil.FormatDate(date)),
			zap.String("window", window.String()),
			zap.String("role_id", requirement.RoleID),
			zap.String("template_id", tmpl.ID),
			zap.Float64("coverage_percent", cand.CoveragePercent))
	}

	label := r.slotLabel(tmpl, station, requirement, date)
	switch {
	case assigned == 0:
		r.summary.NoCoverage++
		r.summary.Warnf("no coverage for %s: %s", label, stats.describe(requirement.RoleID))
	case assigned < requirement.Quantity:
		r.summary.PartialCoverage++
		r.summary.Warnf("partial coverage for %s: assigned %d of %d workers", label, assigned, requirement.Quantity)
	}
	return nil
}

func (r *runState) slotLabel(tmpl *model.ShiftTemplate, station string, requirement model.RoleRequirement, date time.Time) string {
	label := fmt.Sprintf("template %q role %s on %s %s", tmpl.Name, requirement.RoleID, timeutil.FormatDate(date), tmpl.Window)
	if station != "" {
		label += fmt.Sprintf(" (station %s)", station)
	}
	return label
}
