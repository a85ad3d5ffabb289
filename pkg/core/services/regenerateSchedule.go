package services

import (
	"context"
	"fmt"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/internal/metrics"
	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
)

// RegenerateInput is the request for UpdateScheduleGeneration. Nil meta
// fields leave the schedule's metadata untouched.
type RegenerateInput struct {
	TemplateIDs      []string          `validate:"required,min=1,dive,required"`
	DayMapping       []DayMappingInput `validate:"omitempty,dive"`
	AllowPartialTime bool

	Name        *string
	Description *string
	StartDate   *string
	EndDate     *string

	BlackoutRules []*rrule.RRule
}

// UpdateScheduleGeneration regenerates a draft schedule with a new template
// set: full replace. Every existing shift is deleted, the version is bumped,
// and the assignment algorithm re-runs — no diffing, no preservation of
// prior assignments. Published schedules refuse regeneration; a new version
// must be created instead. The delete and the re-run share one transaction.
func UpdateScheduleGeneration(ctx context.Context, st store.Store, logger *zap.Logger, scheduleID string, input RegenerateInput) (*GenerateResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, model.Validationf("invalid regeneration input: %v", err)
	}

	logger.Debug("Regenerating schedule",
		zap.String("schedule_id", scheduleID),
		zap.Strings("template_ids", input.TemplateIDs))

	var (
		schedule *model.Schedule
		summary  *model.GenerationSummary
	)
	err := st.RunInTx(ctx, func(tx store.Querier) error {
		sched, err := tx.GetSchedule(ctx, scheduleID)
		if err != nil {
			return err
		}
		if sched.Status == model.ScheduleStatusPublished {
			return model.Validationf("schedule %s is published and cannot be regenerated; create a new version instead", scheduleID)
		}

		update, err := buildScheduleUpdate(input)
		if err != nil {
			return err
		}
		if update != (store.ScheduleUpdate{}) {
			if err := tx.UpdateScheduleMeta(ctx, scheduleID, update); err != nil {
				return fmt.Errorf("failed to update schedule metadata: %w", err)
			}
		}
		applyScheduleUpdate(sched, update)
		if sched.EndDate.Before(sched.StartDate) {
			return model.Validationf("end date %s precedes start date %s",
				sched.EndDate.Format("2006-01-02"), sched.StartDate.Format("2006-01-02"))
		}

		if err := tx.DeleteShiftsForSchedule(ctx, scheduleID); err != nil {
			return err
		}
		version, err := tx.IncrementScheduleVersion(ctx, scheduleID)
		if err != nil {
			return err
		}
		sched.Version = version

		summary, err = runGeneration(ctx, tx, logger, sched, generationParams{
			TemplateIDs:      input.TemplateIDs,
			DayMapping:       input.DayMapping,
			AllowPartialTime: input.AllowPartialTime,
			BlackoutRules:    input.BlackoutRules,
		})
		if err != nil {
			return err
		}
		schedule = sched
		return nil
	})
	if err != nil {
		metrics.IncGenerationRun("failed")
		return nil, err
	}

	metrics.IncGenerationRun("succeeded")
	metrics.AddShiftsGenerated(summary.Generated)
	metrics.AddUncoveredSlots(summary.NoCoverage)

	logger.Info("Schedule regenerated",
		zap.String("schedule_id", scheduleID),
		zap.Int("version", schedule.Version),
		zap.Int("generated", summary.Generated))

	return &GenerateResult{Schedule: schedule, Summary: summary}, nil
}

// buildScheduleUpdate converts the optional meta fields into the enumerated
// update struct the store accepts.
func buildScheduleUpdate(input RegenerateInput) (store.ScheduleUpdate, error) {
	var update store.ScheduleUpdate
	update.Name = input.Name
	update.Description = input.Description
	if input.StartDate != nil {
		start, err := parseDateField("start date", *input.StartDate)
		if err != nil {
			return store.ScheduleUpdate{}, err
		}
		update.StartDate = &start
	}
	if input.EndDate != nil {
		end, err := parseDateField("end date", *input.EndDate)
		if err != nil {
			return store.ScheduleUpdate{}, err
		}
		update.EndDate = &end
	}
	return update, nil
}

func applyScheduleUpdate(s *model.Schedule, update store.ScheduleUpdate) {
	if update.Name != nil {
		s.Name = *update.Name
	}
	if update.Description != nil {
		s.Description = *update.Description
	}
	if update.StartDate != nil {
		s.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		s.EndDate = *update.EndDate
	}
}
