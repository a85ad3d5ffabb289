// Package services orchestrates the scheduling engine: it owns input
// validation, transaction boundaries, and the wiring between the store, the
// generator and the publication validator.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/internal/metrics"
	"github.com/kishan-gau/rosteriq/pkg/core/generator"
	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

var validate = validator.New()

// DayMappingInput maps one template to the ISO weekdays (Monday=1) it
// applies on.
type DayMappingInput struct {
	TemplateID string `validate:"required"`
	Days       []int  `validate:"required,min=1,dive,min=1,max=7"`
}

// GenerateInput is the request for AutoGenerateSchedule.
type GenerateInput struct {
	OrgID       string `validate:"required"`
	Name        string `validate:"required"`
	Description string

	// StartDate and EndDate are inclusive "2006-01-02" dates, end >= start.
	StartDate string `validate:"required"`
	EndDate   string `validate:"required"`

	TemplateIDs      []string          `validate:"required,min=1,dive,required"`
	DayMapping       []DayMappingInput `validate:"omitempty,dive"`
	AllowPartialTime bool

	// BlackoutRules are recurrence rules for organization-wide closed days;
	// matching dates are skipped during generation.
	BlackoutRules []*rrule.RRule
}

// GenerateResult pairs the created or updated schedule with the generation
// summary.
type GenerateResult struct {
	Schedule *model.Schedule
	Summary  *model.GenerationSummary
}

// AutoGenerateSchedule creates a draft schedule and fills it with shifts.
// The schedule row and every shift insert share one transaction: a
// persistence failure mid-run leaves no schedule behind. Unfilled slots are
// a soft outcome; the call still succeeds and reports them in the summary.
func AutoGenerateSchedule(ctx context.Context, st store.Store, logger *zap.Logger, input GenerateInput) (*GenerateResult, error) {
	startDate, endDate, err := validateGenerateInput(input)
	if err != nil {
		return nil, err
	}

	schedule := &model.Schedule{
		ID:          uuid.New().String(),
		OrgID:       input.OrgID,
		Name:        input.Name,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      model.ScheduleStatusDraft,
		Version:     1,
	}

	logger.Debug("Auto-generating schedule",
		zap.String("schedule_id", schedule.ID),
		zap.String("org_id", input.OrgID),
		zap.String("start", input.StartDate),
		zap.String("end", input.EndDate),
		zap.Strings("template_ids", input.TemplateIDs))

	var summary *model.GenerationSummary
	err = st.RunInTx(ctx, func(tx store.Querier) error {
		if err := tx.CreateSchedule(ctx, schedule); err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}

		summary, err = runGeneration(ctx, tx, logger, schedule, generationParams{
			TemplateIDs:      input.TemplateIDs,
			DayMapping:       input.DayMapping,
			AllowPartialTime: input.AllowPartialTime,
			BlackoutRules:    input.BlackoutRules,
		})
		return err
	})
	if err != nil {
		metrics.IncGenerationRun("failed")
		return nil, err
	}

	metrics.IncGenerationRun("succeeded")
	metrics.AddShiftsGenerated(summary.Generated)
	metrics.AddUncoveredSlots(summary.NoCoverage)

	logger.Info("Schedule generated",
		zap.String("schedule_id", schedule.ID),
		zap.Int("generated", summary.Generated),
		zap.Int("no_coverage", summary.NoCoverage))

	return &GenerateResult{Schedule: schedule, Summary: summary}, nil
}

// generationParams is the slice of input shared by initial generation and
// regeneration.
type generationParams struct {
	TemplateIDs      []string
	DayMapping       []DayMappingInput
	AllowPartialTime bool
	BlackoutRules    []*rrule.RRule
}

// runGeneration resolves templates and runs the assignment algorithm inside
// the caller's transaction.
func runGeneration(ctx context.Context, tx store.Querier, logger *zap.Logger, schedule *model.Schedule, params generationParams) (*model.GenerationSummary, error) {
	templates, missingIDs, preWarnings, err := resolveTemplates(ctx, tx, logger, params.TemplateIDs, schedule.OrgID)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, model.Validationf("none of the requested shift templates could be resolved: %v", params.TemplateIDs)
	}

	summary, err := generator.Generate(ctx, tx, logger, generator.Request{
		Schedule:           schedule,
		Templates:          templates,
		DayMapping:         toDayMapping(params.DayMapping),
		AllowPartialTime:   params.AllowPartialTime,
		Blackout:           expandBlackoutDates(params.BlackoutRules, schedule.StartDate, schedule.EndDate),
		MissingTemplateIDs: missingIDs,
	})
	if err != nil {
		return nil, err
	}
	summary.Warnings = append(preWarnings, summary.Warnings...)
	return summary, nil
}

// resolveTemplates loads each requested template. Ids that do not resolve,
// and inactive templates, are soft-skipped with a warning; only a storage
// failure is fatal.
func resolveTemplates(ctx context.Context, tx store.Querier, logger *zap.Logger, templateIDs []string, orgID string) ([]*model.ShiftTemplate, []string, []string, error) {
	var (
		templates  []*model.ShiftTemplate
		missingIDs []string
		warnings   []string
	)
	for _, id := range templateIDs {
		tmpl, err := tx.GetTemplate(ctx, id, orgID)
		if err != nil {
			if model.IsNotFound(err) {
				missingIDs = append(missingIDs, id)
				warnings = append(warnings, fmt.Sprintf("template %s not found, skipping", id))
				logger.Warn("Requested template not found", zap.String("template_id", id))
				continue
			}
			return nil, nil, nil, fmt.Errorf("failed to resolve template %s: %w", id, err)
		}
		if !tmpl.Active {
			missingIDs = append(missingIDs, id)
			warnings = append(warnings, fmt.Sprintf("template %q (%s) is inactive, skipping", tmpl.Name, id))
			continue
		}
		templates = append(templates, tmpl)
	}
	return templates, missingIDs, warnings, nil
}

// validateGenerateInput checks the struct tags and the date ordering,
// returning the parsed range.
func validateGenerateInput(input GenerateInput) (time.Time, time.Time, error) {
	if err := validate.Struct(input); err != nil {
		return time.Time{}, time.Time{}, model.Validationf("invalid generation input: %v", err)
	}
	return parseDateRange(input.StartDate, input.EndDate)
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := timeutil.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, model.Validationf("invalid start date: %v", err)
	}
	endDate, err := timeutil.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, model.Validationf("invalid end date: %v", err)
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, model.Validationf("end date %s precedes start date %s", end, start)
	}
	return startDate, endDate, nil
}
