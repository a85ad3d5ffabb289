package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/internal/metrics"
	"github.com/kishan-gau/rosteriq/pkg/core/publisher"
	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
)

// PublishSchedule promotes a draft schedule to published. The conflict check
// and the status transition share one transaction, so a rejection never
// partially applies: on a non-empty conflict report the schedule stays draft
// and the report comes back as a ConflictError. Publishing an already
// published schedule is a no-op returning the schedule unchanged.
func PublishSchedule(ctx context.Context, st store.Store, logger *zap.Logger, scheduleID, actorID string) (*model.Schedule, error) {
	if actorID == "" {
		return nil, model.Validationf("actor id is required to publish a schedule")
	}

	logger.Debug("Publishing schedule",
		zap.String("schedule_id", scheduleID),
		zap.String("actor_id", actorID))

	var published *model.Schedule
	err := st.RunInTx(ctx, func(tx store.Querier) error {
		sched, err := tx.GetSchedule(ctx, scheduleID)
		if err != nil {
			return err
		}
		if sched.Status == model.ScheduleStatusPublished {
			published = sched
			return nil
		}

		report, err := publisher.Validate(ctx, tx, logger, scheduleID)
		if err != nil {
			return err
		}
		if !report.IsValid() {
			return &model.ConflictError{Report: report}
		}

		if err := tx.SetScheduleStatus(ctx, scheduleID, model.ScheduleStatusPublished, actorID); err != nil {
			return err
		}
		published, err = tx.GetSchedule(ctx, scheduleID)
		if err != nil {
			return fmt.Errorf("failed to reload published schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		if ce, ok := model.IsConflict(err); ok {
			metrics.IncPublishDecision("rejected")
			metrics.AddPublishConflicts(len(ce.Report.Conflicts))
			logger.Warn("Publication rejected",
				zap.String("schedule_id", scheduleID),
				zap.Int("conflicts", len(ce.Report.Conflicts)))
		} else {
			metrics.IncPublishDecision("failed")
		}
		return nil, err
	}

	metrics.IncPublishDecision("approved")
	logger.Info("Schedule published",
		zap.String("schedule_id", scheduleID),
		zap.String("published_by", published.PublishedBy))

	return published, nil
}

// ValidateScheduleForPublication runs the publication conflict check without
// changing any state.
func ValidateScheduleForPublication(ctx context.Context, st store.Store, logger *zap.Logger, scheduleID string) (*model.ConflictReport, error) {
	if _, err := st.GetSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}
	return publisher.Validate(ctx, st, logger, scheduleID)
}
