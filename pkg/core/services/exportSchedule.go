package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/pkg/export"
	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
)

// ExportSchedule writes the schedule's roster as an xlsx workbook to w.
func ExportSchedule(ctx context.Context, st store.Store, logger *zap.Logger, scheduleID string, w io.Writer) error {
	schedule, err := st.GetSchedule(ctx, scheduleID)
	if err != nil {
		return err
	}
	shifts, err := st.ListShifts(ctx, scheduleID)
	if err != nil {
		return err
	}

	workerNames := make(map[string]string)
	for _, shift := range shifts {
		if shift.EmployeeID == "" {
			continue
		}
		if _, ok := workerNames[shift.EmployeeID]; ok {
			continue
		}
		worker, err := st.GetWorker(ctx, shift.EmployeeID)
		if err != nil {
			if model.IsNotFound(err) {
				continue
			}
			return err
		}
		workerNames[shift.EmployeeID] = worker.Name()
	}

	logger.Debug("Exporting schedule",
		zap.String("schedule_id", scheduleID),
		zap.Int("shifts", len(shifts)))

	return export.WriteSchedule(w, schedule, shifts, workerNames)
}
