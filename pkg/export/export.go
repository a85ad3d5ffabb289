// Package export renders a schedule's shifts to an xlsx roster.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

var headerColumns = []string{"Date", "Start", "End", "Employee", "Role", "Station", "Status", "Notes"}

// WriteSchedule writes one sheet named after the schedule, a bold header row,
// and one row per shift ordered by date, start time and employee name.
// workerNames maps employee ids to display names; ids without an entry are
// rendered as-is.
func WriteSchedule(w io.Writer, schedule *model.Schedule, shifts []model.Shift, workerNames map[string]string) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := schedule.Name
	if sheet == "" {
		sheet = "Schedule"
	}
	// Excel caps sheet names at 31 characters.
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	file.SetSheetName("Sheet1", sheet)

	for i, col := range headerColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headerColumns), 1)
		_ = file.SetCellStyle(sheet, "A1", endCell, style)
	}

	rows := make([]model.Shift, len(shifts))
	copy(rows, shifts)
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		if rows[i].Window.Start != rows[j].Window.Start {
			return rows[i].Window.Start < rows[j].Window.Start
		}
		return displayName(workerNames, rows[i].EmployeeID) < displayName(workerNames, rows[j].EmployeeID)
	})

	for i, shift := range rows {
		values := []any{
			timeutil.FormatDate(shift.Date),
			shift.Window.Start.String(),
			shift.Window.End.String(),
			displayName(workerNames, shift.EmployeeID),
			shift.RoleID,
			shift.StationID,
			string(shift.Status),
			shift.Notes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write shift row: %w", err)
			}
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func displayName(workerNames map[string]string, employeeID string) string {
	if name, ok := workerNames[employeeID]; ok {
		return name
	}
	return employeeID
}
