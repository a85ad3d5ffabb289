package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/rosteriq/pkg/core/services"
	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishSchedule <schedule-id>",
		Short: "Publish a draft schedule after the cross-schedule conflict check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, _ := cmd.Flags().GetString("actor")

			schedule, err := services.PublishSchedule(app.Ctx, app.Store, app.Logger, args[0], actor)
			if err != nil {
				if ce, ok := model.IsConflict(err); ok {
					printConflicts(ce.Report)
					return fmt.Errorf("publication refused: %d conflicting shifts", len(ce.Report.Conflicts))
				}
				return err
			}

			fmt.Printf("Schedule %s published by %s\n", schedule.ID, schedule.PublishedBy)
			return nil
		},
	}

	cmd.Flags().String("actor", "", "Id of the user publishing the schedule")
	cmd.MarkFlagRequired("actor")

	return cmd
}

// ValidateScheduleCmd creates the validateSchedule command
func ValidateScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateSchedule <schedule-id>",
		Short: "Check a schedule for publication conflicts without publishing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.ValidateScheduleForPublication(app.Ctx, app.Store, app.Logger, args[0])
			if err != nil {
				return err
			}
			if report.IsValid() {
				fmt.Println("No publication conflicts found")
				return nil
			}
			printConflicts(report)
			return nil
		},
	}
}

func printConflicts(report *model.ConflictReport) {
	for _, conflict := range report.Conflicts {
		fmt.Printf("conflict: %s (%s) on %s %s\n",
			conflict.EmployeeName, conflict.EmployeeID,
			timeutil.FormatDate(conflict.Date), conflict.Window)
		for i, other := range conflict.ConflictsWith {
			fmt.Printf("  overlaps %s in schedule %q (%s)\n", other.Window, other.ScheduleName, other.Overlap)
			if i < len(conflict.Suggestions) {
				fmt.Printf("  suggestion: %s\n", conflict.Suggestions[i])
			}
		}
	}
}
