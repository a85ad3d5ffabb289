package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/rosteriq/pkg/core/services"
)

// RegenerateScheduleCmd creates the regenerateSchedule command
func RegenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regenerateSchedule <schedule-id>",
		Short: "Regenerate a draft schedule with a new template set (full replace)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID := args[0]
			templateIDs, _ := cmd.Flags().GetStringSlice("template")
			dayMappings, _ := cmd.Flags().GetStringArray("day-mapping")
			partial, _ := cmd.Flags().GetBool("partial-time")

			mapping, err := parseDayMappings(dayMappings)
			if err != nil {
				return err
			}
			blackout, err := app.Cfg.BlackoutRules()
			if err != nil {
				return err
			}

			input := services.RegenerateInput{
				TemplateIDs:      templateIDs,
				DayMapping:       mapping,
				AllowPartialTime: partial,
				BlackoutRules:    blackout,
			}
			if cmd.Flags().Changed("start") {
				start, _ := cmd.Flags().GetString("start")
				input.StartDate = &start
			}
			if cmd.Flags().Changed("end") {
				end, _ := cmd.Flags().GetString("end")
				input.EndDate = &end
			}

			result, err := services.UpdateScheduleGeneration(app.Ctx, app.Store, app.Logger, scheduleID, input)
			if err != nil {
				return err
			}

			fmt.Printf("Schedule %s regenerated (version %d)\n", result.Schedule.ID, result.Schedule.Version)
			printSummary(result.Summary)
			return nil
		},
	}

	cmd.Flags().StringSlice("template", nil, "Shift template id (repeatable)")
	cmd.Flags().StringArray("day-mapping", nil, "Restrict a template to weekdays, e.g. tmpl-id=1,3,5 (Monday=1)")
	cmd.Flags().Bool("partial-time", false, "Allow partial availability coverage with clipped shifts")
	cmd.Flags().String("start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "New end date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("template")

	return cmd
}
