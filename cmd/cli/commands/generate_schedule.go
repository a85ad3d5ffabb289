package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/rosteriq/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule",
		Short: "Auto-generate a draft schedule from shift templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
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

			result, err := services.AutoGenerateSchedule(app.Ctx, app.Store, app.Logger, services.GenerateInput{
				OrgID:            app.Cfg.OrgID,
				Name:             name,
				Description:      description,
				StartDate:        start,
				EndDate:          end,
				TemplateIDs:      templateIDs,
				DayMapping:       mapping,
				AllowPartialTime: partial,
				BlackoutRules:    blackout,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Schedule %s created (version %d)\n", result.Schedule.ID, result.Schedule.Version)
			printSummary(result.Summary)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Schedule name")
	cmd.Flags().String("description", "", "Schedule description")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringSlice("template", nil, "Shift template id (repeatable)")
	cmd.Flags().StringArray("day-mapping", nil, "Restrict a template to weekdays, e.g. tmpl-id=1,3,5 (Monday=1)")
	cmd.Flags().Bool("partial-time", false, "Allow partial availability coverage with clipped shifts")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	cmd.MarkFlagRequired("template")

	return cmd
}

// parseDayMappings parses repeated "templateID=1,3,5" flags, preserving
// order.
func parseDayMappings(raw []string) ([]services.DayMappingInput, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	mappings := make([]services.DayMappingInput, 0, len(raw))
	for _, entry := range raw {
		templateID, dayList, ok := strings.Cut(entry, "=")
		if !ok || templateID == "" {
			return nil, fmt.Errorf("invalid day mapping %q: expected templateID=days", entry)
		}
		var days []int
		for _, part := range strings.Split(dayList, ",") {
			day, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("invalid day %q in mapping %q", part, entry)
			}
			days = append(days, day)
		}
		mappings = append(mappings, services.DayMappingInput{TemplateID: templateID, Days: days})
	}
	return mappings, nil
}
