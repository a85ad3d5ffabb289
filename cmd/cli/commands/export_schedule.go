package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/rosteriq/pkg/core/services"
)

// ExportScheduleCmd creates the exportSchedule command
func ExportScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportSchedule <schedule-id>",
		Short: "Export a schedule's roster to an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer file.Close()

			if err := services.ExportSchedule(app.Ctx, app.Store, app.Logger, args[0], file); err != nil {
				return err
			}
			fmt.Printf("Roster written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().String("out", "schedule.xlsx", "Output file path")

	return cmd
}
