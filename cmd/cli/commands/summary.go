package commands

import (
	"fmt"

	"github.com/kishan-gau/rosteriq/pkg/model"
)

// printSummary renders a generation summary for terminal consumption.
func printSummary(summary *model.GenerationSummary) {
	fmt.Printf("Requested: %d  Generated: %d  Partial: %d  Uncovered: %d\n",
		summary.Requested, summary.Generated, summary.PartialCoverage, summary.NoCoverage)
	if len(summary.MissingTemplateIDs) > 0 {
		fmt.Printf("Missing templates: %v\n", summary.MissingTemplateIDs)
	}
	for _, warning := range summary.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
}
