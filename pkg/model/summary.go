package model

import "fmt"

// GenerationSummary reports the outcome of one generation run. Uncovered and
// partially covered slots are soft outcomes recorded here, not errors.
type GenerationSummary struct {
	// Requested is the total number of worker slots asked for across all
	// template/station/role/date combinations.
	Requested int

	// Generated is the number of shifts actually created.
	Generated int

	// PartialCoverage counts slot combinations that were filled below their
	// required quantity but above zero.
	PartialCoverage int

	// NoCoverage counts slot combinations for which no worker could be
	// assigned at all.
	NoCoverage int

	// Warnings are ordered human-readable diagnostics appended as the run
	// progresses.
	Warnings []string

	// ValidTemplateIDs and MissingTemplateIDs record which requested
	// templates resolved and which were skipped.
	ValidTemplateIDs   []string
	MissingTemplateIDs []string
}

// Warnf appends a formatted warning.
func (s *GenerationSummary) Warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
