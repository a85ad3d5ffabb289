package services

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/kishan-gau/rosteriq/pkg/core/generator"
	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// parseDateField parses a "2006-01-02" field, wrapping failures as
// validation errors.
func parseDateField(name, value string) (time.Time, error) {
	date, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, model.Validationf("invalid %s: %v", name, err)
	}
	return date, nil
}

// toDayMapping converts input mapping entries to the generator's form,
// preserving entry order. Returns nil when no mapping was supplied, which
// applies every template to every date in range.
func toDayMapping(entries []DayMappingInput) []generator.DayMappingEntry {
	if len(entries) == 0 {
		return nil
	}
	mapping := make([]generator.DayMappingEntry, len(entries))
	for i, entry := range entries {
		mapping[i] = generator.DayMappingEntry{
			TemplateID: entry.TemplateID,
			Days:       entry.Days,
		}
	}
	return mapping
}

// expandBlackoutDates evaluates the configured recurrence rules over the
// schedule's date range and returns the set of dates to skip, keyed by
// timeutil.FormatDate.
func expandBlackoutDates(rules []*rrule.RRule, start, end time.Time) map[string]bool {
	if len(rules) == 0 {
		return nil
	}

	start = timeutil.NormalizeDate(start)
	// Inclusive end: cover the whole final day.
	rangeEnd := timeutil.NormalizeDate(end).Add(24*time.Hour - time.Second)

	blackout := make(map[string]bool)
	for _, rule := range rules {
		for _, occurrence := range rule.Between(start, rangeEnd, true) {
			blackout[timeutil.FormatDate(occurrence)] = true
		}
	}
	return blackout
}
