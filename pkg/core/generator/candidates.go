package generator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// exclusionStats records why workers fell out of the candidate pool for one
// slot, feeding the exclusion analysis in no-coverage warnings.
type exclusionStats struct {
	qualified        int // workers holding the required role at all
	unavailableVeto  int // vetoed by an unavailable record overlapping the slot
	noAvailability   int // no availability record covering (or overlapping) the slot
	persistedBooking int // overlapping non-cancelled shift already in the store
	sessionConflict  int // overlapping interval assigned earlier in this run
}

// describe renders the exclusion analysis for a slot that ended up with no
// candidates. It distinguishes an empty qualified pool from qualified
// workers excluded by availability, existing bookings, or same-run session
// conflicts.
func (s exclusionStats) describe(roleID string) string {
	if s.qualified == 0 {
		return fmt.Sprintf("no active schedulable workers hold role %s", roleID)
	}

	var parts []string
	if s.unavailableVeto > 0 {
		parts = append(parts, fmt.Sprintf("%d marked unavailable", s.unavailableVeto))
	}
	if s.noAvailability > 0 {
		parts = append(parts, fmt.Sprintf("%d without availability covering the slot", s.noAvailability))
	}
	if s.persistedBooking > 0 {
		parts = append(parts, fmt.Sprintf("%d already booked on existing shifts", s.persistedBooking))
	}
	if s.sessionConflict > 0 {
		parts = append(parts, fmt.Sprintf("%d already assigned to overlapping shifts earlier in this run", s.sessionConflict))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("all %d qualified workers were excluded", s.qualified)
	}
	return fmt.Sprintf("all %d qualified workers were excluded: %s", s.qualified, strings.Join(parts, ", "))
}

// selectCandidates builds the ordered candidate pool for one slot. Candidates
// are workers holding the role who have a matching availability window, no
// overlapping persisted shift, and no same-run session conflict.
func selectCandidates(
	ctx context.Context,
	st Store,
	sess *Session,
	orgID, roleID string,
	date time.Time,
	slot timeutil.Window,
	partial bool,
) ([]model.Candidate, exclusionStats, error) {
	var stats exclusionStats

	workers, err := st.FindQualifiedActiveWorkers(ctx, roleID, orgID)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to find qualified workers for role %s: %w", roleID, err)
	}
	stats.qualified = len(workers)

	dayOfWeek := timeutil.ISOWeekday(date)

	var candidates []model.Candidate
	for _, worker := range workers {
		records, err := st.FindAvailability(ctx, worker.ID, date, dayOfWeek)
		if err != nil {
			return nil, stats, fmt.Errorf("failed to find availability for %s: %w", worker.ID, err)
		}

		window, ok := matchAvailability(records, date, dayOfWeek, slot, partial)
		if !ok {
			if vetoedByUnavailable(records, date, dayOfWeek, slot) {
				stats.unavailableVeto++
			} else {
				stats.noAvailability++
			}
			continue
		}

		// Session first: shifts inserted earlier in this run are already
		// visible inside the transaction, and a same-run conflict must be
		// reported as such, not as an existing booking.
		if sess.Conflicts(worker.ID, date, slot) {
			stats.sessionConflict++
			continue
		}

		overlaps, err := st.FindOverlappingShifts(ctx, store.OverlapQuery{
			EmployeeID: worker.ID,
			Date:       date,
			Window:     slot,
		})
		if err != nil {
			return nil, stats, fmt.Errorf("failed to find overlapping shifts for %s: %w", worker.ID, err)
		}
		if len(overlaps) > 0 {
			stats.persistedBooking++
			continue
		}

		candidates = append(candidates, model.Candidate{
			Worker:          worker,
			Availability:    window,
			CoveragePercent: slot.CoveragePercent(window),
		})
	}

	sortCandidates(candidates, partial)
	return candidates, stats, nil
}

// matchAvailability finds the availability window to assign against. An
// unavailable record overlapping the slot vetoes the worker outright,
// regardless of mode. Full mode demands a record containing the whole slot;
// partial mode accepts any overlap and picks the one covering the most of it.
func matchAvailability(records []model.WorkerAvailability, date time.Time, dayOfWeek int, slot timeutil.Window, partial bool) (timeutil.Window, bool) {
	if vetoedByUnavailable(records, date, dayOfWeek, slot) {
		return timeutil.Window{}, false
	}

	var best timeutil.Window
	bestCoverage := -1.0
	for _, rec := range records {
		if rec.Type == model.AvailabilityUnavailable || !rec.CoversDate(date, dayOfWeek) {
			continue
		}
		if partial {
			if !rec.Window.Overlaps(slot) {
				continue
			}
			if cov := slot.CoveragePercent(rec.Window); cov > bestCoverage {
				best = rec.Window
				bestCoverage = cov
			}
		} else if rec.Window.Contains(slot) {
			return rec.Window, true
		}
	}
	if partial && bestCoverage >= 0 {
		return best, true
	}
	return timeutil.Window{}, false
}

// vetoedByUnavailable reports whether any unavailable record for the date
// overlaps the slot.
func vetoedByUnavailable(records []model.WorkerAvailability, date time.Time, dayOfWeek int, slot timeutil.Window) bool {
	for _, rec := range records {
		if rec.Type == model.AvailabilityUnavailable && rec.CoversDate(date, dayOfWeek) && rec.Window.Overlaps(slot) {
			return true
		}
	}
	return false
}

// sortCandidates orders the pool. Partial mode sorts by coverage descending
// then name; full mode by name alone. First-fit, not optimal-fit: no
// proficiency or priority ranking.
func sortCandidates(candidates []model.Candidate, partial bool) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if partial && candidates[i].CoveragePercent != candidates[j].CoveragePercent {
			return candidates[i].CoveragePercent > candidates[j].CoveragePercent
		}
		return candidates[i].Worker.Name() < candidates[j].Worker.Name()
	})
}
