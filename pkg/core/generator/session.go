// Package generator implements the shift assignment algorithm: the nested
// iteration over templates, stations, role requirements and dates that turns
// shift templates plus worker availability into persisted shifts.
package generator

import (
	"time"

	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// Interval is one assignment tracked during a generation run.
type Interval struct {
	Date   time.Time
	Window timeutil.Window
}

// Session tracks the intervals assigned to each worker during a single
// generation call, preventing the algorithm from offering the same worker
// two overlapping slots before either has been committed. It is constructed
// at call entry, discarded at exit, and never shared across calls.
type Session struct {
	assigned map[string][]Interval
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{assigned: make(map[string][]Interval)}
}

// Conflicts reports whether the worker already holds an interval on the same
// date overlapping the given window.
func (s *Session) Conflicts(employeeID string, date time.Time, w timeutil.Window) bool {
	for _, iv := range s.assigned[employeeID] {
		if timeutil.SameDate(iv.Date, date) && iv.Window.Overlaps(w) {
			return true
		}
	}
	return false
}

// Track records an interval assigned to the worker in this run.
func (s *Session) Track(employeeID string, date time.Time, w timeutil.Window) {
	s.assigned[employeeID] = append(s.assigned[employeeID], Interval{
		Date:   timeutil.NormalizeDate(date),
		Window: w,
	})
}

// Assignments returns how many intervals the worker holds in this run.
func (s *Session) Assignments(employeeID string) int {
	return len(s.assigned[employeeID])
}
