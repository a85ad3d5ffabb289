package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a local time of day expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// String formats the time of day as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes returns the raw minutes-since-midnight value.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Window is a half-open [Start, End) time-of-day interval within one date.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewWindow builds a window from "HH:MM" strings and checks ordering.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, err
	}
	if e <= s {
		return Window{}, fmt.Errorf("window end %s must be after start %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

// String formats the window as "HH:MM-HH:MM".
func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// Duration returns the window length in minutes.
func (w Window) Duration() int {
	return int(w.End - w.Start)
}

// Overlaps reports whether two half-open windows share any time. Windows
// that merely touch (one ends exactly when the other starts) do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && w.End > o.Start
}

// Contains reports whether o lies entirely within w.
func (w Window) Contains(o Window) bool {
	return w.Start <= o.Start && w.End >= o.End
}

// Intersect returns the overlapping portion of two windows. The boolean is
// false when the windows do not overlap.
func (w Window) Intersect(o Window) (Window, bool) {
	if !w.Overlaps(o) {
		return Window{}, false
	}
	out := w
	if o.Start > out.Start {
		out.Start = o.Start
	}
	if o.End < out.End {
		out.End = o.End
	}
	return out, true
}

// CoveragePercent returns how much of w the availability window avail
// covers, as a percentage. Full containment is exactly 100.
func (w Window) CoveragePercent(avail Window) float64 {
	if avail.Contains(w) {
		return 100
	}
	overlap, ok := w.Intersect(avail)
	if !ok || w.Duration() == 0 {
		return 0
	}
	return float64(overlap.Duration()) / float64(w.Duration()) * 100
}

// OverlapKind classifies how another window relates to a target window,
// used in publication conflict reports.
type OverlapKind string

const (
	// OverlapComplete: the other window matches the target exactly, or lies
	// entirely inside it.
	OverlapComplete OverlapKind = "complete_overlap"

	// OverlapContainedBy: the target lies entirely inside the other window.
	OverlapContainedBy OverlapKind = "contained_by"

	// OverlapPartialStart: the other window covers the start of the target
	// but ends before it does.
	OverlapPartialStart OverlapKind = "partial_start"

	// OverlapPartialEnd: the other window covers the end of the target but
	// starts after it does.
	OverlapPartialEnd OverlapKind = "partial_end"

	// OverlapAdjacent: the windows touch without sharing any time.
	OverlapAdjacent OverlapKind = "adjacent"

	// OverlapNone: the windows are disjoint and not touching.
	OverlapNone OverlapKind = "none"
)

// ClassifyOverlap describes how other relates to the target window w.
func ClassifyOverlap(w, other Window) OverlapKind {
	if !w.Overlaps(other) {
		if other.End == w.Start || other.Start == w.End {
			return OverlapAdjacent
		}
		return OverlapNone
	}
	switch {
	case w == other, w.Contains(other):
		return OverlapComplete
	case other.Contains(w):
		return OverlapContainedBy
	case other.Start <= w.Start:
		return OverlapPartialStart
	default:
		return OverlapPartialEnd
	}
}
