package publisher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// mockPubStore implements Store over in-memory fixtures. FindOverlappingShifts
// applies the same filters the real query does: employee, date, window
// overlap, non-cancelled, schedule exclusion and published-only.
type mockPubStore struct {
	schedules map[string]*model.Schedule
	shifts    []model.Shift
	workers   map[string]*model.WorkerRef
}

func (m *mockPubStore) GetSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error) {
	sched, ok := m.schedules[scheduleID]
	if !ok {
		return nil, &model.NotFoundError{Resource: "schedule", ID: scheduleID}
	}
	return sched, nil
}

func (m *mockPubStore) ListShifts(ctx context.Context, scheduleID string) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range m.shifts {
		if s.ScheduleID == scheduleID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockPubStore) FindOverlappingShifts(ctx context.Context, q store.OverlapQuery) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range m.shifts {
		if s.EmployeeID != q.EmployeeID || !timeutil.SameDate(s.Date, q.Date) {
			continue
		}
		if s.Status == model.ShiftStatusCancelled || !s.Window.Overlaps(q.Window) {
			continue
		}
		if q.ExcludeScheduleID != "" && s.ScheduleID == q.ExcludeScheduleID {
			continue
		}
		if q.PublishedOnly {
			sched, ok := m.schedules[s.ScheduleID]
			if !ok || sched.Status != model.ScheduleStatusPublished {
				continue
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockPubStore) GetWorker(ctx context.Context, employeeID string) (*model.WorkerRef, error) {
	w, ok := m.workers[employeeID]
	if !ok {
		return nil, &model.NotFoundError{Resource: "worker", ID: employeeID}
	}
	return w, nil
}

func pubDate(t *testing.T) time.Time {
	t.Helper()
	date, err := timeutil.ParseDate("2024-01-01")
	require.NoError(t, err)
	return date
}

func pubWindow(start, end int) timeutil.Window {
	return timeutil.Window{Start: timeutil.TimeOfDay(start * 60), End: timeutil.TimeOfDay(end * 60)}
}

func fixtureStore(t *testing.T) *mockPubStore {
	t.Helper()
	return &mockPubStore{
		schedules: map[string]*model.Schedule{
			"draft-1": {ID: "draft-1", Name: "January Draft", Status: model.ScheduleStatusDraft},
			"live-1":  {ID: "live-1", Name: "Holiday Cover", Status: model.ScheduleStatusPublished},
			"draft-2": {ID: "draft-2", Name: "Scratch", Status: model.ScheduleStatusDraft},
		},
		workers: map[string]*model.WorkerRef{
			"w1": {ID: "w1", FirstName: "Wendy", LastName: "Myers"},
		},
	}
}

func TestValidate_CleanScheduleApproved(t *testing.T) {
	st := fixtureStore(t)
	st.shifts = []model.Shift{
		{ID: "s1", ScheduleID: "draft-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusScheduled},
		{ID: "s2", ScheduleID: "live-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(18, 22), Status: model.ShiftStatusScheduled},
	}

	report, err := Validate(context.Background(), st, zap.NewNop(), "draft-1")
	require.NoError(t, err)
	assert.True(t, report.IsValid())
	assert.Empty(t, report.Conflicts)
}

func TestValidate_PublishedOverlapBlocks(t *testing.T) {
	st := fixtureStore(t)
	st.shifts = []model.Shift{
		{ID: "s1", ScheduleID: "draft-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusScheduled},
		{ID: "s2", ScheduleID: "live-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(16, 20), Status: model.ShiftStatusScheduled},
	}

	report, err := Validate(context.Background(), st, zap.NewNop(), "draft-1")
	require.NoError(t, err)
	assert.False(t, report.IsValid())

	require.Len(t, report.Conflicts, 1)
	conflict := report.Conflicts[0]
	assert.Equal(t, "s1", conflict.ShiftID)
	assert.Equal(t, "w1", conflict.EmployeeID)
	assert.Equal(t, "Wendy Myers", conflict.EmployeeName)
	require.Len(t, conflict.ConflictsWith, 1)
	assert.Equal(t, "s2", conflict.ConflictsWith[0].ShiftID)
	assert.Equal(t, "Holiday Cover", conflict.ConflictsWith[0].ScheduleName)
	assert.Equal(t, timeutil.OverlapPartialEnd, conflict.ConflictsWith[0].Overlap)
	require.Len(t, conflict.Suggestions, 1)
	assert.Contains(t, conflict.Suggestions[0], "16:00")
}

func TestValidate_OneConflictPerAffectedShift(t *testing.T) {
	// Two published shifts overlap the same draft shift: still one conflict
	// entry, with both overlaps nested under it.
	st := fixtureStore(t)
	st.shifts = []model.Shift{
		{ID: "s1", ScheduleID: "draft-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusScheduled},
		{ID: "s2", ScheduleID: "live-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(8, 11), Status: model.ShiftStatusScheduled},
		{ID: "s3", ScheduleID: "live-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(15, 19), Status: model.ShiftStatusScheduled},
	}

	report, err := Validate(context.Background(), st, zap.NewNop(), "draft-1")
	require.NoError(t, err)

	require.Len(t, report.Conflicts, 1)
	conflict := report.Conflicts[0]
	require.Len(t, conflict.ConflictsWith, 2)
	assert.Equal(t, timeutil.OverlapPartialStart, conflict.ConflictsWith[0].Overlap)
	assert.Equal(t, timeutil.OverlapPartialEnd, conflict.ConflictsWith[1].Overlap)
	assert.Len(t, conflict.Suggestions, 2)
}

func TestValidate_IgnoresDraftAndCancelled(t *testing.T) {
	st := fixtureStore(t)
	st.shifts = []model.Shift{
		{ID: "s1", ScheduleID: "draft-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusScheduled},
		// Overlap on another draft does not block publication.
		{ID: "s2", ScheduleID: "draft-2", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(10, 12), Status: model.ShiftStatusScheduled},
		// Cancelled published shift does not block either.
		{ID: "s3", ScheduleID: "live-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(10, 12), Status: model.ShiftStatusCancelled},
	}

	report, err := Validate(context.Background(), st, zap.NewNop(), "draft-1")
	require.NoError(t, err)
	assert.True(t, report.IsValid())
}

func TestValidate_SkipsCancelledAndUnassignedTargets(t *testing.T) {
	st := fixtureStore(t)
	st.shifts = []model.Shift{
		{ID: "s1", ScheduleID: "draft-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusCancelled},
		{ID: "s2", ScheduleID: "draft-1", EmployeeID: "", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusScheduled},
		{ID: "s3", ScheduleID: "live-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusScheduled},
	}

	report, err := Validate(context.Background(), st, zap.NewNop(), "draft-1")
	require.NoError(t, err)
	assert.True(t, report.IsValid())
}

func TestValidate_CompleteOverlapSuggestion(t *testing.T) {
	st := fixtureStore(t)
	st.shifts = []model.Shift{
		{ID: "s1", ScheduleID: "draft-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusScheduled},
		{ID: "s2", ScheduleID: "live-1", EmployeeID: "w1", Date: pubDate(t), Window: pubWindow(9, 17), Status: model.ShiftStatusScheduled},
	}

	report, err := Validate(context.Background(), st, zap.NewNop(), "draft-1")
	require.NoError(t, err)

	require.Len(t, report.Conflicts, 1)
	conflict := report.Conflicts[0]
	require.Len(t, conflict.ConflictsWith, 1)
	assert.Equal(t, timeutil.OverlapComplete, conflict.ConflictsWith[0].Overlap)
	require.Len(t, conflict.Suggestions, 1)
	assert.Contains(t, conflict.Suggestions[0], "reassign")
}
