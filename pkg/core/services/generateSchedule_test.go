package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

func svcWindow(start, end int) timeutil.Window {
	return timeutil.Window{Start: timeutil.TimeOfDay(start * 60), End: timeutil.TimeOfDay(end * 60)}
}

// seedFixtures installs one active template (09:00-17:00, one worker of
// role-r per day) and one fully available worker.
func seedFixtures(st *mockStore) {
	st.templates["tmpl-1"] = &model.ShiftTemplate{
		ID:     "tmpl-1",
		OrgID:  "org-1",
		Name:   "Day Shift",
		Window: svcWindow(9, 17),
		Active: true,
		Requirements: []model.RoleRequirement{
			{RoleID: "role-r", Quantity: 1},
		},
	}
	st.workers["w1"] = &model.WorkerRef{ID: "w1", FirstName: "Wendy", LastName: "Myers"}
	st.workersByRole["role-r"] = []model.WorkerRef{*st.workers["w1"]}
	for day := 1; day <= 7; day++ {
		st.availability["w1"] = append(st.availability["w1"], model.WorkerAvailability{
			EmployeeID: "w1",
			Type:       model.AvailabilityRecurring,
			DayOfWeek:  day,
			Window:     svcWindow(8, 18),
			Priority:   model.PriorityAvailable,
		})
	}
}

func baseInput() GenerateInput {
	return GenerateInput{
		OrgID:       "org-1",
		Name:        "Week 1",
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-07",
		TemplateIDs: []string{"tmpl-1"},
	}
}

func TestAutoGenerateSchedule_Success(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)

	result, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), baseInput())
	require.NoError(t, err)

	sched := result.Schedule
	assert.Equal(t, model.ScheduleStatusDraft, sched.Status)
	assert.Equal(t, 1, sched.Version)
	assert.Equal(t, "Week 1", sched.Name)

	stored, err := st.GetSchedule(context.Background(), sched.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ScheduleStatusDraft, stored.Status)

	shifts, err := st.ListShifts(context.Background(), sched.ID)
	require.NoError(t, err)
	assert.Len(t, shifts, 7, "one shift per day of the week")

	assert.Equal(t, 7, result.Summary.Requested)
	assert.Equal(t, 7, result.Summary.Generated)
	assert.Equal(t, 0, result.Summary.NoCoverage)
	assert.Equal(t, []string{"tmpl-1"}, result.Summary.ValidTemplateIDs)
}

func TestAutoGenerateSchedule_InvalidInput(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)

	input := baseInput()
	input.Name = ""

	_, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), input)
	assert.True(t, model.IsValidation(err), "got %v", err)
	assert.Empty(t, st.schedules, "nothing persisted on invalid input")
}

func TestAutoGenerateSchedule_EndBeforeStart(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)

	input := baseInput()
	input.StartDate = "2024-01-07"
	input.EndDate = "2024-01-01"

	_, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), input)
	assert.True(t, model.IsValidation(err), "got %v", err)
}

func TestAutoGenerateSchedule_BadDayMapping(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)

	input := baseInput()
	input.DayMapping = []DayMappingInput{{TemplateID: "tmpl-1", Days: []int{0, 8}}}

	_, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), input)
	assert.True(t, model.IsValidation(err), "got %v", err)
}

func TestAutoGenerateSchedule_AllTemplatesMissingRollsBack(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)

	input := baseInput()
	input.TemplateIDs = []string{"tmpl-missing"}

	_, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), input)
	assert.True(t, model.IsValidation(err), "got %v", err)
	assert.Empty(t, st.schedules, "schedule row rolls back with the failed run")
	assert.Empty(t, st.shifts)
}

func TestAutoGenerateSchedule_MissingTemplateSoftSkipped(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)

	input := baseInput()
	input.TemplateIDs = []string{"tmpl-1", "tmpl-missing"}

	result, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), input)
	require.NoError(t, err)

	assert.Equal(t, 7, result.Summary.Generated)
	assert.Equal(t, []string{"tmpl-missing"}, result.Summary.MissingTemplateIDs)
	require.NotEmpty(t, result.Summary.Warnings)
	assert.Contains(t, result.Summary.Warnings[0], "tmpl-missing not found, skipping")
}

func TestAutoGenerateSchedule_InactiveTemplateSkipped(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)
	st.templates["tmpl-off"] = &model.ShiftTemplate{
		ID: "tmpl-off", OrgID: "org-1", Name: "Retired", Window: svcWindow(6, 9), Active: false,
		Requirements: []model.RoleRequirement{{RoleID: "role-r", Quantity: 1}},
	}

	input := baseInput()
	input.TemplateIDs = []string{"tmpl-1", "tmpl-off"}

	result, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"tmpl-off"}, result.Summary.MissingTemplateIDs)
	require.NotEmpty(t, result.Summary.Warnings)
	assert.Contains(t, result.Summary.Warnings[0], `template "Retired" (tmpl-off) is inactive, skipping`)
	for _, shift := range st.shifts {
		assert.NotEqual(t, "tmpl-off", shift.TemplateID)
	}
}

func TestAutoGenerateSchedule_WrongOrgTemplateNotVisible(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)
	st.templates["tmpl-1"].OrgID = "org-other"

	_, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), baseInput())
	assert.True(t, model.IsValidation(err), "cross-org template must resolve as missing: %v", err)
}

func TestAutoGenerateSchedule_DayMappingRestrictsDays(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)

	input := baseInput()
	input.DayMapping = []DayMappingInput{{TemplateID: "tmpl-1", Days: []int{1, 3, 5}}}

	result, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), input)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.Generated)
	for _, shift := range st.shifts {
		day := timeutil.ISOWeekday(shift.Date)
		assert.Contains(t, []int{1, 3, 5}, day)
	}
}

func TestAutoGenerateSchedule_BlackoutRuleSkipsDate(t *testing.T) {
	st := newMockStore()
	seedFixtures(st)

	newYear, err := timeutil.ParseDate("2024-01-01")
	require.NoError(t, err)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.YEARLY,
		Dtstart: newYear,
		Count:   1,
	})
	require.NoError(t, err)

	input := baseInput()
	input.BlackoutRules = []*rrule.RRule{rule}

	result, err := AutoGenerateSchedule(context.Background(), st, zap.NewNop(), input)
	require.NoError(t, err)

	assert.Equal(t, 6, result.Summary.Generated, "blackout day produces no shifts")
	for _, shift := range st.shifts {
		assert.NotEqual(t, "2024-01-01", timeutil.FormatDate(shift.Date))
	}
	found := false
	for _, w := range result.Summary.Warnings {
		if w == "skipping 2024-01-01: blackout date" {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", result.Summary.Warnings)
}

func TestExpandBlackoutDates_InclusiveRange(t *testing.T) {
	start, err := timeutil.ParseDate("2024-01-01")
	require.NoError(t, err)
	end, err := timeutil.ParseDate("2024-01-07")
	require.NoError(t, err)

	// Weekly on Sunday starting before the range: 2024-01-07 is the final,
	// inclusive day of the range.
	dtstart := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: dtstart,
	})
	require.NoError(t, err)

	blackout := expandBlackoutDates([]*rrule.RRule{rule}, start, end)
	assert.True(t, blackout["2024-01-07"], "final day of the range is covered")
	assert.False(t, blackout["2024-01-01"])
}
