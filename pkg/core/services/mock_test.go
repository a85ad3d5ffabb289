package services

import (
	"context"
	"time"

	"github.com/kishan-gau/rosteriq/pkg/model"
	"github.com/kishan-gau/rosteriq/pkg/store"
	"github.com/kishan-gau/rosteriq/pkg/timeutil"
)

// mockStore is an in-memory store.Store shared by the service tests.
// RunInTx snapshots the mutable state and restores it when fn fails, so
// rollback behaviour is observable.
type mockStore struct {
	schedules map[string]*model.Schedule
	shifts    []model.Shift
	templates map[string]*model.ShiftTemplate
	workers   map[string]*model.WorkerRef

	workersByRole map[string][]model.WorkerRef
	availability  map[string][]model.WorkerAvailability
}

func newMockStore() *mockStore {
	return &mockStore{
		schedules:     make(map[string]*model.Schedule),
		templates:     make(map[string]*model.ShiftTemplate),
		workers:       make(map[string]*model.WorkerRef),
		workersByRole: make(map[string][]model.WorkerRef),
		availability:  make(map[string][]model.WorkerAvailability),
	}
}

func (m *mockStore) RunInTx(ctx context.Context, fn func(store.Querier) error) error {
	snapSchedules := make(map[string]*model.Schedule, len(m.schedules))
	for id, s := range m.schedules {
		clone := *s
		snapSchedules[id] = &clone
	}
	snapShifts := append([]model.Shift(nil), m.shifts...)

	if err := fn(m); err != nil {
		m.schedules = snapSchedules
		m.shifts = snapShifts
		return err
	}
	return nil
}

func (m *mockStore) CreateSchedule(ctx context.Context, s *model.Schedule) error {
	clone := *s
	m.schedules[s.ID] = &clone
	return nil
}

func (m *mockStore) GetSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error) {
	s, ok := m.schedules[scheduleID]
	if !ok {
		return nil, &model.NotFoundError{Resource: "schedule", ID: scheduleID}
	}
	clone := *s
	return &clone, nil
}

func (m *mockStore) UpdateScheduleMeta(ctx context.Context, scheduleID string, update store.ScheduleUpdate) error {
	s, ok := m.schedules[scheduleID]
	if !ok {
		return &model.NotFoundError{Resource: "schedule", ID: scheduleID}
	}
	if update.Name != nil {
		s.Name = *update.Name
	}
	if update.Description != nil {
		s.Description = *update.Description
	}
	if update.StartDate != nil {
		s.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		s.EndDate = *update.EndDate
	}
	return nil
}

func (m *mockStore) IncrementScheduleVersion(ctx context.Context, scheduleID string) (int, error) {
	s, ok := m.schedules[scheduleID]
	if !ok {
		return 0, &model.NotFoundError{Resource: "schedule", ID: scheduleID}
	}
	s.Version++
	return s.Version, nil
}

func (m *mockStore) SetScheduleStatus(ctx context.Context, scheduleID string, status model.ScheduleStatus, actorID string) error {
	s, ok := m.schedules[scheduleID]
	if !ok {
		return &model.NotFoundError{Resource: "schedule", ID: scheduleID}
	}
	s.Status = status
	if status == model.ScheduleStatusPublished {
		now := time.Now()
		s.PublishedAt = &now
		s.PublishedBy = actorID
	}
	return nil
}

func (m *mockStore) GetTemplate(ctx context.Context, templateID, orgID string) (*model.ShiftTemplate, error) {
	t, ok := m.templates[templateID]
	if !ok || t.OrgID != orgID {
		return nil, &model.NotFoundError{Resource: "shift template", ID: templateID}
	}
	clone := *t
	return &clone, nil
}

func (m *mockStore) FindQualifiedActiveWorkers(ctx context.Context, roleID, orgID string) ([]model.WorkerRef, error) {
	return m.workersByRole[roleID], nil
}

func (m *mockStore) GetWorker(ctx context.Context, employeeID string) (*model.WorkerRef, error) {
	w, ok := m.workers[employeeID]
	if !ok {
		return nil, &model.NotFoundError{Resource: "worker", ID: employeeID}
	}
	clone := *w
	return &clone, nil
}

func (m *mockStore) FindAvailability(ctx context.Context, employeeID string, date time.Time, dayOfWeek int) ([]model.WorkerAvailability, error) {
	return m.availability[employeeID], nil
}

func (m *mockStore) InsertShift(ctx context.Context, shift *model.Shift) error {
	m.shifts = append(m.shifts, *shift)
	return nil
}

func (m *mockStore) ListShifts(ctx context.Context, scheduleID string) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range m.shifts {
		if s.ScheduleID == scheduleID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStore) DeleteShiftsForSchedule(ctx context.Context, scheduleID string) error {
	kept := m.shifts[:0]
	for _, s := range m.shifts {
		if s.ScheduleID != scheduleID {
			kept = append(kept, s)
		}
	}
	m.shifts = kept
	return nil
}

func (m *mockStore) FindOverlappingShifts(ctx context.Context, q store.OverlapQuery) ([]model.Shift, error) {
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

var _ store.Store = (*mockStore)(nil)
