package service

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

type assignmentKey struct {
	eventID    uuid.UUID
	operatorID string
}

// fakeRepository - хранилище в памяти с проверкой версий, как у настоящего.
// failUpdate позволяет уронить запись конкретного события.
type fakeRepository struct {
	mu          sync.Mutex
	events      map[uuid.UUID]*models.Event
	seqs        map[uuid.UUID]int64
	assignments map[assignmentKey]*models.OperatorAssignment
	logs        map[uuid.UUID]*models.LogEntry
	failUpdate  map[uuid.UUID]error
	updates     int

	// beforeAssignmentWrite срабатывает один раз перед следующей записью назначения
	beforeAssignmentWrite func()
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		events:      make(map[uuid.UUID]*models.Event),
		seqs:        make(map[uuid.UUID]int64),
		assignments: make(map[assignmentKey]*models.OperatorAssignment),
		logs:        make(map[uuid.UUID]*models.LogEntry),
		failUpdate:  make(map[uuid.UUID]error),
	}
}

func (r *fakeRepository) bump(eventID uuid.UUID) int64 {
	r.seqs[eventID]++
	return r.seqs[eventID]
}

// put кладет событие напрямую, минуя сервис
func (r *fakeRepository) put(e *models.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.Version == 0 {
		e.Version = 1
	}
	r.events[e.ID] = e.Clone()
	r.bump(e.ID)
}

func (r *fakeRepository) CreateEvent(_ context.Context, e *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Version = 1
	e.Seq = r.bump(e.ID)
	r.events[e.ID] = e.Clone()
	return nil
}

func (r *fakeRepository) GetEvent(_ context.Context, id uuid.UUID) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, apperr.NotFound("event %s not found", id)
	}
	return e.Clone(), nil
}

func (r *fakeRepository) ListEvents(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Event
	for _, e := range r.events {
		if filter.Status == "" || e.Status == filter.Status {
			out = append(out, e.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *fakeRepository) UpdateEvent(_ context.Context, e *models.Event, clearZones []uuid.UUID) ([]models.OperatorAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failUpdate[e.ID]; err != nil {
		return nil, err
	}
	stored, ok := r.events[e.ID]
	if !ok {
		return nil, apperr.NotFound("event %s not found", e.ID)
	}
	if stored.Version != e.Version {
		return nil, apperr.Conflict("event %s was modified concurrently", e.ID)
	}
	r.updates++
	e.Version++
	e.Seq = r.bump(e.ID)
	r.events[e.ID] = e.Clone()

	var cleared []models.OperatorAssignment
	for key, a := range r.assignments {
		if key.eventID != e.ID || a.CurrentZone == nil || !slices.Contains(clearZones, *a.CurrentZone) {
			continue
		}
		a.CurrentZone = nil
		a.Version++
		a.Seq = r.bump(e.ID)
		a.UpdatedAt = e.UpdatedAt
		cleared = append(cleared, *a)
	}
	return cleared, nil
}

func (r *fakeRepository) DeleteEvent(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return 0, apperr.NotFound("event %s not found", id)
	}
	delete(r.events, id)
	for key := range r.assignments {
		if key.eventID == id {
			delete(r.assignments, key)
		}
	}
	for lid, l := range r.logs {
		if l.EventID == id {
			delete(r.logs, lid)
		}
	}
	return r.bump(id), nil
}

func (r *fakeRepository) ListLinkedTo(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uuid.UUID
	for _, e := range r.events {
		if e.IsLinked(id) {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListAssignments(_ context.Context, eventID uuid.UUID) ([]models.OperatorAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.OperatorAssignment
	for key, a := range r.assignments {
		if key.eventID == eventID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OperatorID < out[j].OperatorID })
	return out, nil
}

func (r *fakeRepository) GetAssignment(_ context.Context, eventID uuid.UUID, operatorID string) (*models.OperatorAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[assignmentKey{eventID, operatorID}]
	if !ok {
		return nil, apperr.NotFound("assignment not found")
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepository) AddAssignment(_ context.Context, a *models.OperatorAssignment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[a.EventID]; !ok {
		return false, apperr.NotFound("event %s not found", a.EventID)
	}
	key := assignmentKey{a.EventID, a.OperatorID}
	if _, ok := r.assignments[key]; ok {
		return false, nil
	}
	a.Version = 1
	a.Seq = r.bump(a.EventID)
	cp := *a
	r.assignments[key] = &cp
	return true, nil
}

func (r *fakeRepository) UpdateAssignment(_ context.Context, a *models.OperatorAssignment) error {
	r.mu.Lock()
	hook := r.beforeAssignmentWrite
	r.beforeAssignmentWrite = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateAssignmentLocked(a)
}

func (r *fakeRepository) updateAssignmentLocked(a *models.OperatorAssignment) error {
	key := assignmentKey{a.EventID, a.OperatorID}
	stored, ok := r.assignments[key]
	if !ok {
		return apperr.NotFound("assignment not found")
	}
	if a.CurrentZone != nil {
		if e, ok := r.events[a.EventID]; !ok || e.FindZone(*a.CurrentZone) == nil {
			return apperr.Conflict("zone %s no longer exists in event %s", *a.CurrentZone, a.EventID)
		}
	}
	if stored.Version != a.Version {
		return apperr.Conflict("assignment was modified concurrently")
	}
	a.Version++
	a.Seq = r.bump(a.EventID)
	cp := *a
	r.assignments[key] = &cp
	return nil
}

func (r *fakeRepository) RemoveAssignment(_ context.Context, eventID uuid.UUID, operatorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := assignmentKey{eventID, operatorID}
	if _, ok := r.assignments[key]; !ok {
		return 0, apperr.NotFound("assignment not found")
	}
	delete(r.assignments, key)
	return r.bump(eventID), nil
}

func (r *fakeRepository) CreateLog(_ context.Context, l *models.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[l.EventID]; !ok {
		return apperr.NotFound("event %s not found", l.EventID)
	}
	l.Seq = r.bump(l.EventID)
	cp := *l
	r.logs[l.ID] = &cp
	return nil
}

func (r *fakeRepository) GetLog(_ context.Context, id uuid.UUID) (*models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[id]
	if !ok {
		return nil, apperr.NotFound("log entry %s not found", id)
	}
	cp := *l
	return &cp, nil
}

func (r *fakeRepository) ListLogs(_ context.Context, filter models.LogFilter) ([]*models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.LogEntry
	for _, l := range r.logs {
		if filter.EventID != nil && l.EventID != *filter.EventID {
			continue
		}
		if filter.Talkgroup != "" && l.Talkgroup != filter.Talkgroup {
			continue
		}
		if filter.Channel != "" && l.Channel != filter.Channel {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *fakeRepository) UpdateLog(_ context.Context, l *models.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[l.ID]; !ok {
		return apperr.NotFound("log entry %s not found", l.ID)
	}
	l.Seq = r.bump(l.EventID)
	cp := *l
	r.logs[l.ID] = &cp
	return nil
}

func (r *fakeRepository) DeleteLog(_ context.Context, l *models.LogEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[l.ID]; !ok {
		return 0, apperr.NotFound("log entry %s not found", l.ID)
	}
	delete(r.logs, l.ID)
	return r.bump(l.EventID), nil
}

func (r *fakeRepository) RecordWelfareCheck(_ context.Context, a *models.OperatorAssignment, l *models.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateAssignmentLocked(a); err != nil {
		return err
	}
	l.Seq = r.bump(l.EventID)
	cp := *l
	r.logs[l.ID] = &cp
	return nil
}

// recordingBroadcaster копит опубликованные дельты
type recordingBroadcaster struct {
	mu     sync.Mutex
	deltas []broadcast.Delta
}

func (b *recordingBroadcaster) Publish(_ context.Context, d broadcast.Delta) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deltas = append(b.deltas, d)
}

func (b *recordingBroadcaster) ofType(t broadcast.DeltaType) []broadcast.Delta {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []broadcast.Delta
	for _, d := range b.deltas {
		if d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

func (b *recordingBroadcaster) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deltas = nil
}

type fakeScheduler struct {
	mu      sync.Mutex
	running map[uuid.UUID]bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{running: make(map[uuid.UUID]bool)}
}

func (s *fakeScheduler) Start(e *models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running[e.ID] = e.Status == models.EventStatusActive
}

func (s *fakeScheduler) Stop(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running[id] = false
}

func (s *fakeScheduler) isRunning(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running[id]
}
