// Package scheduler ведет таблицу интервальных таймеров check-in и welfare-check активных событий.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/metrics"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindCheckIn      Kind = "checkIn"
	KindWelfareCheck Kind = "welfareCheck"
)

func (k Kind) deltaType() broadcast.DeltaType {
	if k == KindWelfareCheck {
		return broadcast.DeltaWelfareCheckDue
	}
	return broadcast.DeltaCheckInDue
}

// Publisher - канал доставки напоминаний
type Publisher interface {
	Publish(ctx context.Context, d broadcast.Delta)
}

// Store отдает текущее состояние события и его ростер
type Store interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListAssignments(ctx context.Context, eventID uuid.UUID) ([]models.OperatorAssignment, error)
}

// Source - поток дельт всех реплик
type Source interface {
	Subscribe(topics []uuid.UUID, principalID string) *broadcast.Subscription
}

// EventLister нужен для восстановления таблицы после рестарта
type EventLister interface {
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
}

// Locker не дает нескольким репликам поднять одно и то же напоминание
type Locker interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type timer struct {
	interval time.Duration
	next     time.Time
}

// timerPair - два независимых таймера одного события. gen отличает пару от перезапущенной после Stop.
type timerPair struct {
	gen     uint64
	checkIn timer
	welfare timer
}

type firing struct {
	eventID  uuid.UUID
	gen      uint64
	kind     Kind
	due      time.Time
	interval time.Duration
}

type Scheduler struct {
	mu     sync.Mutex
	timers map[uuid.UUID]*timerPair
	gen    uint64

	publisher    Publisher
	store        Store
	locker       Locker
	logger       *logrus.Logger
	clock        func() time.Time
	tick         time.Duration
	storeTimeout time.Duration
}

type Option func(*Scheduler)

func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) { s.clock = clock }
}

func WithTick(tick time.Duration) Option {
	return func(s *Scheduler) {
		if tick > 0 {
			s.tick = tick
		}
	}
}

func WithLocker(locker Locker) Option {
	return func(s *Scheduler) { s.locker = locker }
}

func WithStoreTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// New создает планировщик. Без WithLocker каждое напоминание поднимается локально.
func New(publisher Publisher, store Store, logger *logrus.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		timers:       make(map[uuid.UUID]*timerPair),
		publisher:    publisher,
		store:        store,
		logger:       logger,
		clock:        time.Now,
		tick:         time.Second,
		storeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start заводит таймеры события. Для неактивного события равносилен Stop.
// Повторный Start не перепланирует уже идущие таймеры, даже если интервалы изменились.
// Сроки лежат на сетке ActivatedAt + k*interval, поэтому совпадают на всех репликах.
func (s *Scheduler) Start(event *models.Event) {
	if event == nil {
		return
	}
	if event.Status != models.EventStatusActive {
		s.Stop(event.ID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, running := s.timers[event.ID]; running {
		return
	}

	now := s.clock()
	anchor := activation(event, now)
	checkIn := minutes(event.CheckInIntervalMinutes, models.DefaultCheckInIntervalMinutes)
	welfare := minutes(event.WelfareCheckIntervalMinutes, models.DefaultWelfareCheckIntervalMinutes)

	s.gen++
	s.timers[event.ID] = &timerPair{
		gen:     s.gen,
		checkIn: timer{interval: checkIn, next: nextDue(anchor, now, checkIn)},
		welfare: timer{interval: welfare, next: nextDue(anchor, now, welfare)},
	}
	metrics.SetActiveTimers(len(s.timers))

	s.logger.WithFields(logrus.Fields{
		"event_id":       event.ID,
		"check_in_every": checkIn.String(),
		"welfare_every":  welfare.String(),
	}).Info("Event timers started")
}

// Stop отменяет оба таймера события. Безопасен для неизвестного события и для уже сработавшего таймера.
func (s *Scheduler) Stop(eventID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, running := s.timers[eventID]; !running {
		return
	}
	delete(s.timers, eventID)
	metrics.SetActiveTimers(len(s.timers))
	s.logger.WithField("event_id", eventID).Info("Event timers stopped")
}

func (s *Scheduler) Running(eventID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[eventID]
	return ok
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Tick поднимает все напоминания, срок которых наступил к моменту now.
// Пропущенные сроки не накапливаются: за один Tick таймер срабатывает не больше одного раза.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	for _, f := range s.collect(now) {
		s.fire(ctx, f)
	}
}

func (s *Scheduler) collect(now time.Time) []firing {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []firing
	for id, pair := range s.timers {
		if f, ok := advance(&pair.checkIn, now); ok {
			f.eventID, f.gen, f.kind = id, pair.gen, KindCheckIn
			due = append(due, f)
		}
		if f, ok := advance(&pair.welfare, now); ok {
			f.eventID, f.gen, f.kind = id, pair.gen, KindWelfareCheck
			due = append(due, f)
		}
	}
	return due
}

func advance(t *timer, now time.Time) (firing, bool) {
	if now.Before(t.next) {
		return firing{}, false
	}
	f := firing{due: t.next, interval: t.interval}
	for !now.Before(t.next) {
		t.next = t.next.Add(t.interval)
	}
	return f, true
}

// current - таймер все еще тот же, что сработал (не остановлен и не перезапущен)
func (s *Scheduler) current(f firing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair, ok := s.timers[f.eventID]
	return ok && pair.gen == f.gen
}

func (s *Scheduler) fire(ctx context.Context, f firing) {
	log := s.logger.WithFields(logrus.Fields{
		"event_id": f.eventID,
		"kind":     f.kind,
		"due_at":   f.due,
	})

	if !s.current(f) {
		log.Debug("Timer stopped before firing, prompt skipped")
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	// таблица могла отстать от хранилища: событие завершили или удалили на другой реплике
	event, err := s.store.GetEvent(opCtx, f.eventID)
	if apperr.Is(err, apperr.KindNotFound) || (err == nil && event.Status != models.EventStatusActive) {
		s.retire(f)
		log.Info("Event is no longer active, timers stopped")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to load event for prompt")
		return
	}

	if s.locker != nil {
		key := fmt.Sprintf("scheduler:fire:%s:%s:%d", f.eventID, f.kind, f.due.Unix())
		claimed, err := s.locker.Claim(opCtx, key, f.interval)
		if err != nil {
			log.WithError(err).Warn("Failed to claim prompt lock, firing locally")
		} else if !claimed {
			log.Debug("Prompt already raised by another replica")
			return
		}
	}

	assignments, err := s.store.ListAssignments(opCtx, f.eventID)
	if err != nil {
		log.WithError(err).Error("Failed to load roster for prompt")
		return
	}

	var active []string
	for _, a := range assignments {
		if a.Status == models.OperatorStatusActive {
			active = append(active, a.OperatorID)
		}
	}
	if len(active) == 0 {
		log.Debug("No active operators, prompt skipped")
		return
	}

	d, err := broadcast.NewDelta(f.kind.deltaType(), f.eventID, 0, s.clock(), broadcast.Prompt{
		EventID:         f.eventID,
		Operators:       active,
		IntervalMinutes: int(f.interval / time.Minute),
		DueAt:           f.due,
	})
	if err != nil {
		log.WithError(err).Error("Failed to build prompt delta")
		return
	}
	d.Recipients = active

	if !s.current(f) {
		log.Debug("Timer stopped while firing, prompt skipped")
		return
	}
	s.publisher.Publish(ctx, d)
	metrics.IncSchedulerPrompt(string(f.kind))
	log.WithField("operators", len(active)).Info("Prompt raised")
}

// Run крутит Tick до отмены ctx
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.WithField("tick", s.tick.String()).Info("Starting interval scheduler...")
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping interval scheduler.")
			return
		case <-ticker.C:
			s.Tick(ctx, s.clock())
		}
	}
}

// Rehydrate сверяет таблицу с хранилищем: заводит таймеры всех активных событий
// и снимает таймеры событий, которых среди активных больше нет.
// Таймеры, заведенные во время чтения списка, не трогает.
func (s *Scheduler) Rehydrate(ctx context.Context, lister EventLister) error {
	opCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	s.mu.Lock()
	listedAt := s.gen
	s.mu.Unlock()

	events, err := lister.ListEvents(opCtx, models.EventFilter{Status: models.EventStatusActive})
	if err != nil {
		return fmt.Errorf("scheduler: could not list active events: %w", err)
	}
	active := make(map[uuid.UUID]struct{}, len(events))
	for _, e := range events {
		active[e.ID] = struct{}{}
		s.Start(e)
	}

	s.mu.Lock()
	stale := 0
	for id, pair := range s.timers {
		if _, ok := active[id]; !ok && pair.gen <= listedAt {
			delete(s.timers, id)
			stale++
		}
	}
	metrics.SetActiveTimers(len(s.timers))
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"events":        len(events),
		"stale_stopped": stale,
	}).Info("Scheduler rehydrated")
	return nil
}

// Follow держит таблицу в согласии с изменениями событий на всех репликах:
// newEvent и eventUpdated заводят или снимают таймеры, eventDeleted снимает.
// После потери подписки таблица сверяется с хранилищем и подписка восстанавливается.
func (s *Scheduler) Follow(ctx context.Context, source Source, lister EventLister) {
	s.logger.Info("Scheduler is following event changes...")
	for {
		sub := source.Subscribe(nil, "")
		s.follow(ctx, sub)
		sub.Close()
		if ctx.Err() != nil {
			s.logger.Info("Scheduler stopped following event changes.")
			return
		}

		s.logger.Warn("Scheduler lost its delta subscription, resyncing timers")
		if err := s.Rehydrate(ctx, lister); err != nil {
			s.logger.WithError(err).Error("Failed to resync scheduler")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.tick):
		}
	}
}

func (s *Scheduler) follow(ctx context.Context, sub *broadcast.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-sub.C():
			if !ok {
				return
			}
			s.Apply(d)
		}
	}
}

// Apply переносит изменение события из дельты в таблицу таймеров
func (s *Scheduler) Apply(d broadcast.Delta) {
	switch d.Type {
	case broadcast.DeltaNewEvent, broadcast.DeltaEventUpdated:
		var event models.Event
		if err := json.Unmarshal(d.Payload, &event); err != nil {
			s.logger.WithError(err).WithField("event_id", d.EventID).Warn("Failed to decode event delta")
			return
		}
		event.ID = d.EventID
		s.Start(&event)
	case broadcast.DeltaEventDeleted:
		s.Stop(d.EventID)
	}
}

// retire снимает таймеры события, если они все еще те, что сработали
func (s *Scheduler) retire(f firing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pair, ok := s.timers[f.eventID]; ok && pair.gen == f.gen {
		delete(s.timers, f.eventID)
		metrics.SetActiveTimers(len(s.timers))
	}
}

// activation - точка отсчета сетки сроков. Документы без ActivatedAt считаются от создания.
func activation(event *models.Event, now time.Time) time.Time {
	switch {
	case event.ActivatedAt != nil && !event.ActivatedAt.IsZero():
		return *event.ActivatedAt
	case !event.CreatedAt.IsZero():
		return event.CreatedAt
	}
	return now
}

// nextDue - первый срок anchor + k*interval (k >= 1) строго позже now
func nextDue(anchor, now time.Time, interval time.Duration) time.Time {
	if now.Before(anchor) {
		return anchor.Add(interval)
	}
	k := int64(now.Sub(anchor)/interval) + 1
	return anchor.Add(time.Duration(k) * interval)
}

func minutes(value, fallback int) time.Duration {
	if value < 1 {
		value = fallback
	}
	return time.Duration(value) * time.Minute
}
