package service

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks . Broadcaster,EventCache,EventService,LogService,PresenceService,Scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/config"
	"github.com/shenikar/raynet_coordinator/internal/metrics"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

// EventRepository определяет контракт хранилища документов событий.
// Каждая запись, порождающая дельту, проставляет в модель порядковый номер Seq события.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	// UpdateEvent сравнивает event.Version с сохраненной версией; при расхождении - Conflict.
	// clearZones - зоны, ссылки на которые нужно снять с назначений в той же транзакции.
	UpdateEvent(ctx context.Context, event *models.Event, clearZones []uuid.UUID) ([]models.OperatorAssignment, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) (int64, error)
	ListLinkedTo(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

// AssignmentRepository определяет контракт хранилища назначений операторов.
// Запись назначения сравнивает версию только самой строки назначения.
type AssignmentRepository interface {
	ListAssignments(ctx context.Context, eventID uuid.UUID) ([]models.OperatorAssignment, error)
	GetAssignment(ctx context.Context, eventID uuid.UUID, operatorID string) (*models.OperatorAssignment, error)
	// AddAssignment возвращает false, если назначение уже существовало
	AddAssignment(ctx context.Context, assignment *models.OperatorAssignment) (bool, error)
	UpdateAssignment(ctx context.Context, assignment *models.OperatorAssignment) error
	RemoveAssignment(ctx context.Context, eventID uuid.UUID, operatorID string) (int64, error)
}

// LogRepository определяет контракт хранилища радиожурнала
type LogRepository interface {
	CreateLog(ctx context.Context, entry *models.LogEntry) error
	GetLog(ctx context.Context, id uuid.UUID) (*models.LogEntry, error)
	ListLogs(ctx context.Context, filter models.LogFilter) ([]*models.LogEntry, error)
	UpdateLog(ctx context.Context, entry *models.LogEntry) error
	DeleteLog(ctx context.Context, entry *models.LogEntry) (int64, error)
	// RecordWelfareCheck в одной транзакции обновляет назначение и добавляет запись CHECK-IN
	RecordWelfareCheck(ctx context.Context, assignment *models.OperatorAssignment, entry *models.LogEntry) error
}

type Repository interface {
	EventRepository
	AssignmentRepository
	LogRepository
}

// EventCache - кеш документов событий. Промах - (nil, nil).
type EventCache interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	SetEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

// Broadcaster принимает дельты; Publish не блокирует вызывающего
type Broadcaster interface {
	Publish(ctx context.Context, d broadcast.Delta)
}

// Scheduler - таблица интервальных таймеров
type Scheduler interface {
	Start(event *models.Event)
	Stop(eventID uuid.UUID)
}

// EventService определяет контракт агрегата события и графа связей
type EventService interface {
	CreateEvent(ctx context.Context, principal models.Principal, event *models.Event) (*models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, principal models.Principal, id uuid.UUID, patch models.EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, principal models.Principal, id uuid.UUID) error
	LinkEvents(ctx context.Context, principal models.Principal, id, targetID uuid.UUID) (*models.Event, error)
	AddOperator(ctx context.Context, principal models.Principal, id uuid.UUID, operatorID string) (*models.OperatorAssignment, error)
	RemoveOperator(ctx context.Context, principal models.Principal, id uuid.UUID, operatorID string) error
	ListOperators(ctx context.Context, id uuid.UUID) ([]models.OperatorAssignment, error)
	LocateZones(ctx context.Context, id uuid.UUID, position models.Point) (*models.PositionReport, error)
}

// PresenceService определяет контракт машины состояний присутствия оператора
type PresenceService interface {
	CheckIn(ctx context.Context, principal models.Principal, eventID uuid.UUID, operatorID string, position *models.Point) (*models.OperatorAssignment, error)
	WelfareCheck(ctx context.Context, principal models.Principal, eventID uuid.UUID, operatorID string) (*models.OperatorAssignment, *models.LogEntry, error)
	SetStatus(ctx context.Context, principal models.Principal, eventID uuid.UUID, operatorID string, status models.OperatorStatus, zoneID *uuid.UUID) (*models.OperatorAssignment, error)
}

// LogService определяет контракт радиожурнала
type LogService interface {
	CreateLog(ctx context.Context, principal models.Principal, entry *models.LogEntry) (*models.LogEntry, error)
	GetLog(ctx context.Context, id uuid.UUID) (*models.LogEntry, error)
	ListLogs(ctx context.Context, filter models.LogFilter) ([]*models.LogEntry, error)
	UpdateLog(ctx context.Context, principal models.Principal, id uuid.UUID, patch models.LogPatch) (*models.LogEntry, error)
	DeleteLog(ctx context.Context, principal models.Principal, id uuid.UUID) error
}

// core - общие зависимости сервисов ядра
type core struct {
	repo        Repository
	cache       EventCache
	broadcaster Broadcaster
	scheduler   Scheduler
	logger      *logrus.Logger
	cfg         *config.Config
	clock       func() time.Time
}

func newCore(repo Repository, cache EventCache, broadcaster Broadcaster, scheduler Scheduler, logger *logrus.Logger, cfg *config.Config) core {
	if cache == nil {
		cache = noopCache{}
	}
	return core{
		repo:        repo,
		cache:       cache,
		broadcaster: broadcaster,
		scheduler:   scheduler,
		logger:      logger,
		cfg:         cfg,
		clock:       time.Now,
	}
}

func (c *core) now() time.Time {
	return c.clock().UTC()
}

// withTimeout - неявный таймаут каждой операции хранилища
func (c *core) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.cfg.StoreTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// retryOnConflict повторяет read-modify-write один раз; второй Conflict уходит вызывающему
func (c *core) retryOnConflict(operation string, fn func() error) error {
	err := fn()
	if !apperr.Is(err, apperr.KindConflict) {
		return err
	}
	metrics.IncStoreConflict(operation)
	c.logger.WithField("operation", operation).Debug("Version conflict, retrying once")

	err = fn()
	if apperr.Is(err, apperr.KindConflict) {
		metrics.IncStoreConflict(operation)
	}
	return err
}

func (c *core) invalidate(ctx context.Context, ids ...uuid.UUID) {
	for _, id := range ids {
		if err := c.cache.DeleteEvent(ctx, id); err != nil {
			c.logger.WithError(err).WithField("event_id", id).Warn("Failed to invalidate event cache")
		}
	}
}

type noopCache struct{}

func (noopCache) GetEvent(context.Context, uuid.UUID) (*models.Event, error) { return nil, nil }
func (noopCache) SetEvent(context.Context, *models.Event) error              { return nil }
func (noopCache) DeleteEvent(context.Context, uuid.UUID) error               { return nil }
