package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/access"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/config"
	"github.com/shenikar/raynet_coordinator/internal/geo"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

type eventService struct {
	core
}

func NewEventService(repo Repository, cache EventCache, broadcaster Broadcaster, scheduler Scheduler, logger *logrus.Logger, cfg *config.Config) EventService {
	return &eventService{core: newCore(repo, cache, broadcaster, scheduler, logger, cfg)}
}

// CreateEvent создает событие; создатель становится его владельцем
func (s *eventService) CreateEvent(ctx context.Context, principal models.Principal, event *models.Event) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "event",
		"method":    "CreateEvent",
		"principal": principal.ID,
		"name":      event.Name,
	})
	log.Info("Attempting to create a new event")

	if err := access.Authorize(principal, nil, access.ActionCreate, ""); err != nil {
		return nil, err
	}

	now := s.now()
	event.ID = uuid.New()
	event.CreatedBy = principal.ID
	event.LinkedEvents = nil
	event.Operators = nil
	event.CreatedAt = now
	event.UpdatedAt = now
	event.ActivatedAt = nil
	event.ApplyDefaults()
	if event.Status == models.EventStatusActive {
		event.ActivatedAt = &now
	}

	if err := validateEvent(event); err != nil {
		log.WithError(err).Warn("Event failed validation")
		return nil, err
	}
	if err := validateChannelOperators(event, nil); err != nil {
		return nil, err
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.CreateEvent(opCtx, event); err != nil {
		log.WithError(err).Error("Failed to create event in repository")
		return nil, fmt.Errorf("service: could not create event: %w", err)
	}

	s.publish(ctx, broadcast.DeltaNewEvent, event.ID, event.Seq, event)
	s.scheduler.Start(event)

	log.WithField("event_id", event.ID).Info("Event created successfully")
	return event, nil
}

// GetEvent получает событие по ID вместе с ростером.
// При чтении из БД несимметричные связи чинятся, висячие слабые ссылки обнуляются в ответе.
func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "GetEvent",
		"event_id": id,
	})
	log.Debug("Fetching event by ID")

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.cache.GetEvent(opCtx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get event from cache")
	}

	if event == nil {
		event, err = s.repo.GetEvent(opCtx, id)
		if err != nil {
			log.WithError(err).Warn("Failed to get event in repository")
			return nil, fmt.Errorf("service: could not get event: %w", err)
		}

		event = s.repairLinks(opCtx, event)

		if err := s.cache.SetEvent(opCtx, event); err != nil {
			log.WithError(err).Warn("Failed to put event into cache")
		}
	}

	if err := s.attachRoster(opCtx, event); err != nil {
		log.WithError(err).Error("Failed to load event roster")
		return nil, fmt.Errorf("service: could not get event roster: %w", err)
	}
	return event, nil
}

// ListEvents возвращает события, свежие по дате начала первыми
func (s *eventService) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "event",
		"method":  "ListEvents",
		"status":  filter.Status,
	})

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Validation("unknown event status %q", filter.Status)
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, err := s.repo.ListEvents(opCtx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list events in repository")
		return nil, fmt.Errorf("service: could not list events: %w", err)
	}

	log.WithField("count", len(events)).Debug("Events listed successfully")
	return events, nil
}

// UpdateEvent применяет частичное обновление как один read-modify-write с проверкой версии
func (s *eventService) UpdateEvent(ctx context.Context, principal models.Principal, id uuid.UUID, patch models.EventPatch) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "event",
		"method":    "UpdateEvent",
		"event_id":  id,
		"principal": principal.ID,
	})
	log.Info("Attempting to update event")

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		updated *models.Event
		cleared []models.OperatorAssignment
	)
	err := s.retryOnConflict("update_event", func() error {
		current, err := s.repo.GetEvent(opCtx, id)
		if err != nil {
			return err
		}
		if err := access.Authorize(principal, current, access.ActionUpdate, ""); err != nil {
			return err
		}

		next := current.Clone()
		removedZones, err := applyEventPatch(next, patch)
		if err != nil {
			return err
		}
		next.ApplyDefaults()
		if err := validateEvent(next); err != nil {
			return err
		}
		if next.Status == models.EventStatusActive && current.Status != models.EventStatusActive {
			activatedAt := s.now()
			next.ActivatedAt = &activatedAt
		}

		roster, err := s.repo.ListAssignments(opCtx, id)
		if err != nil {
			return err
		}
		if err := validateChannelOperators(next, roster); err != nil {
			return err
		}

		next.UpdatedAt = s.now()
		cleared, err = s.repo.UpdateEvent(opCtx, next, removedZones)
		if err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Failed to update event")
		return nil, fmt.Errorf("service: could not update event: %w", err)
	}

	s.invalidate(opCtx, id)
	s.publishEventUpdated(ctx, updated)
	for i := range cleared {
		s.publishStatusChanged(ctx, &cleared[i])
	}
	s.scheduler.Start(updated)

	if err := s.attachRoster(opCtx, updated); err != nil {
		log.WithError(err).Warn("Failed to load roster after update")
	}

	log.WithField("cleared_zone_refs", len(cleared)).Info("Event updated successfully")
	return updated, nil
}

// DeleteEvent удаляет документ, останавливает таймеры и вычищает id события у связанных событий
func (s *eventService) DeleteEvent(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "event",
		"method":    "DeleteEvent",
		"event_id":  id,
		"principal": principal.ID,
	})
	log.Info("Attempting to delete event")

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	current, err := s.repo.GetEvent(opCtx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent event")
		return fmt.Errorf("service: could not get event for delete: %w", err)
	}
	if err := access.Authorize(principal, current, access.ActionDelete, ""); err != nil {
		return err
	}

	seq, err := s.repo.DeleteEvent(opCtx, id)
	if err != nil {
		log.WithError(err).Error("Failed to delete event in repository")
		return fmt.Errorf("service: could not delete event: %w", err)
	}

	s.scheduler.Stop(id)
	s.invalidate(opCtx, id)
	s.publish(ctx, broadcast.DeltaEventDeleted, id, seq, broadcast.Removal{
		ID:        id.String(),
		EventID:   id,
		Timestamp: s.now(),
	})

	s.unlinkPeers(opCtx, current)

	log.Info("Event deleted successfully")
	return nil
}

// AddOperator добавляет оператора в ростер в статусе OFFLINE; повторный вызов ничего не меняет
func (s *eventService) AddOperator(ctx context.Context, principal models.Principal, id uuid.UUID, operatorID string) (*models.OperatorAssignment, error) {
	if operatorID == "" {
		operatorID = principal.ID
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":     "event",
		"method":      "AddOperator",
		"event_id":    id,
		"operator_id": operatorID,
	})
	log.Info("Attempting to add operator to roster")

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.repo.GetEvent(opCtx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get event for roster add: %w", err)
	}
	if err := access.Authorize(principal, event, access.ActionAddOperator, operatorID); err != nil {
		return nil, err
	}

	assignment := &models.OperatorAssignment{
		EventID:    id,
		OperatorID: operatorID,
		Status:     models.OperatorStatusOffline,
		UpdatedAt:  s.now(),
	}
	created, err := s.repo.AddAssignment(opCtx, assignment)
	if err != nil {
		log.WithError(err).Error("Failed to add assignment in repository")
		return nil, fmt.Errorf("service: could not add operator: %w", err)
	}
	if !created {
		existing, err := s.repo.GetAssignment(opCtx, id, operatorID)
		if err != nil {
			return nil, fmt.Errorf("service: could not get existing assignment: %w", err)
		}
		log.Debug("Operator already on roster")
		return resolveAssignment(event, *existing), nil
	}

	s.publishStatusChanged(ctx, assignment)
	log.Info("Operator added to roster")
	return assignment, nil
}

// RemoveOperator убирает назначение и снимает закрепление каналов за оператором
func (s *eventService) RemoveOperator(ctx context.Context, principal models.Principal, id uuid.UUID, operatorID string) error {
	if operatorID == "" {
		operatorID = principal.ID
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":     "event",
		"method":      "RemoveOperator",
		"event_id":    id,
		"operator_id": operatorID,
	})
	log.Info("Attempting to remove operator from roster")

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.repo.GetEvent(opCtx, id)
	if err != nil {
		return fmt.Errorf("service: could not get event for roster removal: %w", err)
	}
	if err := access.Authorize(principal, event, access.ActionRemoveOperator, operatorID); err != nil {
		return err
	}

	seq, err := s.repo.RemoveAssignment(opCtx, id, operatorID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.NotAssigned("operator %s is not assigned to event %s", operatorID, id)
		}
		log.WithError(err).Error("Failed to remove assignment in repository")
		return fmt.Errorf("service: could not remove operator: %w", err)
	}

	s.publish(ctx, broadcast.DeltaOperatorRemoved, id, seq, broadcast.Removal{
		ID:         operatorID,
		EventID:    id,
		OperatorID: operatorID,
		Timestamp:  s.now(),
	})

	if event.ChannelFor(operatorID) != nil {
		_, err := s.mutateEvent(opCtx, "unassign_channels", id, func(e *models.Event) bool {
			changed := false
			for i := range e.Channels {
				if e.Channels[i].AssignedTo == operatorID {
					e.Channels[i].AssignedTo = ""
					changed = true
				}
			}
			return changed
		})
		if err != nil {
			// в ответах ссылка все равно обнуляется при чтении
			log.WithError(err).Warn("Failed to clear channel assignments of removed operator")
		}
	}

	log.Info("Operator removed from roster")
	return nil
}

// ListOperators возвращает ростер события с разрешенными ссылками на зоны
func (s *eventService) ListOperators(ctx context.Context, id uuid.UUID) ([]models.OperatorAssignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "ListOperators",
		"event_id": id,
	})

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.repo.GetEvent(opCtx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get event for roster: %w", err)
	}
	if err := s.attachRoster(opCtx, event); err != nil {
		log.WithError(err).Error("Failed to list assignments in repository")
		return nil, fmt.Errorf("service: could not list operators: %w", err)
	}
	return event.Operators, nil
}

// LocateZones проверяет точку против радиуса события и всех его зон
func (s *eventService) LocateZones(ctx context.Context, id uuid.UUID, position models.Point) (*models.PositionReport, error) {
	if err := geo.ValidatePoint(position); err != nil {
		return nil, apperr.Validation("position: %v", err)
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.cache.GetEvent(opCtx, id)
	if err != nil || event == nil {
		event, err = s.repo.GetEvent(opCtx, id)
		if err != nil {
			return nil, fmt.Errorf("service: could not get event for locate: %w", err)
		}
	}

	report := &models.PositionReport{
		Position:    position,
		Zones:       geo.ZonesContaining(event.Zones, position),
		InsideEvent: true,
	}
	if report.Zones == nil {
		report.Zones = []models.Zone{}
	}
	if event.Location.Radius != nil {
		report.InsideEvent = geo.ContainsRadius(event.Location.Coordinates, *event.Location.Radius, position)
	}
	return report, nil
}

// mutateEvent - read-modify-write документа с одной повторной попыткой при конфликте версий.
// mutate возвращает false, если менять нечего; тогда запись и дельта не делаются.
func (s *eventService) mutateEvent(ctx context.Context, operation string, id uuid.UUID, mutate func(e *models.Event) bool) (bool, error) {
	var updated *models.Event
	err := s.retryOnConflict(operation, func() error {
		updated = nil
		current, err := s.repo.GetEvent(ctx, id)
		if err != nil {
			return err
		}
		if !mutate(current) {
			return nil
		}
		current.UpdatedAt = s.now()
		if _, err := s.repo.UpdateEvent(ctx, current, nil); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil || updated == nil {
		return false, err
	}

	s.invalidate(ctx, id)
	s.publishEventUpdated(ctx, updated)
	return true, nil
}

// attachRoster заполняет Operators и обнуляет висячие слабые ссылки
func (c *core) attachRoster(ctx context.Context, event *models.Event) error {
	roster, err := c.repo.ListAssignments(ctx, event.ID)
	if err != nil {
		return err
	}

	onRoster := make(map[string]struct{}, len(roster))
	event.Operators = make([]models.OperatorAssignment, 0, len(roster))
	for _, a := range roster {
		onRoster[a.OperatorID] = struct{}{}
		event.Operators = append(event.Operators, *resolveAssignment(event, a))
	}
	for i := range event.Channels {
		if _, ok := onRoster[event.Channels[i].AssignedTo]; !ok {
			event.Channels[i].AssignedTo = ""
		}
	}
	return nil
}

// resolveAssignment - ссылка на зону либо разрешается в существующую зону, либо становится null
func resolveAssignment(event *models.Event, a models.OperatorAssignment) *models.OperatorAssignment {
	if a.CurrentZone != nil && event.FindZone(*a.CurrentZone) == nil {
		a.CurrentZone = nil
	}
	return &a
}

// applyEventPatch переносит переданные поля; возвращает id зон, исчезнувших из события
func applyEventPatch(e *models.Event, patch models.EventPatch) ([]uuid.UUID, error) {
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperr.Validation("unknown event status %q", *patch.Status)
		}
		e.Status = *patch.Status
	}
	if patch.StartDate != nil {
		e.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		end := *patch.EndDate
		e.EndDate = &end
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.CheckInIntervalMinutes != nil {
		if *patch.CheckInIntervalMinutes < 1 {
			return nil, apperr.Validation("check_in_interval_minutes must be at least 1")
		}
		e.CheckInIntervalMinutes = *patch.CheckInIntervalMinutes
	}
	if patch.WelfareCheckIntervalMinutes != nil {
		if *patch.WelfareCheckIntervalMinutes < 1 {
			return nil, apperr.Validation("welfare_check_interval_minutes must be at least 1")
		}
		e.WelfareCheckIntervalMinutes = *patch.WelfareCheckIntervalMinutes
	}
	if patch.Channels != nil {
		e.Channels = slices.Clone(patch.Channels)
	}
	if patch.Talkgroups != nil {
		e.Talkgroups = slices.Clone(patch.Talkgroups)
	}

	var removed []uuid.UUID
	if patch.Zones != nil {
		kept := make(map[uuid.UUID]struct{}, len(patch.Zones))
		for _, z := range patch.Zones {
			if z.ID != uuid.Nil {
				kept[z.ID] = struct{}{}
			}
		}
		for _, z := range e.Zones {
			if _, ok := kept[z.ID]; !ok {
				removed = append(removed, z.ID)
			}
		}
		e.Zones = make([]models.Zone, len(patch.Zones))
		for i, z := range patch.Zones {
			z.Coordinates = slices.Clone(z.Coordinates)
			e.Zones[i] = z
		}
	}
	return removed, nil
}
