package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/access"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/config"
	"github.com/shenikar/raynet_coordinator/internal/geo"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

const welfareCheckMessage = "Welfare check confirmed"

type presenceService struct {
	core
}

func NewPresenceService(repo Repository, cache EventCache, broadcaster Broadcaster, scheduler Scheduler, logger *logrus.Logger, cfg *config.Config) PresenceService {
	return &presenceService{core: newCore(repo, cache, broadcaster, scheduler, logger, cfg)}
}

// CheckIn переводит оператора в ACTIVE и фиксирует время отметки.
// Если передана позиция, текущая зона подбирается по первой содержащей ее зоне.
func (s *presenceService) CheckIn(ctx context.Context, principal models.Principal, eventID uuid.UUID, operatorID string, position *models.Point) (*models.OperatorAssignment, error) {
	if operatorID == "" {
		operatorID = principal.ID
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":     "presence",
		"method":      "CheckIn",
		"event_id":    eventID,
		"operator_id": operatorID,
	})
	log.Info("Operator checking in")

	if position != nil {
		if err := geo.ValidatePoint(*position); err != nil {
			return nil, apperr.Validation("position: %v", err)
		}
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	// зона подбирается заново на каждой попытке: хранилище отвергает ссылку на зону,
	// снятую параллельным обновлением события
	var (
		event      *models.Event
		assignment *models.OperatorAssignment
	)
	err := s.retryOnConflict("check_in", func() error {
		e, err := s.authorizedEvent(opCtx, principal, eventID, access.ActionCheckIn, operatorID)
		if err != nil {
			return err
		}
		a, err := s.assignment(opCtx, eventID, operatorID)
		if err != nil {
			return err
		}
		now := s.now()
		a.Status = models.OperatorStatusActive
		a.LastCheckIn = &now
		a.UpdatedAt = now
		if position != nil {
			if zones := geo.ZonesContaining(e.Zones, *position); len(zones) > 0 {
				id := zones[0].ID
				a.CurrentZone = &id
			}
		}
		if err := s.repo.UpdateAssignment(opCtx, a); err != nil {
			return err
		}
		event, assignment = e, a
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Check-in failed")
		return nil, fmt.Errorf("service: could not check in: %w", err)
	}

	s.publishStatusChanged(ctx, assignment)
	log.Info("Operator checked in")
	return resolveAssignment(event, *assignment), nil
}

// WelfareCheck подтверждает самочувствие: статус не меняется, время отметки обновляется,
// в журнал добавляется запись CHECK-IN в той же транзакции.
func (s *presenceService) WelfareCheck(ctx context.Context, principal models.Principal, eventID uuid.UUID, operatorID string) (*models.OperatorAssignment, *models.LogEntry, error) {
	if operatorID == "" {
		operatorID = principal.ID
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":     "presence",
		"method":      "WelfareCheck",
		"event_id":    eventID,
		"operator_id": operatorID,
	})
	log.Info("Operator confirming welfare check")

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.authorizedEvent(opCtx, principal, eventID, access.ActionWelfareCheck, operatorID)
	if err != nil {
		return nil, nil, err
	}

	callsign := operatorID
	if principal.ID == operatorID && principal.Callsign != "" {
		callsign = principal.Callsign
	}
	talkgroup := ""
	if len(event.Talkgroups) > 0 {
		talkgroup = event.Talkgroups[0].Name
	}
	channel := ""
	if ch := event.ChannelFor(operatorID); ch != nil {
		channel = ch.Name
	}

	var (
		assignment *models.OperatorAssignment
		entry      *models.LogEntry
	)
	err = s.retryOnConflict("welfare_check", func() error {
		a, err := s.assignment(opCtx, eventID, operatorID)
		if err != nil {
			return err
		}
		now := s.now()
		a.LastCheckIn = &now
		a.UpdatedAt = now

		l := &models.LogEntry{
			ID:          uuid.New(),
			EventID:     eventID,
			OperatorID:  operatorID,
			Callsign:    callsign,
			Timestamp:   now,
			MessageType: models.MessageTypeCheckIn,
			Message:     welfareCheckMessage,
			Talkgroup:   talkgroup,
			Channel:     channel,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.RecordWelfareCheck(opCtx, a, l); err != nil {
			return err
		}
		assignment, entry = a, l
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Welfare check failed")
		return nil, nil, fmt.Errorf("service: could not record welfare check: %w", err)
	}

	s.publishStatusChanged(ctx, assignment)
	s.publish(ctx, broadcast.DeltaNewLog, eventID, entry.Seq, entry)
	log.WithField("log_id", entry.ID).Info("Welfare check recorded")
	return resolveAssignment(event, *assignment), entry, nil
}

// SetStatus ставит произвольный статус и, если передана, текущую зону. Переход из любого состояния разрешен.
func (s *presenceService) SetStatus(ctx context.Context, principal models.Principal, eventID uuid.UUID, operatorID string, status models.OperatorStatus, zoneID *uuid.UUID) (*models.OperatorAssignment, error) {
	if operatorID == "" {
		operatorID = principal.ID
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":     "presence",
		"method":      "SetStatus",
		"event_id":    eventID,
		"operator_id": operatorID,
		"status":      status,
	})
	log.Info("Operator status change requested")

	if !status.Valid() {
		return nil, apperr.Validation("unknown operator status %q", status)
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		event      *models.Event
		assignment *models.OperatorAssignment
	)
	err := s.retryOnConflict("set_status", func() error {
		e, err := s.authorizedEvent(opCtx, principal, eventID, access.ActionSetStatus, operatorID)
		if err != nil {
			return err
		}
		if zoneID != nil && e.FindZone(*zoneID) == nil {
			return apperr.Validation("zone %s does not exist in event %s", *zoneID, eventID)
		}
		a, err := s.assignment(opCtx, eventID, operatorID)
		if err != nil {
			return err
		}
		a.Status = status
		if zoneID != nil {
			zone := *zoneID
			a.CurrentZone = &zone
		}
		a.UpdatedAt = s.now()
		if err := s.repo.UpdateAssignment(opCtx, a); err != nil {
			return err
		}
		event, assignment = e, a
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Status change failed")
		return nil, fmt.Errorf("service: could not set operator status: %w", err)
	}

	s.publishStatusChanged(ctx, assignment)
	log.Info("Operator status changed")
	return resolveAssignment(event, *assignment), nil
}

func (s *presenceService) authorizedEvent(ctx context.Context, principal models.Principal, eventID uuid.UUID, action access.Action, operatorID string) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get event: %w", err)
	}
	if err := access.Authorize(principal, event, action, operatorID); err != nil {
		return nil, err
	}
	return event, nil
}

// assignment читает назначение; отсутствие в ростере - NotAssigned
func (s *presenceService) assignment(ctx context.Context, eventID uuid.UUID, operatorID string) (*models.OperatorAssignment, error) {
	a, err := s.repo.GetAssignment(ctx, eventID, operatorID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.NotAssigned("operator %s is not assigned to event %s", operatorID, eventID)
	}
	return a, err
}
