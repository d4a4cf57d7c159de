package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/access"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/config"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

type logService struct {
	core
}

func NewLogService(repo Repository, cache EventCache, broadcaster Broadcaster, scheduler Scheduler, logger *logrus.Logger, cfg *config.Config) LogService {
	return &logService{core: newCore(repo, cache, broadcaster, scheduler, logger, cfg)}
}

// CreateLog добавляет запись в журнал события от имени principal
func (s *logService) CreateLog(ctx context.Context, principal models.Principal, entry *models.LogEntry) (*models.LogEntry, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "log",
		"method":   "CreateLog",
		"event_id": entry.EventID,
	})
	log.Info("Attempting to create log entry")

	if !principal.Authenticated() {
		return nil, apperr.Unauthenticated("authentication required")
	}

	now := s.now()
	entry.ID = uuid.New()
	entry.OperatorID = principal.ID
	if strings.TrimSpace(entry.Callsign) == "" {
		entry.Callsign = principal.Callsign
	}
	if entry.MessageType == "" {
		entry.MessageType = models.MessageTypeInfo
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := validateLogEntry(entry); err != nil {
		return nil, err
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.repo.GetEvent(opCtx, entry.EventID); err != nil {
		return nil, fmt.Errorf("service: could not get event for log entry: %w", err)
	}
	if err := s.repo.CreateLog(opCtx, entry); err != nil {
		log.WithError(err).Error("Failed to create log entry in repository")
		return nil, fmt.Errorf("service: could not create log entry: %w", err)
	}

	s.publish(ctx, broadcast.DeltaNewLog, entry.EventID, entry.Seq, entry)
	log.WithField("log_id", entry.ID).Info("Log entry created successfully")
	return entry, nil
}

// GetLog получает запись журнала по ID
func (s *logService) GetLog(ctx context.Context, id uuid.UUID) (*models.LogEntry, error) {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	entry, err := s.repo.GetLog(opCtx, id)
	if err != nil {
		s.logger.WithError(err).WithField("log_id", id).Warn("Failed to get log entry in repository")
		return nil, fmt.Errorf("service: could not get log entry: %w", err)
	}
	return entry, nil
}

// ListLogs возвращает историю журнала, новые записи первыми
func (s *logService) ListLogs(ctx context.Context, filter models.LogFilter) ([]*models.LogEntry, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "log",
		"method":    "ListLogs",
		"talkgroup": filter.Talkgroup,
		"channel":   filter.Channel,
	})

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperr.Validation("end_date must not be before start_date")
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	entries, err := s.repo.ListLogs(opCtx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list log entries in repository")
		return nil, fmt.Errorf("service: could not list log entries: %w", err)
	}
	return entries, nil
}

// UpdateLog правит запись; разрешено автору, создателю события и администратору
func (s *logService) UpdateLog(ctx context.Context, principal models.Principal, id uuid.UUID, patch models.LogPatch) (*models.LogEntry, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "log",
		"method":  "UpdateLog",
		"log_id":  id,
	})
	log.Info("Attempting to update log entry")

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	entry, err := s.authorizedEntry(opCtx, principal, id)
	if err != nil {
		return nil, err
	}

	if patch.Timestamp != nil {
		entry.Timestamp = *patch.Timestamp
	}
	if patch.MessageType != nil {
		entry.MessageType = *patch.MessageType
	}
	if patch.Message != nil {
		entry.Message = *patch.Message
	}
	if patch.Talkgroup != nil {
		entry.Talkgroup = *patch.Talkgroup
	}
	if patch.Channel != nil {
		entry.Channel = *patch.Channel
	}
	if err := validateLogEntry(entry); err != nil {
		return nil, err
	}
	entry.UpdatedAt = s.now()

	if err := s.repo.UpdateLog(opCtx, entry); err != nil {
		log.WithError(err).Error("Failed to update log entry in repository")
		return nil, fmt.Errorf("service: could not update log entry: %w", err)
	}

	s.publish(ctx, broadcast.DeltaLogUpdated, entry.EventID, entry.Seq, entry)
	log.Info("Log entry updated successfully")
	return entry, nil
}

// DeleteLog удаляет запись журнала
func (s *logService) DeleteLog(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "log",
		"method":  "DeleteLog",
		"log_id":  id,
	})
	log.Info("Attempting to delete log entry")

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	entry, err := s.authorizedEntry(opCtx, principal, id)
	if err != nil {
		return err
	}

	seq, err := s.repo.DeleteLog(opCtx, entry)
	if err != nil {
		log.WithError(err).Error("Failed to delete log entry in repository")
		return fmt.Errorf("service: could not delete log entry: %w", err)
	}

	s.publish(ctx, broadcast.DeltaLogDeleted, entry.EventID, seq, broadcast.Removal{
		ID:         id.String(),
		EventID:    entry.EventID,
		OperatorID: entry.OperatorID,
		Timestamp:  s.now(),
	})
	log.Info("Log entry deleted successfully")
	return nil
}

func (s *logService) authorizedEntry(ctx context.Context, principal models.Principal, id uuid.UUID) (*models.LogEntry, error) {
	entry, err := s.repo.GetLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get log entry: %w", err)
	}
	event, err := s.repo.GetEvent(ctx, entry.EventID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get event of log entry: %w", err)
	}
	if err := access.Authorize(principal, event, access.ActionEditLog, entry.OperatorID); err != nil {
		return nil, err
	}
	return entry, nil
}
