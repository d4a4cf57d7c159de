package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/access"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

// LinkEvents связывает два события симметрично.
// Сначала пишется сторона id, затем targetID; если вторая запись не удалась, первая откатывается.
func (s *eventService) LinkEvents(ctx context.Context, principal models.Principal, id, targetID uuid.UUID) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "event",
		"method":    "LinkEvents",
		"event_id":  id,
		"target_id": targetID,
	})
	log.Info("Attempting to link events")

	if id == targetID {
		return nil, apperr.Validation("an event cannot be linked to itself")
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	current, err := s.repo.GetEvent(opCtx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get event for link: %w", err)
	}
	if err := access.Authorize(principal, current, access.ActionLink, ""); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetEvent(opCtx, targetID); err != nil {
		return nil, fmt.Errorf("service: could not get target event for link: %w", err)
	}

	addedHere, err := s.mutateEvent(opCtx, "link_events", id, func(e *models.Event) bool {
		return e.AddLink(targetID)
	})
	if err != nil {
		log.WithError(err).Error("Failed to link source event")
		return nil, fmt.Errorf("service: could not link event: %w", err)
	}

	if _, err := s.mutateEvent(opCtx, "link_events", targetID, func(e *models.Event) bool {
		return e.AddLink(id)
	}); err != nil {
		log.WithError(err).Error("Failed to link target event, compensating")
		if addedHere {
			if _, undoErr := s.mutateEvent(opCtx, "unlink_events", id, func(e *models.Event) bool {
				return e.RemoveLink(targetID)
			}); undoErr != nil {
				// асимметрия останется до ближайшего чтения события
				log.WithError(undoErr).Error("Failed to compensate one-sided link")
			}
		}
		return nil, fmt.Errorf("service: could not link target event: %w", err)
	}

	log.Info("Events linked successfully")
	return s.GetEvent(ctx, id)
}

// repairLinks лениво чинит граф связей при чтении:
// связь с удаленным событием снимается, односторонняя связь достраивается на второй стороне.
func (s *eventService) repairLinks(ctx context.Context, event *models.Event) *models.Event {
	if len(event.LinkedEvents) == 0 {
		return event
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "repairLinks",
		"event_id": event.ID,
	})

	var dangling []uuid.UUID
	for _, peerID := range event.LinkedEvents {
		peer, err := s.repo.GetEvent(ctx, peerID)
		switch {
		case apperr.Is(err, apperr.KindNotFound):
			dangling = append(dangling, peerID)
		case err != nil:
			log.WithError(err).WithField("peer_id", peerID).Warn("Failed to load linked event, repair skipped")
		case !peer.IsLinked(event.ID):
			log.WithField("peer_id", peerID).Info("Completing one-sided link")
			if _, err := s.mutateEvent(ctx, "repair_links", peerID, func(e *models.Event) bool {
				return e.AddLink(event.ID)
			}); err != nil {
				log.WithError(err).WithField("peer_id", peerID).Warn("Failed to complete one-sided link")
			}
		}
	}

	if len(dangling) == 0 {
		return event
	}

	log.WithField("dangling", dangling).Info("Dropping links to deleted events")
	changed, err := s.mutateEvent(ctx, "repair_links", event.ID, func(e *models.Event) bool {
		removed := false
		for _, d := range dangling {
			if e.RemoveLink(d) {
				removed = true
			}
		}
		return removed
	})
	if err != nil {
		log.WithError(err).Warn("Failed to drop dangling links")
	}

	repaired := event.Clone()
	for _, d := range dangling {
		repaired.RemoveLink(d)
	}
	if changed {
		if fresh, err := s.repo.GetEvent(ctx, event.ID); err == nil {
			return fresh
		}
	}
	return repaired
}

// unlinkPeers убирает id удаленного события у всех событий, которые на него ссылались.
// Источники: собственный список связей и обратный запрос, на случай односторонних связей.
func (s *eventService) unlinkPeers(ctx context.Context, deleted *models.Event) {
	peers := make(map[uuid.UUID]struct{}, len(deleted.LinkedEvents))
	for _, id := range deleted.LinkedEvents {
		peers[id] = struct{}{}
	}

	referencing, err := s.repo.ListLinkedTo(ctx, deleted.ID)
	if err != nil {
		s.logger.WithError(err).WithField("event_id", deleted.ID).Warn("Failed to query events linked to deleted event")
	}
	for _, id := range referencing {
		peers[id] = struct{}{}
	}

	for peerID := range peers {
		_, err := s.mutateEvent(ctx, "unlink_events", peerID, func(e *models.Event) bool {
			return e.RemoveLink(deleted.ID)
		})
		if err != nil && !apperr.Is(err, apperr.KindNotFound) {
			// висячая ссылка будет снята при следующем чтении соседа
			s.logger.WithError(err).WithFields(logrus.Fields{
				"event_id": deleted.ID,
				"peer_id":  peerID,
			}).Warn("Failed to unlink deleted event from peer")
		}
	}
}
