package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/sirupsen/logrus"
)

// publish отдает дельту шине после успешной записи. Ошибка сериализации не откатывает запись.
func (c *core) publish(ctx context.Context, deltaType broadcast.DeltaType, eventID uuid.UUID, seq int64, payload any) {
	d, err := broadcast.NewDelta(deltaType, eventID, seq, c.now(), payload)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"event_id": eventID,
			"type":     deltaType,
		}).Error("Failed to build delta")
		return
	}
	c.broadcaster.Publish(ctx, d)
}

func (c *core) publishStatusChanged(ctx context.Context, a *models.OperatorAssignment) {
	c.publish(ctx, broadcast.DeltaOperatorStatusChanged, a.EventID, a.Seq, a.StatusChange(a.UpdatedAt))
}

func (c *core) publishEventUpdated(ctx context.Context, event *models.Event) {
	c.publish(ctx, broadcast.DeltaEventUpdated, event.ID, event.Seq, event)
}
