package broadcast

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Dispatcher - получатель дельт, пришедших из общего канала
type Dispatcher interface {
	Dispatch(d Delta)
}

// Relay читает канал Redis и передает дельты в локальную шину
type Relay struct {
	redisClient *redis.Client
	channel     string
	target      Dispatcher
	logger      *logrus.Logger
}

// NewRelay создает новый Relay
func NewRelay(client *redis.Client, channel string, target Dispatcher, logger *logrus.Logger) *Relay {
	return &Relay{
		redisClient: client,
		channel:     channel,
		target:      target,
		logger:      logger,
	}
}

// Start подписывается на канал до возврата, чтобы не потерять первые сообщения
func (r *Relay) Start(ctx context.Context) error {
	pubsub := r.redisClient.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}

	r.logger.WithField("channel", r.channel).Info("Starting redis delta relay...")
	go func() {
		defer pubsub.Close()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Stopping redis delta relay.")
				return
			case msg, ok := <-messages:
				if !ok {
					r.logger.Warn("Redis delta channel closed")
					return
				}
				r.handle(msg.Payload)
			}
		}
	}()
	return nil
}

func (r *Relay) handle(payload string) {
	var d Delta
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		r.logger.WithError(err).Error("Failed to unmarshal delta from Redis")
		return
	}
	r.target.Dispatch(d)
}
