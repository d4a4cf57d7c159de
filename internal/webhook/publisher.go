package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/sirupsen/logrus"
)

const (
	webhookQueueKey = "raynet:webhook_deltas"
)

// Source - откуда Sink берет дельты
type Source interface {
	Subscribe(topics []uuid.UUID, principalID string) *broadcast.Subscription
}

// Enqueuer ставит дельту в очередь доставки
type Enqueuer interface {
	Publish(ctx context.Context, d broadcast.Delta) error
}

// RedisWebhookPublisher ставит дельты в очередь Redis для воркера
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish кладет дельту в левую часть списка; воркер забирает справа
func (p *RedisWebhookPublisher) Publish(ctx context.Context, d broadcast.Delta) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook delta: %w", err)
	}
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook delta to Redis: %w", err)
	}
	return nil
}

// Sink слушает шину и отправляет в очередь только выбранные типы дельт.
// Шина каждой реплики видит дельты всех реплик, поэтому в очередь попадают
// только дельты, возникшие на этой реплике (origin). Пустой origin - все дельты.
type Sink struct {
	source    Source
	publisher Enqueuer
	types     map[broadcast.DeltaType]struct{}
	origin    string
	logger    *logrus.Logger
}

func NewSink(source Source, publisher Enqueuer, deltaTypes []string, origin string, logger *logrus.Logger) *Sink {
	types := make(map[broadcast.DeltaType]struct{}, len(deltaTypes))
	for _, t := range deltaTypes {
		types[broadcast.DeltaType(t)] = struct{}{}
	}
	return &Sink{source: source, publisher: publisher, types: types, origin: origin, logger: logger}
}

func (s *Sink) accepts(d broadcast.Delta) bool {
	if s.origin != "" && d.Origin != s.origin {
		return false
	}
	_, ok := s.types[d.Type]
	return ok && len(d.Recipients) == 0
}

// Run читает шину до отмены ctx. Если шина отключила медленную подписку, подписка восстанавливается.
func (s *Sink) Run(ctx context.Context) {
	s.logger.Info("Starting webhook sink...")
	for {
		sub := s.source.Subscribe(nil, "")
		if !s.drain(ctx, sub) {
			sub.Close()
			s.logger.Info("Stopping webhook sink.")
			return
		}
		s.logger.Warn("Webhook sink subscription dropped, resubscribing")
	}
}

// drain возвращает false, если остановка пришла из ctx
func (s *Sink) drain(ctx context.Context, sub *broadcast.Subscription) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case d, ok := <-sub.C():
			if !ok {
				return true
			}
			if !s.accepts(d) {
				continue
			}
			if err := s.publisher.Publish(ctx, d); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"delta_id":   d.ID,
					"delta_type": d.Type,
				}).Error("Failed to enqueue webhook delta")
			}
		}
	}
}
