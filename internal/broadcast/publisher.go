package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/raynet_coordinator/internal/metrics"
	"github.com/sirupsen/logrus"
)

// RedisPublisher отправляет дельты в канал Redis, откуда их забирает Relay каждой реплики.
// Publish только ставит дельту в очередь, сетевой вызов делает отдельная горутина.
type RedisPublisher struct {
	redisClient *redis.Client
	channel     string
	queue       chan Delta
	logger      *logrus.Logger
	wg          sync.WaitGroup
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client, channel string, queueSize int, logger *logrus.Logger) *RedisPublisher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &RedisPublisher{
		redisClient: client,
		channel:     channel,
		queue:       make(chan Delta, queueSize),
		logger:      logger,
	}
}

// Publish ставит дельту в очередь отправки
func (p *RedisPublisher) Publish(_ context.Context, d Delta) {
	select {
	case p.queue <- d:
		metrics.IncDeltaPublished(string(d.Type))
	default:
		metrics.IncDeltaDropped(dropReasonQueueFull)
		p.logger.WithFields(logrus.Fields{
			"event_id": d.EventID,
			"type":     d.Type,
			"seq":      d.Seq,
		}).Error("Broadcast queue is full, delta dropped")
	}
}

// Start запускает горутину отправки. Она завершается после отмены ctx и опустошения очереди.
func (p *RedisPublisher) Start(ctx context.Context) {
	p.logger.Info("Starting redis delta publisher...")
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-ctx.Done():
				p.flush()
				p.logger.Info("Stopping redis delta publisher.")
				return
			case d := <-p.queue:
				if err := p.send(ctx, d); err != nil {
					p.logger.WithError(err).WithField("event_id", d.EventID).Error("Failed to publish delta to Redis")
				}
			}
		}
	}()
}

// Wait дожидается завершения горутины отправки
func (p *RedisPublisher) Wait() {
	p.wg.Wait()
}

func (p *RedisPublisher) flush() {
	for {
		select {
		case d := <-p.queue:
			if err := p.send(context.Background(), d); err != nil {
				p.logger.WithError(err).Warn("Failed to flush delta on shutdown")
			}
		default:
			return
		}
	}
}

func (p *RedisPublisher) send(ctx context.Context, d Delta) error {
	payload, err := json.Marshal(d)
	if err != nil {
		metrics.IncDeltaDropped(dropReasonEncode)
		return fmt.Errorf("failed to marshal delta: %w", err)
	}
	if err := p.redisClient.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish delta to channel %s: %w", p.channel, err)
	}
	return nil
}
