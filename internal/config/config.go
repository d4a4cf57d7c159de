package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BroadcastBackendLocal = "local"
	BroadcastBackendRedis = "redis"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	RedisDialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	RedisTimeout     time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s"`
	RedisMaxRetries  int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`

	// Auth Config
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer string        `env:"JWT_ISSUER"`
	JWTLeeway time.Duration `env:"JWT_LEEWAY" envDefault:"30s"`

	// Store Config
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Scheduler Config
	SchedulerTick time.Duration `env:"SCHEDULER_TICK" envDefault:"1s"`

	// Broadcast Config
	BroadcastBackend       string        `env:"BROADCAST_BACKEND" envDefault:"local"`
	BroadcastChannel       string        `env:"BROADCAST_CHANNEL" envDefault:"raynet:deltas"`
	BroadcastQueueSize     int           `env:"BROADCAST_QUEUE_SIZE" envDefault:"1024"`
	BroadcastReorderWindow time.Duration `env:"BROADCAST_REORDER_WINDOW" envDefault:"500ms"`
	SubscriberBuffer       int           `env:"SUBSCRIBER_BUFFER" envDefault:"64"`
	AllowedOrigins         []string      `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`
	WebhookDeltaTypes []string      `env:"WEBHOOK_DELTA_TYPES" envSeparator:"," envDefault:"newLog,logUpdated,operatorStatusChanged"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые нельзя выразить тегами
func (c *Config) Validate() error {
	if c.BroadcastBackend != BroadcastBackendLocal && c.BroadcastBackend != BroadcastBackendRedis {
		return fmt.Errorf("BROADCAST_BACKEND must be %q or %q, got %q", BroadcastBackendLocal, BroadcastBackendRedis, c.BroadcastBackend)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if c.SchedulerTick <= 0 {
		return fmt.Errorf("SCHEDULER_TICK must be positive")
	}
	if c.SubscriberBuffer < 1 || c.BroadcastQueueSize < 1 {
		return fmt.Errorf("SUBSCRIBER_BUFFER and BROADCAST_QUEUE_SIZE must be at least 1")
	}
	if c.WebhookURL != "" && c.WebhookMaxRetries < 1 {
		return fmt.Errorf("WEBHOOK_MAX_RETRIES must be at least 1")
	}
	return nil
}
