package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"

	"github.com/shenikar/raynet_coordinator/internal/auth"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/config"
	v1 "github.com/shenikar/raynet_coordinator/internal/handler/http/v1"
	"github.com/shenikar/raynet_coordinator/internal/metrics"
	"github.com/shenikar/raynet_coordinator/internal/repository"
	"github.com/shenikar/raynet_coordinator/internal/scheduler"
	"github.com/shenikar/raynet_coordinator/internal/service"
	"github.com/shenikar/raynet_coordinator/internal/webhook"
	"github.com/shenikar/raynet_coordinator/pkg/logger"
	"github.com/shenikar/raynet_coordinator/pkg/postgres"
	redisclient "github.com/shenikar/raynet_coordinator/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/raynet_coordinator/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title RAYNET Coordinator API
// @version 1.0
// @description Event sessions, operator welfare and radio log for volunteer radio events.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	resolver, err := auth.NewJWTResolver(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTLeeway)
	if err != nil {
		log.Fatalf("Failed to create credential resolver: %v", err)
	}

	// Шина дельт: локальная или через общий канал Redis
	hub := broadcast.NewHub(cfg.BroadcastReorderWindow, cfg.SubscriberBuffer, log)
	defer hub.Close()

	var sender service.Broadcaster = hub
	var redisPublisher *broadcast.RedisPublisher
	if cfg.BroadcastBackend == config.BroadcastBackendRedis {
		redisPublisher = broadcast.NewRedisPublisher(redisClient, cfg.BroadcastChannel, cfg.BroadcastQueueSize, log)
		redisPublisher.Start(ctx)
		if err := broadcast.NewRelay(redisClient, cfg.BroadcastChannel, hub, log).Start(ctx); err != nil {
			log.Fatalf("Failed to subscribe to broadcast channel: %v", err)
		}
		sender = redisPublisher
	}

	// Дельты помечаются репликой, на которой произошла запись
	replicaID := uuid.NewString()
	log.WithField("replica_id", replicaID).Info("Replica identity assigned")
	broadcaster := broadcast.NewOriginPublisher(sender, replicaID)

	// Инициализация репозиториев
	store := repository.NewStore(dbpool)
	eventCache := repository.NewEventCache(redisClient, cfg.CacheTTL, 2*cfg.StoreTimeout)

	// Планировщик напоминаний
	sched := scheduler.New(broadcaster, store, log,
		scheduler.WithTick(cfg.SchedulerTick),
		scheduler.WithLocker(scheduler.NewRedisLocker(redisClient)),
		scheduler.WithStoreTimeout(cfg.StoreTimeout),
	)
	if err := sched.Rehydrate(ctx, store); err != nil {
		log.WithError(err).Error("Failed to rehydrate scheduler, timers start with the next event change")
	}
	go sched.Run(ctx)
	go sched.Follow(ctx, hub, store)

	// Инициализация сервисов
	eventService := service.NewEventService(store, eventCache, broadcaster, sched, log, cfg)
	presenceService := service.NewPresenceService(store, eventCache, broadcaster, sched, log, cfg)
	logService := service.NewLogService(store, eventCache, broadcaster, sched, log, cfg)

	// Исходящие вебхуки
	var webhookWorker *webhook.WebhookWorker
	if cfg.WebhookURL != "" {
		sink := webhook.NewSink(hub, webhook.NewRedisWebhookPublisher(redisClient), cfg.WebhookDeltaTypes, replicaID, log)
		go sink.Run(ctx)

		webhookWorker = webhook.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(eventService, presenceService, logService, hub, resolver, log, cfg)

	// Настройка Gin роутера
	metrics.Register()
	router := gin.Default()
	router.Use(metrics.Middleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Останавливаем фоновые горутины и дожидаемся отправки накопленных дельт
	cancel()
	if redisPublisher != nil {
		redisPublisher.Wait()
	}
	if webhookWorker != nil {
		webhookWorker.Wait()
	}

	log.Info("Server gracefully stopped")
}
