// Package metrics - коллекторы Prometheus сервиса координации.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	deltasPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raynet_deltas_published_total",
			Help: "Total number of deltas accepted for broadcast by type.",
		},
		[]string{"type"},
	)
	deltasDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raynet_deltas_dropped_total",
			Help: "Total number of deltas not delivered by reason.",
		},
		[]string{"reason"},
	)
	subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "raynet_stream_subscribers",
			Help: "Number of connected delta subscribers.",
		},
	)
	schedulerPrompts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raynet_scheduler_prompts_total",
			Help: "Total number of check-in and welfare-check prompts raised.",
		},
		[]string{"kind"},
	)
	activeTimers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "raynet_scheduler_active_events",
			Help: "Number of events with running interval timers.",
		},
	)
	storeConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raynet_store_conflicts_total",
			Help: "Total number of optimistic version conflicts by operation.",
		},
		[]string{"operation"},
	)
	webhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raynet_webhook_deliveries_total",
			Help: "Total number of webhook delivery attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func Register() {
	prometheus.MustRegister(httpRequests, httpLatency, deltasPublished, deltasDropped, subscribers,
		schedulerPrompts, activeTimers, storeConflicts, webhookDeliveries)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware - gin-аналог Instrument; путь берется из шаблона маршрута, чтобы не плодить метки по id
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		httpLatency.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func IncDeltaPublished(deltaType string) {
	deltasPublished.WithLabelValues(deltaType).Inc()
}

func IncDeltaDropped(reason string) {
	deltasDropped.WithLabelValues(reason).Inc()
}

func SetSubscribers(n int) {
	subscribers.Set(float64(n))
}

func IncSchedulerPrompt(kind string) {
	schedulerPrompts.WithLabelValues(kind).Inc()
}

func SetActiveTimers(n int) {
	activeTimers.Set(float64(n))
}

func IncStoreConflict(operation string) {
	storeConflicts.WithLabelValues(operation).Inc()
}

func IncWebhookDelivery(outcome string) {
	webhookDeliveries.WithLabelValues(outcome).Inc()
}
