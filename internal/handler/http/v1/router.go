package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authRequired := AuthMiddleware(h.resolver, h.logger, false)
	streamAuth := AuthMiddleware(h.resolver, h.logger, true)

	// Чтение открыто, изменения требуют bearer-токен
	events := api.Group("/events")
	{
		events.GET("", h.listEvents)
		events.GET("/:id", h.getEvent)
		events.GET("/:id/operators", h.listOperators)
		events.POST("/:id/locate", h.locateZones)
		events.GET("/:id/stream", streamAuth, h.streamEvent)

		secured := events.Group("", authRequired)
		secured.POST("", h.createEvent)
		secured.PUT("/:id", h.updateEvent)
		secured.DELETE("/:id", h.deleteEvent)
		secured.POST("/:id/link", h.linkEvents)
		secured.POST("/:id/operators", h.addOperator)
		secured.DELETE("/:id/operators/:operatorId", h.removeOperator)
		secured.POST("/:id/check-in", h.checkIn)
		secured.POST("/:id/welfare-check", h.welfareCheck)
		secured.PUT("/:id/operator-status", h.setOperatorStatus)
	}

	logs := api.Group("/logs")
	{
		logs.GET("", h.listLogs)
		logs.GET("/:id", h.getLog)

		secured := logs.Group("", authRequired)
		secured.POST("", h.createLog)
		secured.PUT("/:id", h.updateLog)
		secured.DELETE("/:id", h.deleteLog)
	}

	// Поток изменений по WebSocket
	api.GET("/stream", streamAuth, h.streamEvents)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
