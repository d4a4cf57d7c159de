package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/raynet_coordinator/internal/auth"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/config"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/shenikar/raynet_coordinator/internal/service"
	"github.com/sirupsen/logrus"
)

// StreamSource - шина дельт, на которую подписываются WebSocket-сессии
type StreamSource interface {
	Subscribe(topics []uuid.UUID, principalID string) *broadcast.Subscription
}

type Handler struct {
	eventService    service.EventService
	presenceService service.PresenceService
	logService      service.LogService
	stream          StreamSource
	resolver        auth.Resolver
	logger          *logrus.Logger
	validate        *validator.Validate
	upgrader        websocket.Upgrader
	cfg             *config.Config
}

func NewHandler(
	eventService service.EventService,
	presenceService service.PresenceService,
	logService service.LogService,
	stream StreamSource,
	resolver auth.Resolver,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		eventService:    eventService,
		presenceService: presenceService,
		logService:      logService,
		stream:          stream,
		resolver:        resolver,
		logger:          logger,
		validate:        validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		cfg: cfg,
	}
}

// bind разбирает и валидирует тело; при ошибке ответ уже записан
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		badRequest(c, "invalid request body")
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		badRequest(c, err.Error())
		return false
	}
	return true
}

// bindOptional - то же для необязательного тела
func (h *Handler) bindOptional(c *gin.Context, log *logrus.Entry, input any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		return true
	}
	return h.bind(c, log, input)
}

func pathUUID(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Create a new event
// @Description Create a new event. The caller becomes its creator.
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event creation request"
// @Success 201 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /events [post]
func (h *Handler) createEvent(c *gin.Context) {
	var input CreateEventRequest
	log := h.logger.WithField("method", "createEvent")
	if !h.bind(c, log, &input) {
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), principalFrom(c), DTOToEventModel(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToEventResponse(event))
}

// @Summary Get a list of events
// @Description Get events ordered by start date, newest first
// @Tags Events
// @Produce json
// @Param status query string false "Filter by status" Enums(ACTIVE, COMPLETED, ARCHIVED)
// @Success 200 {array} EventResponse
// @Failure 400 {object} ErrorResponse "Unknown status"
// @Router /events [get]
func (h *Handler) listEvents(c *gin.Context) {
	log := h.logger.WithField("method", "listEvents")
	status := models.EventStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		badRequest(c, "unknown event status")
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), models.EventFilter{Status: status})
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToEventResponses(events))
}

// @Summary Get event by ID
// @Description Get a single event with its roster
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (h *Handler) getEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getEvent").WithField("id", id)

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEventResponse(event))
}

// @Summary Update an existing event
// @Description Patch an event. Only the creator or an admin may update.
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param event body UpdateEventRequest true "Event patch"
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid event ID or request body"
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Router /events/{id} [put]
func (h *Handler) updateEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateEvent").WithField("id", id)

	var input UpdateEventRequest
	if !h.bind(c, log, &input) {
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), principalFrom(c), id, DTOToEventPatch(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEventResponse(event))
}

// @Summary Delete an event
// @Description Delete an event, its roster and log. Links from other events are removed.
// @Tags Events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (h *Handler) deleteEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteEvent").WithField("id", id)

	if err := h.eventService.DeleteEvent(c.Request.Context(), principalFrom(c), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Link two events
// @Description Symmetrically link the event with another one. Repeated links are no-ops.
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param link body LinkEventsRequest true "Target event"
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Self link or invalid body"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id}/link [post]
func (h *Handler) linkEvents(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "linkEvents").WithField("id", id)

	var input LinkEventsRequest
	if !h.bind(c, log, &input) {
		return
	}

	event, err := h.eventService.LinkEvents(c.Request.Context(), principalFrom(c), id, input.TargetEventID)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEventResponse(event))
}

// @Summary Add an operator to the roster
// @Description New operators start OFFLINE. Adding an operator twice is a no-op.
// @Tags Operators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param operator body AddOperatorRequest true "Operator"
// @Success 200 {object} OperatorResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id}/operators [post]
func (h *Handler) addOperator(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "addOperator").WithField("id", id)

	var input AddOperatorRequest
	if !h.bind(c, log, &input) {
		return
	}

	assignment, err := h.eventService.AddOperator(c.Request.Context(), principalFrom(c), id, input.OperatorID)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToOperatorResponse(assignment))
}

// @Summary Remove an operator from the roster
// @Tags Operators
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param operatorId path string true "Operator ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Forbidden or not assigned"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id}/operators/{operatorId} [delete]
func (h *Handler) removeOperator(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	operatorID := c.Param("operatorId")
	log := h.logger.WithField("method", "removeOperator").WithField("id", id).WithField("operator_id", operatorID)

	if err := h.eventService.RemoveOperator(c.Request.Context(), principalFrom(c), id, operatorID); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List the event roster
// @Tags Operators
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {array} OperatorResponse
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id}/operators [get]
func (h *Handler) listOperators(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listOperators").WithField("id", id)

	roster, err := h.eventService.ListOperators(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToOperatorResponses(roster))
}

// @Summary Locate a point in event zones
// @Description Return the zones containing the point and whether it lies inside the event radius
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param position body LocateRequest true "Point"
// @Success 200 {object} PositionResponse
// @Failure 400 {object} ErrorResponse "Invalid coordinates"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id}/locate [post]
func (h *Handler) locateZones(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "locateZones").WithField("id", id)

	var input LocateRequest
	if !h.bind(c, log, &input) {
		return
	}

	report, err := h.eventService.LocateZones(c.Request.Context(), id, input.Position)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPositionResponse(report))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
