package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

// @Summary Create a log entry
// @Description Add a radio log entry. Callsign defaults to the caller's callsign, message type to INFO.
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param log body CreateLogRequest true "Log entry"
// @Success 201 {object} LogEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /logs [post]
func (h *Handler) createLog(c *gin.Context) {
	var input CreateLogRequest
	log := h.logger.WithField("method", "createLog")
	if !h.bind(c, log, &input) {
		return
	}

	entry, err := h.logService.CreateLog(c.Request.Context(), principalFrom(c), DTOToLogModel(input))
	if err != nil {
		respondError(c, log.WithField("event_id", input.EventID), err)
		return
	}
	c.JSON(http.StatusCreated, ModelToLogEntryResponse(entry))
}

// @Summary List log entries
// @Description List log entries newest first
// @Tags Logs
// @Produce json
// @Param event_id query string false "Event ID"
// @Param talkgroup query string false "Talkgroup"
// @Param channel query string false "Channel"
// @Param start_date query string false "From (RFC3339)"
// @Param end_date query string false "To (RFC3339)"
// @Success 200 {array} LogEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Router /logs [get]
func (h *Handler) listLogs(c *gin.Context) {
	log := h.logger.WithField("method", "listLogs")

	filter := models.LogFilter{
		Talkgroup: c.Query("talkgroup"),
		Channel:   c.Query("channel"),
	}
	if raw := c.Query("event_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "invalid event ID")
			return
		}
		filter.EventID = &id
	}
	var ok bool
	if filter.From, ok = queryTime(c, "start_date"); !ok {
		return
	}
	if filter.To, ok = queryTime(c, "end_date"); !ok {
		return
	}

	entries, err := h.logService.ListLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToLogEntryResponses(entries))
}

func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		badRequest(c, "invalid "+name+", expected RFC3339")
		return nil, false
	}
	return &t, true
}

// @Summary Get log entry by ID
// @Tags Logs
// @Produce json
// @Param id path string true "Log entry ID"
// @Success 200 {object} LogEntryResponse
// @Failure 404 {object} ErrorResponse "Log entry not found"
// @Router /logs/{id} [get]
func (h *Handler) getLog(c *gin.Context) {
	id, ok := pathUUID(c, "id", "log entry")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getLog").WithField("id", id)

	entry, err := h.logService.GetLog(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToLogEntryResponse(entry))
}

// @Summary Update a log entry
// @Description Allowed to the author, the event creator or an admin
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log entry ID"
// @Param log body UpdateLogRequest true "Log entry patch"
// @Success 200 {object} LogEntryResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Log entry not found"
// @Router /logs/{id} [put]
func (h *Handler) updateLog(c *gin.Context) {
	id, ok := pathUUID(c, "id", "log entry")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateLog").WithField("id", id)

	var input UpdateLogRequest
	if !h.bind(c, log, &input) {
		return
	}

	entry, err := h.logService.UpdateLog(c.Request.Context(), principalFrom(c), id, DTOToLogPatch(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToLogEntryResponse(entry))
}

// @Summary Delete a log entry
// @Tags Logs
// @Security BearerAuth
// @Param id path string true "Log entry ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Log entry not found"
// @Router /logs/{id} [delete]
func (h *Handler) deleteLog(c *gin.Context) {
	id, ok := pathUUID(c, "id", "log entry")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteLog").WithField("id", id)

	if err := h.logService.DeleteLog(c.Request.Context(), principalFrom(c), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
