package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

// operatorOrSelf - без явного operator_id оператор действует за себя
func operatorOrSelf(c *gin.Context, operatorID string) string {
	if operatorID != "" {
		return operatorID
	}
	return principalFrom(c).ID
}

// @Summary Operator check-in
// @Description Mark the operator ACTIVE and stamp the check-in time. An optional position suggests the current zone.
// @Tags Presence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param checkin body CheckInRequest false "Check-in"
// @Success 200 {object} OperatorResponse
// @Failure 400 {object} ErrorResponse "Invalid coordinates"
// @Failure 403 {object} ErrorResponse "Forbidden or not assigned"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Router /events/{id}/check-in [post]
func (h *Handler) checkIn(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "checkIn").WithField("id", id)

	var input CheckInRequest
	if !h.bindOptional(c, log, &input) {
		return
	}

	operatorID := operatorOrSelf(c, input.OperatorID)
	assignment, err := h.presenceService.CheckIn(c.Request.Context(), principalFrom(c), id, operatorID, input.Position)
	if err != nil {
		respondError(c, log.WithField("operator_id", operatorID), err)
		return
	}
	c.JSON(http.StatusOK, ModelToOperatorResponse(assignment))
}

// @Summary Operator welfare check
// @Description Confirm operator welfare. Records a CHECK-IN log entry and keeps the current status.
// @Tags Presence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param welfare body WelfareCheckRequest false "Welfare check"
// @Success 200 {object} WelfareCheckResponse
// @Failure 403 {object} ErrorResponse "Forbidden or not assigned"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id}/welfare-check [post]
func (h *Handler) welfareCheck(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "welfareCheck").WithField("id", id)

	var input WelfareCheckRequest
	if !h.bindOptional(c, log, &input) {
		return
	}

	operatorID := operatorOrSelf(c, input.OperatorID)
	assignment, entry, err := h.presenceService.WelfareCheck(c.Request.Context(), principalFrom(c), id, operatorID)
	if err != nil {
		respondError(c, log.WithField("operator_id", operatorID), err)
		return
	}
	c.JSON(http.StatusOK, WelfareCheckResponse{
		Operator: ModelToOperatorResponse(assignment),
		Log:      ModelToLogEntryResponse(entry),
	})
}

// @Summary Set operator status
// @Description Manually set the operator status and optionally the current zone
// @Tags Presence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param status body OperatorStatusRequest true "Status change"
// @Success 200 {object} OperatorResponse
// @Failure 400 {object} ErrorResponse "Unknown status or zone"
// @Failure 403 {object} ErrorResponse "Forbidden or not assigned"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Router /events/{id}/operator-status [put]
func (h *Handler) setOperatorStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "setOperatorStatus").WithField("id", id)

	var input OperatorStatusRequest
	if !h.bind(c, log, &input) {
		return
	}

	operatorID := operatorOrSelf(c, input.OperatorID)
	assignment, err := h.presenceService.SetStatus(
		c.Request.Context(), principalFrom(c), id, operatorID, models.OperatorStatus(input.Status), input.ZoneID,
	)
	if err != nil {
		respondError(c, log.WithField("operator_id", operatorID), err)
		return
	}
	c.JSON(http.StatusOK, ModelToOperatorResponse(assignment))
}
