package v1

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1024
)

// originChecker: пустой список - проверка same-origin gorilla, "*" - любой источник
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	if slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

func parseTopics(raw string) ([]uuid.UUID, error) {
	var topics []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		topics = append(topics, id)
	}
	return topics, nil
}

// @Summary Subscribe to changes
// @Description WebSocket stream of deltas for the listed events, or for all events when the list is empty
// @Tags Stream
// @Security BearerAuth
// @Param events query string false "Comma separated event IDs"
// @Param access_token query string false "Bearer token for clients that cannot set headers"
// @Success 101 {object} StreamFrame
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Router /stream [get]
func (h *Handler) streamEvents(c *gin.Context) {
	log := h.logger.WithField("method", "streamEvents")
	topics, err := parseTopics(c.Query("events"))
	if err != nil {
		badRequest(c, "invalid event ID in events")
		return
	}
	h.serveStream(c, log, topics)
}

// @Summary Subscribe to changes of one event
// @Tags Stream
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param access_token query string false "Bearer token for clients that cannot set headers"
// @Success 101 {object} StreamFrame
// @Failure 401 {object} ErrorResponse "Unauthenticated"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id}/stream [get]
func (h *Handler) streamEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id", "event")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "streamEvent").WithField("id", id)

	if _, err := h.eventService.GetEvent(c.Request.Context(), id); err != nil {
		respondError(c, log, err)
		return
	}
	h.serveStream(c, log, []uuid.UUID{id})
}

func (h *Handler) serveStream(c *gin.Context, log *logrus.Entry, topics []uuid.UUID) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		log.WithError(err).Warn("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	principal := principalFrom(c)
	log = log.WithField("principal", principal.ID)
	sub := h.stream.Subscribe(topics, principal.ID)
	defer sub.Close()
	log.Info("Stream subscriber connected")

	// входящие кадры не ожидаются; читаем только ради pong и close
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			log.Info("Stream subscriber disconnected")
			return
		case d, ok := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				log.Warn("Stream subscription dropped")
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscription dropped"))
				return
			}
			if err := conn.WriteJSON(DeltaToFrame(d)); err != nil {
				log.WithError(err).Warn("Failed to write stream frame")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
