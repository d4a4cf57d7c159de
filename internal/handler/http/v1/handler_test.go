package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/auth"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/config"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/shenikar/raynet_coordinator/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	creator  = models.Principal{ID: "op-creator", Callsign: "VK2CRE", Role: models.RoleOperator}
	stranger = models.Principal{ID: "op-stranger", Callsign: "VK2STR", Role: models.RoleOperator}
	admin    = models.Principal{ID: "admin-1", Callsign: "VK2ADM", Role: models.RoleAdmin}
)

type testEnv struct {
	events   *mocks.MockEventService
	presence *mocks.MockPresenceService
	logs     *mocks.MockLogService
	resolver *auth.JWTResolver
	hub      *broadcast.Hub
	router   *gin.Engine
}

// newTestEnv создает Handler с мокированными сервисами и настоящей шиной дельт
func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	resolver, err := auth.NewJWTResolver("test-secret", "raynet-test", time.Second)
	require.NoError(t, err)

	env := &testEnv{
		events:   mocks.NewMockEventService(ctrl),
		presence: mocks.NewMockPresenceService(ctrl),
		logs:     mocks.NewMockLogService(ctrl),
		resolver: resolver,
		hub:      broadcast.NewHub(50*time.Millisecond, 16, logger),
	}
	t.Cleanup(env.hub.Close)

	handler := NewHandler(env.events, env.presence, env.logs, env.hub, resolver, logger, &config.Config{})

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	api := env.router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return env
}

func (e *testEnv) token(t *testing.T, p models.Principal) string {
	token, err := e.resolver.Issue(p, time.Minute)
	require.NoError(t, err)
	return token
}

func (e *testEnv) bearer(t *testing.T, p models.Principal) map[string]string {
	return map[string]string{"Authorization": "Bearer " + e.token(t, p)}
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleEvent(id uuid.UUID) *models.Event {
	now := time.Now().UTC()
	return &models.Event{
		ID:                          id,
		Name:                        "Sydney Marathon",
		Status:                      models.EventStatusActive,
		StartDate:                   now,
		Location:                    models.Location{Coordinates: models.Point{Lon: 151.21, Lat: -33.86}},
		CheckInIntervalMinutes:      30,
		WelfareCheckIntervalMinutes: 60,
		CreatedBy:                   creator.ID,
		Version:                     1,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
}

func TestCreateEvent_Success(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	reqBody := CreateEventRequest{
		Name:      "Sydney Marathon",
		StartDate: time.Now().UTC(),
		Location:  LocationDTO{Coordinates: models.Point{Lon: 151.21, Lat: -33.86}},
		Zones: []ZoneDTO{{
			Name:        "First aid",
			Type:        "MEDICAL",
			Coordinates: []models.Point{{Lon: 151.2, Lat: -33.87}, {Lon: 151.22, Lat: -33.87}, {Lon: 151.21, Lat: -33.85}},
			Color:       "#ff0000",
		}},
	}

	env.events.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Principal, e *models.Event) (*models.Event, error) {
			assert.Equal(t, creator.ID, p.ID)
			require.Len(t, e.Zones, 1)
			assert.Equal(t, models.ZoneTypeMedical, e.Zones[0].Type)
			created := sampleEvent(eventID)
			created.Zones = e.Zones
			return created, nil
		}).Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/events", jsonBody(t, reqBody), env.bearer(t, creator))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, eventID, resp.ID)
	assert.Equal(t, creator.ID, resp.CreatedBy)
	assert.Len(t, resp.Zones, 1)
}

func TestCreateEvent_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	env.events.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(env.router, http.MethodPost, "/api/v1/events", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, string(apperr.KindUnauthenticated), resp.Code)
	assert.False(t, resp.Retryable)
}

func TestCreateEvent_InvalidToken(t *testing.T) {
	env := newTestEnv(t)
	env.events.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/events", bytes.NewBufferString(`{}`),
		map[string]string{"Authorization": "Bearer not-a-token"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateEvent_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	env.events.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/events", bytes.NewBufferString(`{"name": "test"`), env.bearer(t, creator))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateEvent_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	reqBody := CreateEventRequest{ // Отсутствует Name
		StartDate: time.Now(),
	}
	env.events.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/events", jsonBody(t, reqBody), env.bearer(t, creator))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Name' failed on the 'required' tag")
	assert.Equal(t, string(apperr.KindValidation), decodeError(t, w).Code)
}

func TestCreateEvent_MalformedCoordinates(t *testing.T) {
	env := newTestEnv(t)
	env.events.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body := fmt.Sprintf(`{"name":"Bad","start_date":%q,"location":{"coordinates":[151.2,95]}}`, time.Now().UTC().Format(time.RFC3339))
	w := makeRequest(env.router, http.MethodPost, "/api/v1/events", bytes.NewBufferString(body), env.bearer(t, creator))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'latitude' tag")
}

func TestCreateEvent_ZoneNeedsThreeVertices(t *testing.T) {
	env := newTestEnv(t)
	env.events.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	reqBody := CreateEventRequest{
		Name:      "Zones",
		StartDate: time.Now(),
		Zones: []ZoneDTO{{
			Name:        "Line",
			Type:        "GENERAL",
			Coordinates: []models.Point{{Lon: 1, Lat: 1}, {Lon: 2, Lat: 2}},
		}},
	}
	w := makeRequest(env.router, http.MethodPost, "/api/v1/events", jsonBody(t, reqBody), env.bearer(t, creator))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'min' tag")
}

func TestUpdateEvent_ForbiddenForStrangerAllowedForAdmin(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	name := "Renamed"

	env.events.EXPECT().
		UpdateEvent(gomock.Any(), gomock.Any(), eventID, gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Principal, _ uuid.UUID, patch models.EventPatch) (*models.Event, error) {
			require.NotNil(t, patch.Name)
			assert.Equal(t, name, *patch.Name)
			if !p.IsAdmin() && p.ID != creator.ID {
				return nil, apperr.Forbidden("principal %s may not update event %s", p.ID, eventID)
			}
			updated := sampleEvent(eventID)
			updated.Name = *patch.Name
			updated.Version = 2
			return updated, nil
		}).Times(2)

	// Подготовка
	body := UpdateEventRequest{Name: &name}

	// Действие
	w := makeRequest(env.router, http.MethodPut, "/api/v1/events/"+eventID.String(), jsonBody(t, body), env.bearer(t, stranger))

	// Проверки
	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, string(apperr.KindForbidden), resp.Code)
	assert.False(t, resp.Retryable)

	w = makeRequest(env.router, http.MethodPut, "/api/v1/events/"+eventID.String(), jsonBody(t, body), env.bearer(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)
	var updated EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, int64(2), updated.Version)
}

func TestUpdateEvent_ConflictIsRetryable(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.events.EXPECT().
		UpdateEvent(gomock.Any(), gomock.Any(), eventID, gomock.Any()).
		Return(nil, apperr.Conflict("event %s was modified concurrently", eventID)).
		Times(1)

	w := makeRequest(env.router, http.MethodPut, "/api/v1/events/"+eventID.String(), bytes.NewBufferString(`{}`), env.bearer(t, creator))

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, string(apperr.KindConflict), resp.Code)
	assert.True(t, resp.Retryable)
}

func TestGetEvent_Success(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	event := sampleEvent(eventID)
	zoneID := uuid.New()
	event.Operators = []models.OperatorAssignment{{
		EventID:     eventID,
		OperatorID:  "op-1",
		Status:      models.OperatorStatusActive,
		CurrentZone: &zoneID,
	}}
	env.events.EXPECT().GetEvent(gomock.Any(), eventID).Return(event, nil).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/events/"+eventID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, eventID, resp.ID)
	require.Len(t, resp.Operators, 1)
	assert.Equal(t, "op-1", resp.Operators[0].OperatorID)
	assert.Equal(t, &zoneID, resp.Operators[0].CurrentZone)
}

func TestGetEvent_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	env.events.EXPECT().GetEvent(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/events/invalid-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid event ID")
}

func TestGetEvent_NotFound(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.events.EXPECT().GetEvent(gomock.Any(), eventID).Return(nil, apperr.NotFound("event %s not found", eventID)).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/events/"+eventID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(apperr.KindNotFound), decodeError(t, w).Code)
}

func TestGetEvent_StoreUnavailable(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.events.EXPECT().
		GetEvent(gomock.Any(), eventID).
		Return(nil, apperr.StoreUnavailable(context.DeadlineExceeded, "get event %s", eventID)).
		Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/events/"+eventID.String(), nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, string(apperr.KindStoreUnavailable), resp.Code)
	assert.True(t, resp.Retryable)
}

func TestListEvents_StatusFilter(t *testing.T) {
	env := newTestEnv(t)
	first, second := sampleEvent(uuid.New()), sampleEvent(uuid.New())
	env.events.EXPECT().
		ListEvents(gomock.Any(), models.EventFilter{Status: models.EventStatusActive}).
		Return([]*models.Event{first, second}, nil).
		Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/events?status=ACTIVE", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, first.ID, resp[0].ID)
}

func TestListEvents_UnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	env.events.EXPECT().ListEvents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/events?status=PAUSED", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteEvent_NoContent(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.events.EXPECT().DeleteEvent(gomock.Any(), gomock.Any(), eventID).Return(nil).Times(1)

	w := makeRequest(env.router, http.MethodDelete, "/api/v1/events/"+eventID.String(), nil, env.bearer(t, creator))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestLinkEvents_SelfLinkRejected(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.events.EXPECT().
		LinkEvents(gomock.Any(), gomock.Any(), eventID, eventID).
		Return(nil, apperr.Validation("event cannot be linked to itself")).
		Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/events/"+eventID.String()+"/link",
		jsonBody(t, LinkEventsRequest{TargetEventID: eventID}), env.bearer(t, creator))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "itself")
}

func TestRemoveOperator_PassesOperatorID(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.events.EXPECT().RemoveOperator(gomock.Any(), gomock.Any(), eventID, "op-7").Return(nil).Times(1)

	w := makeRequest(env.router, http.MethodDelete, "/api/v1/events/"+eventID.String()+"/operators/op-7", nil, env.bearer(t, creator))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCheckIn_DefaultsToCaller(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	now := time.Now().UTC()
	env.presence.EXPECT().
		CheckIn(gomock.Any(), gomock.Any(), eventID, stranger.ID, nil).
		Return(&models.OperatorAssignment{
			EventID:     eventID,
			OperatorID:  stranger.ID,
			Status:      models.OperatorStatusActive,
			LastCheckIn: &now,
		}, nil).
		Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/events/"+eventID.String()+"/check-in", nil, env.bearer(t, stranger))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp OperatorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(models.OperatorStatusActive), resp.Status)
	require.NotNil(t, resp.LastCheckIn)
}

func TestCheckIn_NotAssigned(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.presence.EXPECT().
		CheckIn(gomock.Any(), gomock.Any(), eventID, stranger.ID, gomock.Any()).
		Return(nil, apperr.NotAssigned("operator %s is not assigned to event %s", stranger.ID, eventID)).
		Times(1)

	body := `{"position":[151.21,-33.86]}`
	w := makeRequest(env.router, http.MethodPost, "/api/v1/events/"+eventID.String()+"/check-in",
		bytes.NewBufferString(body), env.bearer(t, stranger))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, string(apperr.KindNotAssigned), decodeError(t, w).Code)
}

func TestWelfareCheck_ReturnsAssignmentAndLog(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.presence.EXPECT().
		WelfareCheck(gomock.Any(), gomock.Any(), eventID, "op-1").
		Return(
			&models.OperatorAssignment{EventID: eventID, OperatorID: "op-1", Status: models.OperatorStatusBreak},
			&models.LogEntry{ID: uuid.New(), EventID: eventID, OperatorID: "op-1", MessageType: models.MessageTypeCheckIn},
			nil,
		).
		Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/events/"+eventID.String()+"/welfare-check",
		jsonBody(t, WelfareCheckRequest{OperatorID: "op-1"}), env.bearer(t, admin))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp WelfareCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(models.OperatorStatusBreak), resp.Operator.Status)
	assert.Equal(t, string(models.MessageTypeCheckIn), resp.Log.MessageType)
}

func TestSetOperatorStatus_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.presence.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodPut, "/api/v1/events/"+eventID.String()+"/operator-status",
		bytes.NewBufferString(`{"status":"SLEEPING"}`), env.bearer(t, stranger))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'oneof' tag")
}

func TestSetOperatorStatus_Success(t *testing.T) {
	env := newTestEnv(t)
	eventID, zoneID := uuid.New(), uuid.New()
	env.presence.EXPECT().
		SetStatus(gomock.Any(), gomock.Any(), eventID, stranger.ID, models.OperatorStatusBreak, &zoneID).
		Return(&models.OperatorAssignment{
			EventID:     eventID,
			OperatorID:  stranger.ID,
			Status:      models.OperatorStatusBreak,
			CurrentZone: &zoneID,
		}, nil).
		Times(1)

	w := makeRequest(env.router, http.MethodPut, "/api/v1/events/"+eventID.String()+"/operator-status",
		jsonBody(t, OperatorStatusRequest{Status: "BREAK", ZoneID: &zoneID}), env.bearer(t, stranger))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp OperatorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BREAK", resp.Status)
}

func TestCreateLog_Success(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.logs.EXPECT().
		CreateLog(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Principal, l *models.LogEntry) (*models.LogEntry, error) {
			assert.Equal(t, stranger.ID, p.ID)
			assert.Equal(t, eventID, l.EventID)
			out := *l
			out.ID = uuid.New()
			out.OperatorID = p.ID
			out.Callsign = p.Callsign
			out.MessageType = models.MessageTypeInfo
			return &out, nil
		}).Times(1)

	reqBody := CreateLogRequest{EventID: eventID, Message: "All quiet", Talkgroup: "TG-Ops", Channel: "Primary"}
	w := makeRequest(env.router, http.MethodPost, "/api/v1/logs", jsonBody(t, reqBody), env.bearer(t, stranger))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp LogEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, stranger.Callsign, resp.Callsign)
	assert.Equal(t, "INFO", resp.MessageType)
}

func TestListLogs_ParsesFilter(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	from := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	env.logs.EXPECT().
		ListLogs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.LogFilter) ([]*models.LogEntry, error) {
			require.NotNil(t, f.EventID)
			assert.Equal(t, eventID, *f.EventID)
			assert.Equal(t, "TG-Ops", f.Talkgroup)
			require.NotNil(t, f.From)
			assert.True(t, from.Equal(*f.From))
			assert.Nil(t, f.To)
			return []*models.LogEntry{}, nil
		}).Times(1)

	url := fmt.Sprintf("/api/v1/logs?event_id=%s&talkgroup=TG-Ops&start_date=%s", eventID, from.Format(time.RFC3339))
	w := makeRequest(env.router, http.MethodGet, url, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListLogs_InvalidDate(t *testing.T) {
	env := newTestEnv(t)
	env.logs.EXPECT().ListLogs(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/logs?end_date=yesterday", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "end_date")
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func wsURL(server *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + path
}

func readFrame(t *testing.T, conn *websocket.Conn) StreamFrame {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame StreamFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestStream_DeliversDeltasAndDirectedPrompts(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	// Подготовка
	eventID := uuid.New()
	url := wsURL(server, fmt.Sprintf("/api/v1/stream?events=%s&access_token=%s", eventID, env.token(t, stranger)))
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()
	require.Eventually(t, func() bool { return env.hub.SubscriberCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	updated, err := broadcast.NewDelta(broadcast.DeltaEventUpdated, eventID, 1, time.Now(), map[string]string{"name": "Renamed"})
	require.NoError(t, err)
	otherEvent, err := broadcast.NewDelta(broadcast.DeltaEventUpdated, uuid.New(), 1, time.Now(), map[string]string{})
	require.NoError(t, err)
	notMine, err := broadcast.NewDelta(broadcast.DeltaWelfareCheckDue, eventID, 0, time.Now(), broadcast.Prompt{EventID: eventID})
	require.NoError(t, err)
	notMine.Recipients = []string{"op-other"}
	mine, err := broadcast.NewDelta(broadcast.DeltaCheckInDue, eventID, 0, time.Now(), broadcast.Prompt{EventID: eventID})
	require.NoError(t, err)
	mine.Recipients = []string{stranger.ID}

	// Действие
	env.hub.Publish(context.Background(), updated)
	env.hub.Publish(context.Background(), otherEvent)
	env.hub.Publish(context.Background(), notMine)
	env.hub.Publish(context.Background(), mine)

	// Проверки
	first := readFrame(t, conn)
	assert.Equal(t, updated.ID, first.ID)
	assert.Equal(t, string(broadcast.DeltaEventUpdated), first.Type)
	assert.Equal(t, int64(1), first.Seq)
	assert.JSONEq(t, `{"name":"Renamed"}`, string(first.Payload))

	second := readFrame(t, conn)
	assert.Equal(t, mine.ID, second.ID)
	assert.Equal(t, string(broadcast.DeltaCheckInDue), second.Type)
}

func TestStream_RequiresCredential(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "/api/v1/stream"), nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, env.hub.SubscriberCount())
}

func TestStreamEvent_UnknownEvent(t *testing.T) {
	env := newTestEnv(t)
	eventID := uuid.New()
	env.events.EXPECT().GetEvent(gomock.Any(), eventID).Return(nil, apperr.NotFound("event %s not found", eventID)).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/events/"+eventID.String()+"/stream", nil, env.bearer(t, stranger))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, env.hub.SubscriberCount())
}
