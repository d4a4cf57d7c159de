package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogEntry(eventID uuid.UUID) *models.LogEntry {
	return &models.LogEntry{
		EventID:   eventID,
		Message:   "Runner 112 at aid station 3",
		Talkgroup: "TG-Ops",
		Channel:   "Primary",
	}
}

func TestCreateLog_DefaultsAndBroadcast(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	event := env.createEvent(t)
	env.bc.reset()

	// Действие
	entry, err := env.logs.CreateLog(context.Background(), operator, newLogEntry(event.ID))

	// Проверки
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, operator.ID, entry.OperatorID)
	assert.Equal(t, operator.Callsign, entry.Callsign)
	assert.Equal(t, models.MessageTypeInfo, entry.MessageType)
	assert.WithinDuration(t, time.Now(), entry.Timestamp, time.Second)

	deltas := env.bc.ofType(broadcast.DeltaNewLog)
	require.Len(t, deltas, 1)
	var payload models.LogEntry
	require.NoError(t, json.Unmarshal(deltas[0].Payload, &payload))
	assert.Equal(t, entry.ID, payload.ID)
	assert.Equal(t, event.ID, deltas[0].EventID)
}

func TestCreateLog_Validation(t *testing.T) {
	env := newTestEnv(t)
	event := env.createEvent(t)

	noMessage := newLogEntry(event.ID)
	noMessage.Message = ""
	badType := newLogEntry(event.ID)
	badType.MessageType = "GOSSIP"

	_, messageErr := env.logs.CreateLog(context.Background(), operator, noMessage)
	_, typeErr := env.logs.CreateLog(context.Background(), operator, badType)
	_, eventErr := env.logs.CreateLog(context.Background(), operator, newLogEntry(uuid.New()))
	_, anonErr := env.logs.CreateLog(context.Background(), models.Principal{}, newLogEntry(event.ID))

	assert.True(t, apperr.Is(messageErr, apperr.KindValidation))
	assert.True(t, apperr.Is(typeErr, apperr.KindValidation))
	assert.True(t, apperr.Is(eventErr, apperr.KindNotFound))
	assert.True(t, apperr.Is(anonErr, apperr.KindUnauthenticated))
}

func TestUpdateLog_Authorization(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	event := env.createEvent(t)
	entry, err := env.logs.CreateLog(context.Background(), operator, newLogEntry(event.ID))
	require.NoError(t, err)
	urgent := models.MessageTypeUrgent
	edited := "Runner 112 needs medical"

	// Действие
	_, strangerErr := env.logs.UpdateLog(context.Background(), stranger, entry.ID, models.LogPatch{Message: &edited})
	byAuthor, authorErr := env.logs.UpdateLog(context.Background(), operator, entry.ID, models.LogPatch{Message: &edited})
	byCreator, creatorErr := env.logs.UpdateLog(context.Background(), creator, entry.ID, models.LogPatch{MessageType: &urgent})

	// Проверки
	assert.True(t, apperr.Is(strangerErr, apperr.KindForbidden))
	require.NoError(t, authorErr)
	assert.Equal(t, edited, byAuthor.Message)
	require.NoError(t, creatorErr)
	assert.Equal(t, models.MessageTypeUrgent, byCreator.MessageType)
	assert.Equal(t, edited, byCreator.Message)
	assert.Len(t, env.bc.ofType(broadcast.DeltaLogUpdated), 2)
}

func TestDeleteLog_BroadcastsRemoval(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	event := env.createEvent(t)
	entry, err := env.logs.CreateLog(context.Background(), operator, newLogEntry(event.ID))
	require.NoError(t, err)

	// Действие
	err = env.logs.DeleteLog(context.Background(), operator, entry.ID)

	// Проверки
	require.NoError(t, err)
	deltas := env.bc.ofType(broadcast.DeltaLogDeleted)
	require.Len(t, deltas, 1)
	var removal broadcast.Removal
	require.NoError(t, json.Unmarshal(deltas[0].Payload, &removal))
	assert.Equal(t, entry.ID.String(), removal.ID)
	assert.Equal(t, event.ID, removal.EventID)

	_, err = env.logs.GetLog(context.Background(), entry.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListLogs_Filters(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	event := env.createEvent(t)
	other := env.createEvent(t)
	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, tg := range []string{"TG-Ops", "TG-Med", "TG-Ops"} {
		entry := newLogEntry(event.ID)
		entry.Talkgroup = tg
		entry.Timestamp = base.Add(time.Duration(i) * time.Minute)
		_, err := env.logs.CreateLog(context.Background(), operator, entry)
		require.NoError(t, err)
	}
	_, err := env.logs.CreateLog(context.Background(), operator, newLogEntry(other.ID))
	require.NoError(t, err)

	// Действие
	ops, err := env.logs.ListLogs(context.Background(), models.LogFilter{EventID: &event.ID, Talkgroup: "TG-Ops"})
	require.NoError(t, err)
	from, to := base.Add(time.Hour), base

	// Проверки
	require.Len(t, ops, 2)
	assert.True(t, ops[0].Timestamp.After(ops[1].Timestamp))
	_, rangeErr := env.logs.ListLogs(context.Background(), models.LogFilter{From: &from, To: &to})
	assert.True(t, apperr.Is(rangeErr, apperr.KindValidation))
}
