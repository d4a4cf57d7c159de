package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkEvents_SymmetricAndIdempotent(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	a := env.createEvent(t)
	b := env.createEvent(t)
	env.bc.reset()

	// Действие
	linked, err := env.events.LinkEvents(context.Background(), creator, a.ID, b.ID)
	require.NoError(t, err)
	updatesAfterFirst := env.repo.updates
	again, err := env.events.LinkEvents(context.Background(), creator, b.ID, a.ID)
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, []uuid.UUID{b.ID}, linked.LinkedEvents)
	assert.Equal(t, []uuid.UUID{a.ID}, again.LinkedEvents)
	assert.Equal(t, updatesAfterFirst, env.repo.updates, "second link must not write")

	storedA, err := env.repo.GetEvent(context.Background(), a.ID)
	require.NoError(t, err)
	storedB, err := env.repo.GetEvent(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, storedA.IsLinked(b.ID))
	assert.True(t, storedB.IsLinked(a.ID))
	assert.Len(t, env.bc.ofType(broadcast.DeltaEventUpdated), 2)
}

func TestLinkEvents_Validation(t *testing.T) {
	env := newTestEnv(t)
	a := env.createEvent(t)

	_, selfErr := env.events.LinkEvents(context.Background(), creator, a.ID, a.ID)
	_, missingErr := env.events.LinkEvents(context.Background(), creator, a.ID, uuid.New())
	_, forbiddenErr := env.events.LinkEvents(context.Background(), stranger, a.ID, env.createEvent(t).ID)

	assert.True(t, apperr.Is(selfErr, apperr.KindValidation))
	assert.True(t, apperr.Is(missingErr, apperr.KindNotFound))
	assert.True(t, apperr.Is(forbiddenErr, apperr.KindForbidden))
}

func TestLinkEvents_CompensatesWhenSecondWriteFails(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	a := env.createEvent(t)
	b := env.createEvent(t)
	env.repo.failUpdate[b.ID] = apperr.StoreUnavailable(errors.New("connection reset"), "store unavailable")

	// Действие
	_, err := env.events.LinkEvents(context.Background(), creator, a.ID, b.ID)

	// Проверки
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStoreUnavailable))
	storedA, err := env.repo.GetEvent(context.Background(), a.ID)
	require.NoError(t, err)
	assert.False(t, storedA.IsLinked(b.ID))
	storedB, err := env.repo.GetEvent(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, storedB.LinkedEvents)
}

func TestGetEvent_RepairsLinksOnRead(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	peer := env.createEvent(t)
	deletedID := uuid.New()
	broken := validEvent()
	broken.ID = uuid.New()
	broken.CreatedBy = creator.ID
	broken.ApplyDefaults()
	broken.CreatedAt = time.Now().UTC()
	broken.UpdatedAt = broken.CreatedAt
	broken.LinkedEvents = []uuid.UUID{deletedID, peer.ID}
	env.repo.put(broken)

	// Действие
	got, err := env.events.GetEvent(context.Background(), broken.ID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{peer.ID}, got.LinkedEvents)

	stored, err := env.repo.GetEvent(context.Background(), broken.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{peer.ID}, stored.LinkedEvents)

	storedPeer, err := env.repo.GetEvent(context.Background(), peer.ID)
	require.NoError(t, err)
	assert.True(t, storedPeer.IsLinked(broken.ID))
}
