package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/shenikar/raynet_coordinator/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(window time.Duration) *Hub {
	return NewHub(window, 16, logger.NewNop())
}

func testDelta(t *testing.T, eventID uuid.UUID, seq int64, deltaType DeltaType) Delta {
	t.Helper()
	d, err := NewDelta(deltaType, eventID, seq, time.Now(), map[string]int64{"seq": seq})
	require.NoError(t, err)
	return d
}

// drain вычитывает все, что уже лежит в очереди подписчика
func drain(sub *Subscription) []Delta {
	var out []Delta
	for {
		select {
		case d, ok := <-sub.C():
			if !ok {
				return out
			}
			out = append(out, d)
		default:
			return out
		}
	}
}

func seqs(ds []Delta) []int64 {
	out := make([]int64, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Seq)
	}
	return out
}

func TestHub_DeliversInOrderWithinEvent(t *testing.T) {
	// Подготовка
	hub := newTestHub(time.Minute)
	eventID := uuid.New()
	sub := hub.Subscribe([]uuid.UUID{eventID}, "op-1")

	// Действие
	hub.Publish(context.Background(), testDelta(t, eventID, 1, DeltaNewEvent))
	hub.Publish(context.Background(), testDelta(t, eventID, 3, DeltaEventUpdated))
	hub.Publish(context.Background(), testDelta(t, eventID, 2, DeltaEventUpdated))
	hub.Publish(context.Background(), testDelta(t, eventID, 4, DeltaEventUpdated))

	// Проверки
	assert.Equal(t, []int64{1, 2, 3, 4}, seqs(drain(sub)))
}

func TestHub_DropsDuplicateSeq(t *testing.T) {
	// Подготовка
	hub := newTestHub(time.Minute)
	eventID := uuid.New()
	sub := hub.Subscribe(nil, "op-1")
	d := testDelta(t, eventID, 1, DeltaNewEvent)

	// Действие
	hub.Publish(context.Background(), d)
	hub.Dispatch(d)
	hub.Publish(context.Background(), testDelta(t, eventID, 3, DeltaEventUpdated))
	hub.Dispatch(testDelta(t, eventID, 3, DeltaEventUpdated))

	// Проверки
	assert.Equal(t, []int64{1}, seqs(drain(sub)))
}

func TestHub_GapIsSkippedAfterWindowAndLateDeltaStillDelivered(t *testing.T) {
	// Подготовка
	hub := newTestHub(20 * time.Millisecond)
	eventID := uuid.New()
	sub := hub.Subscribe(nil, "")

	// Действие
	hub.Dispatch(testDelta(t, eventID, 1, DeltaNewEvent))
	hub.Dispatch(testDelta(t, eventID, 3, DeltaEventUpdated))

	// Проверки
	require.Equal(t, []int64{1}, seqs(drain(sub)))

	var got []Delta
	require.Eventually(t, func() bool {
		got = append(got, drain(sub)...)
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(3), got[0].Seq)

	hub.Dispatch(testDelta(t, eventID, 2, DeltaEventUpdated))
	hub.Dispatch(testDelta(t, eventID, 2, DeltaEventUpdated))
	assert.Equal(t, []int64{2}, seqs(drain(sub)))
}

func TestHub_OlderThanBaselineDeliveredOnce(t *testing.T) {
	// Подготовка
	hub := newTestHub(time.Minute)
	eventID := uuid.New()
	sub := hub.Subscribe(nil, "")

	// Действие
	hub.Dispatch(testDelta(t, eventID, 10, DeltaEventUpdated))
	hub.Dispatch(testDelta(t, eventID, 9, DeltaOperatorStatusChanged))
	hub.Dispatch(testDelta(t, eventID, 9, DeltaOperatorStatusChanged))

	// Проверки
	assert.Equal(t, []int64{10, 9}, seqs(drain(sub)))
}

func TestHub_EventsAreIndependent(t *testing.T) {
	// Подготовка
	hub := newTestHub(time.Minute)
	first, second := uuid.New(), uuid.New()
	subFirst := hub.Subscribe([]uuid.UUID{first}, "")
	subAll := hub.Subscribe(nil, "")

	// Действие
	hub.Dispatch(testDelta(t, first, 1, DeltaNewEvent))
	hub.Dispatch(testDelta(t, second, 1, DeltaNewEvent))
	hub.Dispatch(testDelta(t, first, 2, DeltaEventUpdated))

	// Проверки
	gotFirst := drain(subFirst)
	require.Len(t, gotFirst, 2)
	for _, d := range gotFirst {
		assert.Equal(t, first, d.EventID)
	}
	assert.Len(t, drain(subAll), 3)
}

func TestHub_DirectedDeltaReachesOnlyRecipients(t *testing.T) {
	// Подготовка
	hub := newTestHub(time.Minute)
	eventID := uuid.New()
	alice := hub.Subscribe([]uuid.UUID{eventID}, "alice")
	bob := hub.Subscribe([]uuid.UUID{eventID}, "bob")
	anonymous := hub.Subscribe(nil, "")

	prompt := testDelta(t, eventID, 0, DeltaCheckInDue)
	prompt.Recipients = []string{"alice"}

	// Действие
	hub.Publish(context.Background(), prompt)

	// Проверки
	assert.Len(t, drain(alice), 1)
	assert.Empty(t, drain(bob))
	assert.Empty(t, drain(anonymous))
}

func TestHub_SlowSubscriberIsDisconnected(t *testing.T) {
	// Подготовка
	hub := NewHub(time.Minute, 1, logger.NewNop())
	eventID := uuid.New()
	slow := hub.Subscribe(nil, "")
	fast := hub.Subscribe(nil, "")

	// Действие
	hub.Dispatch(testDelta(t, eventID, 1, DeltaNewEvent))
	<-fast.C()
	hub.Dispatch(testDelta(t, eventID, 2, DeltaEventUpdated))

	// Проверки
	d, ok := <-slow.C()
	require.True(t, ok)
	assert.Equal(t, int64(1), d.Seq)
	_, ok = <-slow.C()
	assert.False(t, ok, "slow subscriber channel must be closed")

	d, ok = <-fast.C()
	require.True(t, ok)
	assert.Equal(t, int64(2), d.Seq)
	assert.Equal(t, 1, hub.SubscriberCount())
}

func TestHub_EventDeletedResetsSequence(t *testing.T) {
	// Подготовка
	hub := newTestHub(time.Minute)
	eventID := uuid.New()
	sub := hub.Subscribe(nil, "")

	// Действие
	hub.Dispatch(testDelta(t, eventID, 1, DeltaNewEvent))
	hub.Dispatch(testDelta(t, eventID, 2, DeltaEventDeleted))

	// Проверки
	assert.Equal(t, []int64{1, 2}, seqs(drain(sub)))
	hub.mu.Lock()
	_, tracked := hub.sequences[eventID]
	hub.mu.Unlock()
	assert.False(t, tracked)
}

func statusDelta(t *testing.T, eventID uuid.UUID, seq int64, status models.EventStatus) Delta {
	t.Helper()
	d, err := NewDelta(DeltaEventUpdated, eventID, seq, time.Now(), &models.Event{ID: eventID, Status: status})
	require.NoError(t, err)
	return d
}

func (h *Hub) tracked(eventID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sequences[eventID]
	return ok
}

func TestHub_TerminalStatusReleasesSequence(t *testing.T) {
	tests := []struct {
		name    string
		status  models.EventStatus
		tracked bool
	}{
		{name: "completed", status: models.EventStatusCompleted, tracked: false},
		{name: "archived", status: models.EventStatusArchived, tracked: false},
		{name: "still active", status: models.EventStatusActive, tracked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Подготовка
			hub := newTestHub(time.Minute)
			eventID := uuid.New()
			sub := hub.Subscribe(nil, "")

			// Действие
			hub.Dispatch(testDelta(t, eventID, 1, DeltaNewEvent))
			hub.Dispatch(statusDelta(t, eventID, 2, tt.status))

			// Проверки
			assert.Equal(t, []int64{1, 2}, seqs(drain(sub)))
			assert.Equal(t, tt.tracked, hub.tracked(eventID))
		})
	}
}

func TestHub_TerminalStatusKeepsSequenceWithPendingDeltas(t *testing.T) {
	// Подготовка
	hub := newTestHub(time.Minute)
	eventID := uuid.New()
	sub := hub.Subscribe(nil, "")
	hub.Dispatch(testDelta(t, eventID, 1, DeltaNewEvent))

	// Действие
	hub.Dispatch(testDelta(t, eventID, 4, DeltaNewLog))
	hub.Dispatch(statusDelta(t, eventID, 2, models.EventStatusCompleted))

	// Проверки
	assert.Equal(t, []int64{1, 2}, seqs(drain(sub)))
	assert.True(t, hub.tracked(eventID), "pending seq 4 still needs its sequence state")

	hub.Dispatch(testDelta(t, eventID, 3, DeltaLogUpdated))
	assert.Equal(t, []int64{3, 4}, seqs(drain(sub)))
}

func TestHub_DeltasAfterReleasedSequenceStartNewBaseline(t *testing.T) {
	// Подготовка
	hub := newTestHub(time.Minute)
	eventID := uuid.New()
	sub := hub.Subscribe(nil, "")
	hub.Dispatch(testDelta(t, eventID, 1, DeltaNewEvent))
	hub.Dispatch(statusDelta(t, eventID, 2, models.EventStatusCompleted))
	drain(sub)

	// Действие
	hub.Dispatch(statusDelta(t, eventID, 3, models.EventStatusActive))
	hub.Dispatch(testDelta(t, eventID, 4, DeltaNewLog))

	// Проверки
	assert.Equal(t, []int64{3, 4}, seqs(drain(sub)))
	assert.True(t, hub.tracked(eventID))
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	hub := newTestHub(time.Minute)
	sub := hub.Subscribe(nil, "")

	sub.Close()
	sub.Close()

	_, ok := <-sub.C()
	assert.False(t, ok)
	assert.Equal(t, 0, hub.SubscriberCount())
}
