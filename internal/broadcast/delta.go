// Package broadcast - рассылка дельт изменений подписчикам с сохранением порядка внутри события.
package broadcast

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

type DeltaType string

const (
	DeltaNewEvent              DeltaType = "newEvent"
	DeltaEventUpdated          DeltaType = "eventUpdated"
	DeltaEventDeleted          DeltaType = "eventDeleted"
	DeltaOperatorStatusChanged DeltaType = "operatorStatusChanged"
	DeltaOperatorRemoved       DeltaType = "operatorRemoved"
	DeltaNewLog                DeltaType = "newLog"
	DeltaLogUpdated            DeltaType = "logUpdated"
	DeltaLogDeleted            DeltaType = "logDeleted"
	DeltaCheckInDue            DeltaType = "checkInDue"
	DeltaWelfareCheckDue       DeltaType = "welfareCheckDue"
)

// Delta - конверт одного изменения состояния.
// Seq - порядковый номер записи внутри события, выданный хранилищем; 0 у адресных уведомлений планировщика.
// Recipients ограничивает доставку сессиями перечисленных операторов.
// Origin - реплика, на которой произошла запись.
type Delta struct {
	ID         uuid.UUID       `json:"id"`
	Type       DeltaType       `json:"type"`
	EventID    uuid.UUID       `json:"event_id"`
	Seq        int64           `json:"seq"`
	OccurredAt time.Time       `json:"occurred_at"`
	Origin     string          `json:"origin,omitempty"`
	Recipients []string        `json:"recipients,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// NewDelta сериализует payload и собирает конверт
func NewDelta(deltaType DeltaType, eventID uuid.UUID, seq int64, at time.Time, payload any) (Delta, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Delta{}, fmt.Errorf("failed to marshal %s payload: %w", deltaType, err)
	}
	return Delta{
		ID:         uuid.New(),
		Type:       deltaType,
		EventID:    eventID,
		Seq:        seq,
		OccurredAt: at.UTC(),
		Payload:    raw,
	}, nil
}

func (d Delta) Sequenced() bool {
	return d.Seq > 0
}

// DeliverableTo - пустой список получателей означает всех подписчиков события
func (d Delta) DeliverableTo(principalID string) bool {
	if len(d.Recipients) == 0 {
		return true
	}
	return principalID != "" && slices.Contains(d.Recipients, principalID)
}

// Prompt - полезная нагрузка checkInDue и welfareCheckDue
type Prompt struct {
	EventID         uuid.UUID `json:"event_id"`
	Operators       []string  `json:"operators"`
	IntervalMinutes int       `json:"interval_minutes"`
	DueAt           time.Time `json:"due_at"`
}

// Removal - полезная нагрузка eventDeleted, operatorRemoved и logDeleted
type Removal struct {
	ID         string    `json:"id"`
	EventID    uuid.UUID `json:"event_id"`
	OperatorID string    `json:"operator_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
