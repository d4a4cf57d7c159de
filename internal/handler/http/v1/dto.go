package v1

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

// LocationDTO - центр мероприятия [longitude, latitude] и радиус в метрах
// @Description Центр мероприятия и необязательный радиус
type LocationDTO struct {
	Coordinates models.Point `json:"coordinates" swaggertype:"array,number"`
	Radius      *float64     `json:"radius,omitempty" validate:"omitempty,gte=0"`
}

// ZoneDTO DTO зоны; id можно не передавать у новых зон
// @Description Полигональная зона мероприятия
type ZoneDTO struct {
	ID          *uuid.UUID     `json:"id,omitempty"`
	Name        string         `json:"name" validate:"required,max=255"`
	Type        string         `json:"type" validate:"required,oneof=MEDICAL SECURITY COMMS GENERAL"`
	Coordinates []models.Point `json:"coordinates" validate:"required,min=3,dive" swaggertype:"array,object"`
	Color       string         `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Description string         `json:"description,omitempty"`
}

// @Description Радиоканал мероприятия
type ChannelDTO struct {
	Name       string `json:"name" validate:"required,max=255"`
	Frequency  string `json:"frequency" validate:"required,max=64"`
	Mode       string `json:"mode" validate:"required,oneof=FM DMR D-STAR"`
	Purpose    string `json:"purpose,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// @Description Разговорная группа
type TalkgroupDTO struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
}

// CreateEventRequest DTO для создания события
// @Description DTO для создания события
type CreateEventRequest struct {
	Name                        string         `json:"name" validate:"required,min=2,max=255"`
	Description                 string         `json:"description,omitempty"`
	Status                      string         `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE COMPLETED ARCHIVED"`
	StartDate                   time.Time      `json:"start_date" validate:"required"`
	EndDate                     *time.Time     `json:"end_date,omitempty"`
	Location                    LocationDTO    `json:"location"`
	Zones                       []ZoneDTO      `json:"zones,omitempty" validate:"dive"`
	Channels                    []ChannelDTO   `json:"channels,omitempty" validate:"dive"`
	Talkgroups                  []TalkgroupDTO `json:"talkgroups,omitempty" validate:"dive"`
	CheckInIntervalMinutes      int            `json:"check_in_interval_minutes,omitempty" validate:"omitempty,min=1"`
	WelfareCheckIntervalMinutes int            `json:"welfare_check_interval_minutes,omitempty" validate:"omitempty,min=1"`
}

// UpdateEventRequest DTO для частичного обновления: отсутствующее поле не меняется
// @Description DTO для частичного обновления события
type UpdateEventRequest struct {
	Name                        *string         `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description                 *string         `json:"description,omitempty"`
	Status                      *string         `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE COMPLETED ARCHIVED"`
	StartDate                   *time.Time      `json:"start_date,omitempty"`
	EndDate                     *time.Time      `json:"end_date,omitempty"`
	Location                    *LocationDTO    `json:"location,omitempty"`
	Zones                       *[]ZoneDTO      `json:"zones,omitempty" validate:"omitempty,dive"`
	Channels                    *[]ChannelDTO   `json:"channels,omitempty" validate:"omitempty,dive"`
	Talkgroups                  *[]TalkgroupDTO `json:"talkgroups,omitempty" validate:"omitempty,dive"`
	CheckInIntervalMinutes      *int            `json:"check_in_interval_minutes,omitempty" validate:"omitempty,min=1"`
	WelfareCheckIntervalMinutes *int            `json:"welfare_check_interval_minutes,omitempty" validate:"omitempty,min=1"`
}

// @Description Оператор в ростере события
type OperatorResponse struct {
	EventID     uuid.UUID  `json:"event_id"`
	OperatorID  string     `json:"operator_id"`
	Status      string     `json:"status"`
	CurrentZone *uuid.UUID `json:"current_zone"`
	LastCheckIn *time.Time `json:"last_check_in"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventResponse DTO для ответа с событием и его ростером
// @Description DTO для ответа с событием
type EventResponse struct {
	ID                          uuid.UUID          `json:"id"`
	Name                        string             `json:"name"`
	Description                 string             `json:"description"`
	Status                      string             `json:"status"`
	StartDate                   time.Time          `json:"start_date"`
	EndDate                     *time.Time         `json:"end_date,omitempty"`
	Location                    LocationDTO        `json:"location"`
	Zones                       []ZoneDTO          `json:"zones"`
	Channels                    []ChannelDTO       `json:"channels"`
	Talkgroups                  []TalkgroupDTO     `json:"talkgroups"`
	LinkedEvents                []uuid.UUID        `json:"linked_events"`
	CheckInIntervalMinutes      int                `json:"check_in_interval_minutes"`
	WelfareCheckIntervalMinutes int                `json:"welfare_check_interval_minutes"`
	CreatedBy                   string             `json:"created_by"`
	ActivatedAt                 *time.Time         `json:"activated_at,omitempty"`
	Operators                   []OperatorResponse `json:"operators"`
	Version                     int64              `json:"version"`
	CreatedAt                   time.Time          `json:"created_at"`
	UpdatedAt                   time.Time          `json:"updated_at"`
}

// @Description Запрос на связывание двух событий
type LinkEventsRequest struct {
	TargetEventID uuid.UUID `json:"target_event_id" validate:"required" swaggertype:"string" format:"uuid"`
}

// @Description Запрос на добавление оператора в ростер
type AddOperatorRequest struct {
	OperatorID string `json:"operator_id" validate:"required,max=255"`
}

// CheckInRequest - тело необязательно; operator_id передает администратор, действующий за оператора
// @Description Отметка оператора
type CheckInRequest struct {
	OperatorID string        `json:"operator_id,omitempty" validate:"omitempty,max=255"`
	Position   *models.Point `json:"position,omitempty" swaggertype:"array,number"`
}

// @Description Подтверждение самочувствия
type WelfareCheckRequest struct {
	OperatorID string `json:"operator_id,omitempty" validate:"omitempty,max=255"`
}

// @Description Ручная смена статуса оператора
type OperatorStatusRequest struct {
	OperatorID string     `json:"operator_id,omitempty" validate:"omitempty,max=255"`
	Status     string     `json:"status" validate:"required,oneof=ACTIVE BREAK OFFLINE"`
	ZoneID     *uuid.UUID `json:"zone_id,omitempty" swaggertype:"string" format:"uuid"`
}

// @Description Результат подтверждения самочувствия
type WelfareCheckResponse struct {
	Operator OperatorResponse `json:"operator"`
	Log      LogEntryResponse `json:"log"`
}

// @Description Точка для проверки попадания в зоны
type LocateRequest struct {
	Position models.Point `json:"position" swaggertype:"array,number"`
}

// @Description Зоны, содержащие точку
type PositionResponse struct {
	Position    models.Point `json:"position" swaggertype:"array,number"`
	Zones       []ZoneDTO    `json:"zones"`
	InsideEvent bool         `json:"inside_event"`
}

// CreateLogRequest DTO для новой записи журнала
// @Description DTO для новой записи журнала
type CreateLogRequest struct {
	EventID     uuid.UUID  `json:"event_id" validate:"required" swaggertype:"string" format:"uuid"`
	Callsign    string     `json:"callsign,omitempty" validate:"omitempty,max=32"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	MessageType string     `json:"message_type,omitempty" validate:"omitempty,oneof=INFO URGENT CHECK-IN OTHER"`
	Message     string     `json:"message" validate:"required"`
	Talkgroup   string     `json:"talkgroup" validate:"required,max=255"`
	Channel     string     `json:"channel" validate:"required,max=255"`
}

// @Description DTO для правки записи журнала
type UpdateLogRequest struct {
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	MessageType *string    `json:"message_type,omitempty" validate:"omitempty,oneof=INFO URGENT CHECK-IN OTHER"`
	Message     *string    `json:"message,omitempty" validate:"omitempty,min=1"`
	Talkgroup   *string    `json:"talkgroup,omitempty" validate:"omitempty,max=255"`
	Channel     *string    `json:"channel,omitempty" validate:"omitempty,max=255"`
}

// @Description Запись радиожурнала
type LogEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	OperatorID  string    `json:"operator_id"`
	Callsign    string    `json:"callsign"`
	Timestamp   time.Time `json:"timestamp"`
	MessageType string    `json:"message_type"`
	Message     string    `json:"message"`
	Talkgroup   string    `json:"talkgroup"`
	Channel     string    `json:"channel"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StreamFrame - кадр WebSocket-потока
// @Description Кадр потока изменений
type StreamFrame struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	EventID    uuid.UUID       `json:"event_id"`
	Seq        int64           `json:"seq"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload" swaggertype:"object"`
}

// ErrorResponse - тело ответа с ошибкой
// @Description Ошибка
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}
