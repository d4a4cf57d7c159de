package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusArchived  EventStatus = "ARCHIVED"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusCompleted, EventStatusArchived:
		return true
	}
	return false
}

type ZoneType string

const (
	ZoneTypeMedical  ZoneType = "MEDICAL"
	ZoneTypeSecurity ZoneType = "SECURITY"
	ZoneTypeComms    ZoneType = "COMMS"
	ZoneTypeGeneral  ZoneType = "GENERAL"
)

func (t ZoneType) Valid() bool {
	switch t {
	case ZoneTypeMedical, ZoneTypeSecurity, ZoneTypeComms, ZoneTypeGeneral:
		return true
	}
	return false
}

type ChannelMode string

const (
	ChannelModeFM    ChannelMode = "FM"
	ChannelModeDMR   ChannelMode = "DMR"
	ChannelModeDSTAR ChannelMode = "D-STAR"
)

func (m ChannelMode) Valid() bool {
	switch m {
	case ChannelModeFM, ChannelModeDMR, ChannelModeDSTAR:
		return true
	}
	return false
}

const (
	DefaultCheckInIntervalMinutes      = 30
	DefaultWelfareCheckIntervalMinutes = 60
	DefaultZoneColor                   = "#000000"
)

// Location - центр мероприятия и необязательный радиус в метрах
type Location struct {
	Coordinates Point    `json:"coordinates"`
	Radius      *float64 `json:"radius,omitempty"`
}

// Zone - именованная полигональная подзона мероприятия
type Zone struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        ZoneType  `json:"type"`
	Coordinates []Point   `json:"coordinates"`
	Color       string    `json:"color"`
	Description string    `json:"description,omitempty"`
}

// Channel - радиоканал. AssignedTo - слабая ссылка на оператора из ростера.
type Channel struct {
	Name       string      `json:"name"`
	Frequency  string      `json:"frequency"`
	Mode       ChannelMode `json:"mode"`
	Purpose    string      `json:"purpose"`
	AssignedTo string      `json:"assigned_to,omitempty"`
}

type Talkgroup struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Event - агрегат мероприятия.
// Operators заполняется только при чтении, в документе события ростер не хранится.
// ActivatedAt - момент последнего перехода в ACTIVE, от него отсчитываются сроки напоминаний.
type Event struct {
	ID                          uuid.UUID            `json:"id"`
	Name                        string               `json:"name"`
	Description                 string               `json:"description"`
	Status                      EventStatus          `json:"status"`
	StartDate                   time.Time            `json:"start_date"`
	EndDate                     *time.Time           `json:"end_date,omitempty"`
	Location                    Location             `json:"location"`
	Zones                       []Zone               `json:"zones"`
	Channels                    []Channel            `json:"channels"`
	Talkgroups                  []Talkgroup          `json:"talkgroups"`
	LinkedEvents                []uuid.UUID          `json:"linked_events"`
	CheckInIntervalMinutes      int                  `json:"check_in_interval_minutes"`
	WelfareCheckIntervalMinutes int                  `json:"welfare_check_interval_minutes"`
	CreatedBy                   string               `json:"created_by"`
	ActivatedAt                 *time.Time           `json:"activated_at,omitempty"`
	Operators                   []OperatorAssignment `json:"operators,omitempty"`
	Version                     int64                `json:"version"`
	Seq                         int64                `json:"-"`
	CreatedAt                   time.Time            `json:"created_at"`
	UpdatedAt                   time.Time            `json:"updated_at"`
}

// ApplyDefaults проставляет значения по умолчанию для незаполненных полей
func (e *Event) ApplyDefaults() {
	if e.Status == "" {
		e.Status = EventStatusActive
	}
	if e.CheckInIntervalMinutes == 0 {
		e.CheckInIntervalMinutes = DefaultCheckInIntervalMinutes
	}
	if e.WelfareCheckIntervalMinutes == 0 {
		e.WelfareCheckIntervalMinutes = DefaultWelfareCheckIntervalMinutes
	}
	for i := range e.Zones {
		if e.Zones[i].ID == uuid.Nil {
			e.Zones[i].ID = uuid.New()
		}
		if e.Zones[i].Color == "" {
			e.Zones[i].Color = DefaultZoneColor
		}
	}
}

// FindZone разрешает слабую ссылку на зону: nil, если зоны в событии нет
func (e *Event) FindZone(id uuid.UUID) *Zone {
	for i := range e.Zones {
		if e.Zones[i].ID == id {
			return &e.Zones[i]
		}
	}
	return nil
}

func (e *Event) IsLinked(id uuid.UUID) bool {
	return slices.Contains(e.LinkedEvents, id)
}

// AddLink добавляет связь, возвращает false если она уже была
func (e *Event) AddLink(id uuid.UUID) bool {
	if e.IsLinked(id) {
		return false
	}
	e.LinkedEvents = append(e.LinkedEvents, id)
	return true
}

// RemoveLink убирает связь, возвращает false если её не было
func (e *Event) RemoveLink(id uuid.UUID) bool {
	idx := slices.Index(e.LinkedEvents, id)
	if idx < 0 {
		return false
	}
	e.LinkedEvents = slices.Delete(e.LinkedEvents, idx, idx+1)
	return true
}

// ChannelFor возвращает канал, закрепленный за оператором
func (e *Event) ChannelFor(operatorID string) *Channel {
	for i := range e.Channels {
		if e.Channels[i].AssignedTo == operatorID {
			return &e.Channels[i]
		}
	}
	return nil
}

// Clone делает глубокую копию, чтобы read-modify-write не трогал прочитанный экземпляр
func (e *Event) Clone() *Event {
	c := *e
	if e.EndDate != nil {
		end := *e.EndDate
		c.EndDate = &end
	}
	if e.ActivatedAt != nil {
		at := *e.ActivatedAt
		c.ActivatedAt = &at
	}
	if e.Location.Radius != nil {
		r := *e.Location.Radius
		c.Location.Radius = &r
	}
	c.Zones = make([]Zone, len(e.Zones))
	for i, z := range e.Zones {
		z.Coordinates = slices.Clone(z.Coordinates)
		c.Zones[i] = z
	}
	c.Channels = slices.Clone(e.Channels)
	c.Talkgroups = slices.Clone(e.Talkgroups)
	c.LinkedEvents = slices.Clone(e.LinkedEvents)
	c.Operators = slices.Clone(e.Operators)
	return &c
}

// EventFilter - фильтр списка событий
type EventFilter struct {
	Status EventStatus
}

// EventPatch - частичное обновление события. nil означает "поле не передано".
type EventPatch struct {
	Name                        *string
	Description                 *string
	Status                      *EventStatus
	StartDate                   *time.Time
	EndDate                     *time.Time
	Location                    *Location
	Zones                       []Zone
	Channels                    []Channel
	Talkgroups                  []Talkgroup
	CheckInIntervalMinutes      *int
	WelfareCheckIntervalMinutes *int
}

// PositionReport - результат проверки точки против границ события и его зон
type PositionReport struct {
	Position    Point  `json:"position"`
	Zones       []Zone `json:"zones"`
	InsideEvent bool   `json:"inside_event"`
}
