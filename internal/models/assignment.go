package models

import (
	"time"

	"github.com/google/uuid"
)

type OperatorStatus string

const (
	OperatorStatusActive  OperatorStatus = "ACTIVE"
	OperatorStatusBreak   OperatorStatus = "BREAK"
	OperatorStatusOffline OperatorStatus = "OFFLINE"
)

func (s OperatorStatus) Valid() bool {
	switch s {
	case OperatorStatusActive, OperatorStatusBreak, OperatorStatusOffline:
		return true
	}
	return false
}

// OperatorAssignment - запись присутствия оператора в рамках одного события.
// CurrentZone - слабая ссылка на зону того же события.
type OperatorAssignment struct {
	EventID     uuid.UUID      `json:"event_id"`
	OperatorID  string         `json:"operator_id"`
	Status      OperatorStatus `json:"status"`
	CurrentZone *uuid.UUID     `json:"current_zone,omitempty"`
	LastCheckIn *time.Time     `json:"last_check_in,omitempty"`
	Version     int64          `json:"version"`
	Seq         int64          `json:"-"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// StatusChange - полезная нагрузка дельты operatorStatusChanged
type StatusChange struct {
	EventID     uuid.UUID      `json:"event_id"`
	OperatorID  string         `json:"operator_id"`
	Status      OperatorStatus `json:"status"`
	ZoneID      *uuid.UUID     `json:"zone_id,omitempty"`
	LastCheckIn *time.Time     `json:"last_check_in,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

func (a *OperatorAssignment) StatusChange(at time.Time) StatusChange {
	return StatusChange{
		EventID:     a.EventID,
		OperatorID:  a.OperatorID,
		Status:      a.Status,
		ZoneID:      a.CurrentZone,
		LastCheckIn: a.LastCheckIn,
		Timestamp:   at,
	}
}
