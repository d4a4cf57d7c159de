package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeInfo    MessageType = "INFO"
	MessageTypeUrgent  MessageType = "URGENT"
	MessageTypeCheckIn MessageType = "CHECK-IN"
	MessageTypeOther   MessageType = "OTHER"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeInfo, MessageTypeUrgent, MessageTypeCheckIn, MessageTypeOther:
		return true
	}
	return false
}

// LogEntry - запись радиожурнала события
type LogEntry struct {
	ID          uuid.UUID   `json:"id"`
	EventID     uuid.UUID   `json:"event_id"`
	OperatorID  string      `json:"operator_id"`
	Callsign    string      `json:"callsign"`
	Timestamp   time.Time   `json:"timestamp"`
	MessageType MessageType `json:"message_type"`
	Message     string      `json:"message"`
	Talkgroup   string      `json:"talkgroup"`
	Channel     string      `json:"channel"`
	Seq         int64       `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LogFilter - фильтр истории журнала
type LogFilter struct {
	EventID   *uuid.UUID
	Talkgroup string
	Channel   string
	From      *time.Time
	To        *time.Time
}

type LogPatch struct {
	Timestamp   *time.Time
	MessageType *MessageType
	Message     *string
	Talkgroup   *string
	Channel     *string
}
