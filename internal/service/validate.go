package service

import (
	"strings"

	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/geo"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

// validateEvent проверяет документ события целиком после применения значений по умолчанию
func validateEvent(e *models.Event) error {
	if strings.TrimSpace(e.Name) == "" {
		return apperr.Validation("name is required")
	}
	if e.StartDate.IsZero() {
		return apperr.Validation("start_date is required")
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return apperr.Validation("end_date must not be before start_date")
	}
	if !e.Status.Valid() {
		return apperr.Validation("unknown event status %q", e.Status)
	}
	if e.CheckInIntervalMinutes < 1 {
		return apperr.Validation("check_in_interval_minutes must be at least 1")
	}
	if e.WelfareCheckIntervalMinutes < 1 {
		return apperr.Validation("welfare_check_interval_minutes must be at least 1")
	}

	if err := geo.ValidatePoint(e.Location.Coordinates); err != nil {
		return apperr.Validation("location: %v", err)
	}
	if e.Location.Radius != nil && *e.Location.Radius < 0 {
		return apperr.Validation("location radius must not be negative")
	}

	seenZones := make(map[string]struct{}, len(e.Zones))
	for i, z := range e.Zones {
		if strings.TrimSpace(z.Name) == "" {
			return apperr.Validation("zone %d: name is required", i)
		}
		if !z.Type.Valid() {
			return apperr.Validation("zone %q: unknown type %q", z.Name, z.Type)
		}
		if err := geo.ValidatePolygon(z.Coordinates); err != nil {
			return apperr.Validation("zone %q: %v", z.Name, err)
		}
		if _, dup := seenZones[z.ID.String()]; dup {
			return apperr.Validation("zone %q: duplicate zone id %s", z.Name, z.ID)
		}
		seenZones[z.ID.String()] = struct{}{}
	}

	for i, ch := range e.Channels {
		if strings.TrimSpace(ch.Name) == "" {
			return apperr.Validation("channel %d: name is required", i)
		}
		if strings.TrimSpace(ch.Frequency) == "" {
			return apperr.Validation("channel %q: frequency is required", ch.Name)
		}
		if !ch.Mode.Valid() {
			return apperr.Validation("channel %q: unknown mode %q", ch.Name, ch.Mode)
		}
	}

	for i, tg := range e.Talkgroups {
		if strings.TrimSpace(tg.Name) == "" {
			return apperr.Validation("talkgroup %d: name is required", i)
		}
	}
	return nil
}

// validateChannelOperators - слабая ссылка assignedTo должна указывать на оператора из ростера
func validateChannelOperators(e *models.Event, roster []models.OperatorAssignment) error {
	onRoster := make(map[string]struct{}, len(roster))
	for _, a := range roster {
		onRoster[a.OperatorID] = struct{}{}
	}
	for _, ch := range e.Channels {
		if ch.AssignedTo == "" {
			continue
		}
		if _, ok := onRoster[ch.AssignedTo]; !ok {
			return apperr.Validation("channel %q: operator %s is not on the event roster", ch.Name, ch.AssignedTo)
		}
	}
	return nil
}

// validateLogEntry проверяет обязательные поля записи журнала
func validateLogEntry(l *models.LogEntry) error {
	if strings.TrimSpace(l.Callsign) == "" {
		return apperr.Validation("callsign is required")
	}
	if strings.TrimSpace(l.Talkgroup) == "" {
		return apperr.Validation("talkgroup is required")
	}
	if strings.TrimSpace(l.Channel) == "" {
		return apperr.Validation("channel is required")
	}
	if strings.TrimSpace(l.Message) == "" {
		return apperr.Validation("message is required")
	}
	if !l.MessageType.Valid() {
		return apperr.Validation("unknown message type %q", l.MessageType)
	}
	return nil
}
