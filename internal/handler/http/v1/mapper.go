package v1

import (
	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/broadcast"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

func dtoToZones(in []ZoneDTO) []models.Zone {
	zones := make([]models.Zone, 0, len(in))
	for _, z := range in {
		zone := models.Zone{
			Name:        z.Name,
			Type:        models.ZoneType(z.Type),
			Coordinates: z.Coordinates,
			Color:       z.Color,
			Description: z.Description,
		}
		if z.ID != nil {
			zone.ID = *z.ID
		}
		zones = append(zones, zone)
	}
	return zones
}

func dtoToChannels(in []ChannelDTO) []models.Channel {
	channels := make([]models.Channel, 0, len(in))
	for _, ch := range in {
		channels = append(channels, models.Channel{
			Name:       ch.Name,
			Frequency:  ch.Frequency,
			Mode:       models.ChannelMode(ch.Mode),
			Purpose:    ch.Purpose,
			AssignedTo: ch.AssignedTo,
		})
	}
	return channels
}

func dtoToTalkgroups(in []TalkgroupDTO) []models.Talkgroup {
	talkgroups := make([]models.Talkgroup, 0, len(in))
	for _, tg := range in {
		talkgroups = append(talkgroups, models.Talkgroup{Name: tg.Name, Description: tg.Description})
	}
	return talkgroups
}

func dtoToLocation(in LocationDTO) models.Location {
	return models.Location{Coordinates: in.Coordinates, Radius: in.Radius}
}

// DTOToEventModel преобразует запрос на создание в доменную модель
func DTOToEventModel(dto CreateEventRequest) *models.Event {
	return &models.Event{
		Name:                        dto.Name,
		Description:                 dto.Description,
		Status:                      models.EventStatus(dto.Status),
		StartDate:                   dto.StartDate,
		EndDate:                     dto.EndDate,
		Location:                    dtoToLocation(dto.Location),
		Zones:                       dtoToZones(dto.Zones),
		Channels:                    dtoToChannels(dto.Channels),
		Talkgroups:                  dtoToTalkgroups(dto.Talkgroups),
		CheckInIntervalMinutes:      dto.CheckInIntervalMinutes,
		WelfareCheckIntervalMinutes: dto.WelfareCheckIntervalMinutes,
	}
}

// DTOToEventPatch переносит только переданные поля; пустой список зон означает "удалить все зоны"
func DTOToEventPatch(dto UpdateEventRequest) models.EventPatch {
	patch := models.EventPatch{
		Name:                        dto.Name,
		Description:                 dto.Description,
		StartDate:                   dto.StartDate,
		EndDate:                     dto.EndDate,
		CheckInIntervalMinutes:      dto.CheckInIntervalMinutes,
		WelfareCheckIntervalMinutes: dto.WelfareCheckIntervalMinutes,
	}
	if dto.Status != nil {
		status := models.EventStatus(*dto.Status)
		patch.Status = &status
	}
	if dto.Location != nil {
		location := dtoToLocation(*dto.Location)
		patch.Location = &location
	}
	if dto.Zones != nil {
		patch.Zones = dtoToZones(*dto.Zones)
	}
	if dto.Channels != nil {
		patch.Channels = dtoToChannels(*dto.Channels)
	}
	if dto.Talkgroups != nil {
		patch.Talkgroups = dtoToTalkgroups(*dto.Talkgroups)
	}
	return patch
}

func zonesToDTO(in []models.Zone) []ZoneDTO {
	zones := make([]ZoneDTO, 0, len(in))
	for _, z := range in {
		id := z.ID
		zones = append(zones, ZoneDTO{
			ID:          &id,
			Name:        z.Name,
			Type:        string(z.Type),
			Coordinates: z.Coordinates,
			Color:       z.Color,
			Description: z.Description,
		})
	}
	return zones
}

// ModelToOperatorResponse преобразует назначение в DTO
func ModelToOperatorResponse(a *models.OperatorAssignment) OperatorResponse {
	return OperatorResponse{
		EventID:     a.EventID,
		OperatorID:  a.OperatorID,
		Status:      string(a.Status),
		CurrentZone: a.CurrentZone,
		LastCheckIn: a.LastCheckIn,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ModelsToOperatorResponses(in []models.OperatorAssignment) []OperatorResponse {
	responses := make([]OperatorResponse, len(in))
	for i := range in {
		responses[i] = ModelToOperatorResponse(&in[i])
	}
	return responses
}

// ModelToEventResponse преобразует доменную модель в DTO для ответа
func ModelToEventResponse(e *models.Event) *EventResponse {
	resp := &EventResponse{
		ID:                          e.ID,
		Name:                        e.Name,
		Description:                 e.Description,
		Status:                      string(e.Status),
		StartDate:                   e.StartDate,
		EndDate:                     e.EndDate,
		Location:                    LocationDTO{Coordinates: e.Location.Coordinates, Radius: e.Location.Radius},
		Zones:                       zonesToDTO(e.Zones),
		Channels:                    make([]ChannelDTO, 0, len(e.Channels)),
		Talkgroups:                  make([]TalkgroupDTO, 0, len(e.Talkgroups)),
		LinkedEvents:                e.LinkedEvents,
		CheckInIntervalMinutes:      e.CheckInIntervalMinutes,
		WelfareCheckIntervalMinutes: e.WelfareCheckIntervalMinutes,
		CreatedBy:                   e.CreatedBy,
		ActivatedAt:                 e.ActivatedAt,
		Operators:                   ModelsToOperatorResponses(e.Operators),
		Version:                     e.Version,
		CreatedAt:                   e.CreatedAt,
		UpdatedAt:                   e.UpdatedAt,
	}
	for _, ch := range e.Channels {
		resp.Channels = append(resp.Channels, ChannelDTO{
			Name:       ch.Name,
			Frequency:  ch.Frequency,
			Mode:       string(ch.Mode),
			Purpose:    ch.Purpose,
			AssignedTo: ch.AssignedTo,
		})
	}
	for _, tg := range e.Talkgroups {
		resp.Talkgroups = append(resp.Talkgroups, TalkgroupDTO{Name: tg.Name, Description: tg.Description})
	}
	if resp.LinkedEvents == nil {
		resp.LinkedEvents = []uuid.UUID{}
	}
	return resp
}

// ModelsToEventResponses преобразует слайс моделей в слайс DTO
func ModelsToEventResponses(events []*models.Event) []*EventResponse {
	responses := make([]*EventResponse, len(events))
	for i, e := range events {
		responses[i] = ModelToEventResponse(e)
	}
	return responses
}

func ModelToPositionResponse(r *models.PositionReport) PositionResponse {
	return PositionResponse{
		Position:    r.Position,
		Zones:       zonesToDTO(r.Zones),
		InsideEvent: r.InsideEvent,
	}
}

func DTOToLogModel(dto CreateLogRequest) *models.LogEntry {
	entry := &models.LogEntry{
		EventID:     dto.EventID,
		Callsign:    dto.Callsign,
		MessageType: models.MessageType(dto.MessageType),
		Message:     dto.Message,
		Talkgroup:   dto.Talkgroup,
		Channel:     dto.Channel,
	}
	if dto.Timestamp != nil {
		entry.Timestamp = *dto.Timestamp
	}
	return entry
}

func DTOToLogPatch(dto UpdateLogRequest) models.LogPatch {
	patch := models.LogPatch{
		Timestamp: dto.Timestamp,
		Message:   dto.Message,
		Talkgroup: dto.Talkgroup,
		Channel:   dto.Channel,
	}
	if dto.MessageType != nil {
		mt := models.MessageType(*dto.MessageType)
		patch.MessageType = &mt
	}
	return patch
}

func ModelToLogEntryResponse(l *models.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:          l.ID,
		EventID:     l.EventID,
		OperatorID:  l.OperatorID,
		Callsign:    l.Callsign,
		Timestamp:   l.Timestamp,
		MessageType: string(l.MessageType),
		Message:     l.Message,
		Talkgroup:   l.Talkgroup,
		Channel:     l.Channel,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func ModelsToLogEntryResponses(entries []*models.LogEntry) []LogEntryResponse {
	responses := make([]LogEntryResponse, len(entries))
	for i, l := range entries {
		responses[i] = ModelToLogEntryResponse(l)
	}
	return responses
}

// DeltaToFrame - дельта без списка получателей
func DeltaToFrame(d broadcast.Delta) StreamFrame {
	return StreamFrame{
		ID:         d.ID,
		Type:       string(d.Type),
		EventID:    d.EventID,
		Seq:        d.Seq,
		OccurredAt: d.OccurredAt,
		Payload:    d.Payload,
	}
}
