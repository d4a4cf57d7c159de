package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

// marshalDocument сериализует агрегат события без ростера: ростер живет в operator_assignments
func marshalDocument(e *models.Event) ([]byte, error) {
	doc := *e
	doc.Operators = nil
	if doc.LinkedEvents == nil {
		doc.LinkedEvents = []uuid.UUID{}
	}
	data, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event document: %w", err)
	}
	return data, nil
}

// unmarshalDocument восстанавливает событие; колонки таблицы главнее значений внутри документа
func unmarshalDocument(data []byte, id uuid.UUID, version, seq int64, createdAt, updatedAt time.Time) (*models.Event, error) {
	e := &models.Event{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event document %s: %w", id, err)
	}
	e.ID = id
	e.Version = version
	e.Seq = seq
	e.CreatedAt = createdAt
	e.UpdatedAt = updatedAt
	e.Operators = nil
	return e, nil
}
