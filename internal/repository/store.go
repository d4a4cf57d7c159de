package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/shenikar/raynet_coordinator/internal/service"
)

// Store - документное хранилище событий поверх PostgreSQL.
// Каждая запись, порождающая дельту, в той же транзакции увеличивает events.seq.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) service.Repository {
	return &Store{db: db}
}

const eventColumns = `id, document, version, seq, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var (
		id                   uuid.UUID
		doc                  []byte
		version, seq         int64
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &doc, &version, &seq, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return unmarshalDocument(doc, id, version, seq, createdAt, updatedAt)
}

// nextSeq выдает следующий номер дельты события внутри транзакции
func nextSeq(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int64, error) {
	var seq int64
	err := tx.QueryRow(ctx, `UPDATE events SET seq = seq + 1 WHERE id = $1 RETURNING seq;`, eventID).Scan(&seq)
	if err != nil {
		return 0, classify(err, "next delta sequence")
	}
	return seq, nil
}

// CreateEvent сохраняет новое событие с версией 1
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	e.Version = 1
	doc, err := marshalDocument(e)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO events (id, name, status, created_by, start_date, document, version, seq, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, 1, $7, $8) RETURNING seq;
	`
	err = s.db.QueryRow(ctx, query,
		e.ID,
		e.Name,
		e.Status,
		e.CreatedBy,
		e.StartDate,
		doc,
		e.CreatedAt,
		e.UpdatedAt,
	).Scan(&e.Seq)
	if err != nil {
		return classify(err, "create event")
	}
	return nil
}

// GetEvent возвращает событие по UUID без ростера
func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1;`
	e, err := scanEvent(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("get event %s", id))
	}
	return e, nil
}

// ListEvents возвращает события, свежие по дате начала первыми
func (s *Store) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1 = '' OR status = $1)
		ORDER BY start_date DESC;
	`
	rows, err := s.db.Query(ctx, query, string(filter.Status))
	if err != nil {
		return nil, classify(err, "list events")
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, classify(err, "scan event row")
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "list events iteration")
	}
	return events, nil
}

// ListLinkedTo находит события, в документе которых есть связь с id
func (s *Store) ListLinkedTo(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM events WHERE document -> 'linked_events' ? $1;`, id.String())
	if err != nil {
		return nil, classify(err, "list linked events")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, classify(err, "scan linked events")
	}
	return ids, nil
}

// UpdateEvent записывает документ, если версия в хранилище совпадает с e.Version.
// В той же транзакции у назначений обнуляется current_zone, указывающая на удаленные зоны;
// очищенные назначения возвращаются со своими номерами дельт.
func (s *Store) UpdateEvent(ctx context.Context, e *models.Event, clearZones []uuid.UUID) ([]models.OperatorAssignment, error) {
	next := *e
	next.Version = e.Version + 1
	doc, err := marshalDocument(&next)
	if err != nil {
		return nil, err
	}

	var cleared []models.OperatorAssignment
	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		query := `
			UPDATE events SET
				name = $2,
				status = $3,
				start_date = $4,
				document = $5,
				version = version + 1,
				seq = seq + 1,
				updated_at = $6
			WHERE id = $1 AND version = $7
			RETURNING version, seq;
		`
		var version, seq int64
		err := tx.QueryRow(ctx, query, e.ID, e.Name, e.Status, e.StartDate, doc, e.UpdatedAt, e.Version).Scan(&version, &seq)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return s.casFailure(ctx, tx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1);`, "event", e.ID)
			}
			return err
		}
		e.Version, e.Seq = version, seq

		if len(clearZones) == 0 {
			return nil
		}
		zones := make([]string, len(clearZones))
		for i, z := range clearZones {
			zones[i] = z.String()
		}
		rows, err := tx.Query(ctx, `
			UPDATE operator_assignments SET
				current_zone = NULL,
				version = version + 1,
				updated_at = $3
			WHERE event_id = $1 AND current_zone = ANY($2::uuid[])
			RETURNING `+assignmentColumns+`;
		`, e.ID, zones, e.UpdatedAt)
		if err != nil {
			return err
		}
		cleared, err = pgx.CollectRows(rows, scanAssignment)
		if err != nil {
			return err
		}
		for i := range cleared {
			if cleared[i].Seq, err = nextSeq(ctx, tx, e.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, fmt.Sprintf("update event %s", e.ID))
	}
	return cleared, nil
}

// DeleteEvent удаляет событие; назначения и журнал уходят каскадом.
// Возвращает номер дельты eventDeleted.
func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) (int64, error) {
	var seq int64
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		if seq, err = nextSeq(ctx, tx, id); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM events WHERE id = $1;`, id)
		return err
	})
	if err != nil {
		return 0, classify(err, fmt.Sprintf("delete event %s", id))
	}
	return seq, nil
}

// casFailure отличает пропавшую строку от устаревшей версии
func (s *Store) casFailure(ctx context.Context, tx pgx.Tx, existsQuery, entity string, args ...any) error {
	var exists bool
	if err := tx.QueryRow(ctx, existsQuery, args...).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("%s not found", entity)
	}
	return apperr.Conflict("%s was modified concurrently", entity)
}
