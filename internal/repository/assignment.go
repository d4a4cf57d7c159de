package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

const assignmentColumns = `event_id, operator_id, status, current_zone, last_check_in, version, updated_at`

func scanAssignmentRow(row pgx.Row) (models.OperatorAssignment, error) {
	var a models.OperatorAssignment
	err := row.Scan(
		&a.EventID,
		&a.OperatorID,
		&a.Status,
		&a.CurrentZone,
		&a.LastCheckIn,
		&a.Version,
		&a.UpdatedAt,
	)
	return a, err
}

func scanAssignment(row pgx.CollectableRow) (models.OperatorAssignment, error) {
	return scanAssignmentRow(row)
}

// ListAssignments возвращает ростер события
func (s *Store) ListAssignments(ctx context.Context, eventID uuid.UUID) ([]models.OperatorAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM operator_assignments WHERE event_id = $1 ORDER BY operator_id;`
	rows, err := s.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, classify(err, "list assignments")
	}
	roster, err := pgx.CollectRows(rows, scanAssignment)
	if err != nil {
		return nil, classify(err, "scan assignment rows")
	}
	return roster, nil
}

func (s *Store) GetAssignment(ctx context.Context, eventID uuid.UUID, operatorID string) (*models.OperatorAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM operator_assignments WHERE event_id = $1 AND operator_id = $2;`
	a, err := scanAssignmentRow(s.db.QueryRow(ctx, query, eventID, operatorID))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("get assignment %s/%s", eventID, operatorID))
	}
	return &a, nil
}

// AddAssignment добавляет оператора в ростер. false без ошибки - оператор уже был в ростере.
func (s *Store) AddAssignment(ctx context.Context, a *models.OperatorAssignment) (bool, error) {
	var added bool
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO operator_assignments (event_id, operator_id, status, current_zone, last_check_in, version, updated_at)
			VALUES ($1, $2, $3, $4, $5, 1, $6)
			ON CONFLICT (event_id, operator_id) DO NOTHING;
		`
		tag, err := tx.Exec(ctx, query, a.EventID, a.OperatorID, a.Status, a.CurrentZone, a.LastCheckIn, a.UpdatedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		a.Version = 1
		if a.Seq, err = nextSeq(ctx, tx, a.EventID); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, classify(err, "add assignment")
	}
	return added, nil
}

// UpdateAssignment - compare-and-swap по версии строки назначения
func (s *Store) UpdateAssignment(ctx context.Context, a *models.OperatorAssignment) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return updateAssignment(ctx, tx, s, a)
	})
	if err != nil {
		return classify(err, fmt.Sprintf("update assignment %s/%s", a.EventID, a.OperatorID))
	}
	return nil
}

func updateAssignment(ctx context.Context, tx pgx.Tx, s *Store, a *models.OperatorAssignment) error {
	// строка события блокируется первой, как в UpdateEvent: запись ждет
	// параллельного снятия зон и видит документ уже после него
	var zone *string
	if a.CurrentZone != nil {
		z := a.CurrentZone.String()
		zone = &z
	}
	var zoneExists bool
	err := tx.QueryRow(ctx, `
		SELECT $2::text IS NULL
			OR COALESCE(document -> 'zones' @> jsonb_build_array(jsonb_build_object('id', $2::text)), false)
		FROM events WHERE id = $1
		FOR NO KEY UPDATE;
	`, a.EventID, zone).Scan(&zoneExists)
	if err != nil {
		return err
	}
	if !zoneExists {
		return apperr.Conflict("zone %s no longer exists in event %s", *a.CurrentZone, a.EventID)
	}

	query := `
		UPDATE operator_assignments SET
			status = $3,
			current_zone = $4,
			last_check_in = $5,
			version = version + 1,
			updated_at = $6
		WHERE event_id = $1 AND operator_id = $2 AND version = $7
		RETURNING version;
	`
	var version int64
	err = tx.QueryRow(ctx, query,
		a.EventID,
		a.OperatorID,
		a.Status,
		a.CurrentZone,
		a.LastCheckIn,
		a.UpdatedAt,
		a.Version,
	).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.casFailure(ctx, tx,
			`SELECT EXISTS (SELECT 1 FROM operator_assignments WHERE event_id = $1 AND operator_id = $2);`,
			"assignment", a.EventID, a.OperatorID)
	}
	if err != nil {
		return err
	}

	seq, err := nextSeq(ctx, tx, a.EventID)
	if err != nil {
		return err
	}
	a.Version, a.Seq = version, seq
	return nil
}

// RemoveAssignment убирает оператора из ростера и возвращает номер дельты operatorRemoved
func (s *Store) RemoveAssignment(ctx context.Context, eventID uuid.UUID, operatorID string) (int64, error) {
	var seq int64
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM operator_assignments WHERE event_id = $1 AND operator_id = $2;`, eventID, operatorID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("assignment %s/%s not found", eventID, operatorID)
		}
		seq, err = nextSeq(ctx, tx, eventID)
		return err
	})
	if err != nil {
		return 0, classify(err, "remove assignment")
	}
	return seq, nil
}
