package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

const logColumns = `id, event_id, operator_id, callsign, talkgroup, channel, message_type, message, logged_at, created_at, updated_at`

func scanLogEntry(row pgx.Row) (*models.LogEntry, error) {
	l := &models.LogEntry{}
	err := row.Scan(
		&l.ID,
		&l.EventID,
		&l.OperatorID,
		&l.Callsign,
		&l.Talkgroup,
		&l.Channel,
		&l.MessageType,
		&l.Message,
		&l.Timestamp,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

func insertLogEntry(ctx context.Context, tx pgx.Tx, l *models.LogEntry) error {
	query := `
		INSERT INTO log_entries (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		l.ID,
		l.EventID,
		l.OperatorID,
		l.Callsign,
		l.Talkgroup,
		l.Channel,
		l.MessageType,
		l.Message,
		l.Timestamp,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	l.Seq, err = nextSeq(ctx, tx, l.EventID)
	return err
}

// CreateLog сохраняет запись журнала
func (s *Store) CreateLog(ctx context.Context, l *models.LogEntry) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return insertLogEntry(ctx, tx, l)
	})
	if err != nil {
		return classify(err, "create log entry")
	}
	return nil
}

func (s *Store) GetLog(ctx context.Context, id uuid.UUID) (*models.LogEntry, error) {
	l, err := scanLogEntry(s.db.QueryRow(ctx, `SELECT `+logColumns+` FROM log_entries WHERE id = $1;`, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("get log entry %s", id))
	}
	return l, nil
}

// ListLogs возвращает записи по фильтру, новые первыми
func (s *Store) ListLogs(ctx context.Context, filter models.LogFilter) ([]*models.LogEntry, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.EventID != nil {
		add("event_id = $%d", *filter.EventID)
	}
	if filter.Talkgroup != "" {
		add("talkgroup = $%d", filter.Talkgroup)
	}
	if filter.Channel != "" {
		add("channel = $%d", filter.Channel)
	}
	if filter.From != nil {
		add("logged_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("logged_at <= $%d", *filter.To)
	}

	query := `SELECT ` + logColumns + ` FROM log_entries`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY logged_at DESC;`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "list log entries")
	}
	defer rows.Close()

	entries := make([]*models.LogEntry, 0)
	for rows.Next() {
		l, err := scanLogEntry(rows)
		if err != nil {
			return nil, classify(err, "scan log entry row")
		}
		entries = append(entries, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "list log entries iteration")
	}
	return entries, nil
}

// UpdateLog перезаписывает изменяемые поля записи
func (s *Store) UpdateLog(ctx context.Context, l *models.LogEntry) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		query := `
			UPDATE log_entries SET
				talkgroup = $2,
				channel = $3,
				message_type = $4,
				message = $5,
				logged_at = $6,
				updated_at = $7
			WHERE id = $1;
		`
		tag, err := tx.Exec(ctx, query, l.ID, l.Talkgroup, l.Channel, l.MessageType, l.Message, l.Timestamp, l.UpdatedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("log entry %s not found", l.ID)
		}
		l.Seq, err = nextSeq(ctx, tx, l.EventID)
		return err
	})
	if err != nil {
		return classify(err, fmt.Sprintf("update log entry %s", l.ID))
	}
	return nil
}

// DeleteLog удаляет запись и возвращает номер дельты logDeleted
func (s *Store) DeleteLog(ctx context.Context, l *models.LogEntry) (int64, error) {
	var seq int64
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM log_entries WHERE id = $1;`, l.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("log entry %s not found", l.ID)
		}
		seq, err = nextSeq(ctx, tx, l.EventID)
		return err
	})
	if err != nil {
		return 0, classify(err, fmt.Sprintf("delete log entry %s", l.ID))
	}
	return seq, nil
}

// RecordWelfareCheck атомарно обновляет назначение и добавляет запись CHECK-IN
func (s *Store) RecordWelfareCheck(ctx context.Context, a *models.OperatorAssignment, l *models.LogEntry) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := updateAssignment(ctx, tx, s, a); err != nil {
			return err
		}
		return insertLogEntry(ctx, tx, l)
	})
	if err != nil {
		return classify(err, "record welfare check")
	}
	return nil
}
