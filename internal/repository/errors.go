package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
)

// classify переводит ошибку драйвера в код ядра.
// Уже классифицированные ошибки возвращаются как есть.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Wrap(apperr.KindNotFound, err, "%s: not found", op)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return apperr.Wrap(apperr.KindNotFound, err, "%s: referenced event not found", op)
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return apperr.Wrap(apperr.KindConflict, err, "%s: concurrent modification", op)
		case pgerrcode.QueryCanceled, pgerrcode.AdminShutdown, pgerrcode.CrashShutdown,
			pgerrcode.CannotConnectNow, pgerrcode.TooManyConnections:
			return apperr.StoreUnavailable(err, "%s: store unavailable", op)
		}
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) ||
		errors.As(err, &connectErr) || errors.As(err, &netErr) {
		return apperr.StoreUnavailable(err, "%s: store unavailable", op)
	}

	return fmt.Errorf("repository: %s: %w", op, err)
}
