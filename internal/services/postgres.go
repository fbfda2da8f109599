package services

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the part of *pgxpool.Pool the services depend on.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgErrorWithCode(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	_, ok := pgErrorWithCode(err, pgerrcode.UniqueViolation)
	return ok
}

// foreignKeyViolation returns the name of the violated constraint.
func foreignKeyViolation(err error) (string, bool) {
	pgErr, ok := pgErrorWithCode(err, pgerrcode.ForeignKeyViolation)
	if !ok {
		return "", false
	}
	return pgErr.ConstraintName, true
}
