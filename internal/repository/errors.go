package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate.
const (
	PgErrUniqueViolation     = "23505"
	PgErrForeignKeyViolation = "23503"
	PgErrUndefinedTable      = "42P01"
	PgErrUndefinedColumn     = "42703"
)

var ErrConflict = errors.New("conflicting record")

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case PgErrUniqueViolation, PgErrForeignKeyViolation:
		return errors.Join(ErrConflict, err)
	default:
		return err
	}
}
