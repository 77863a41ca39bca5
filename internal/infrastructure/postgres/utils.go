package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// Querier lo que los repositorios usan del pool; *pgxpool.Pool y pgx.Tx lo cumplen.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE que se tratan de forma especial.
const (
	codeQueryCanceled     = "57014" // statement_timeout o cancelación
	codeUndefinedTable    = "42P01"
	codeUndefinedFunction = "42883"
)

// remoteError clasifica la falla de un procedimiento remoto. El mensaje original se conserva.
func remoteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeQueryCanceled {
		// 57014 también llega por cancelación del usuario o del driver.
		timeout := domain.IsStatementTimeout(errors.New(pgErr.Message)) || errors.Is(err, context.DeadlineExceeded)
		return &domain.RemoteQueryError{Err: err, Timeout: timeout}
	}
	return domain.NewRemoteQueryError(err)
}

// isUndefined indica que la tabla o función no existe en esta base.
func isUndefined(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUndefinedTable || pgErr.Code == codeUndefinedFunction
	}
	return false
}
