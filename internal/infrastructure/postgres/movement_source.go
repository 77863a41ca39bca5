package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.MovementSource = (*MovementSource)(nil)

// MovementSource llama a los procedimientos de reporte de la base remota.
type MovementSource struct {
	db Querier
}

// NewMovementSource construye el adaptador sobre el pool (o una transacción).
func NewMovementSource(db Querier) *MovementSource {
	return &MovementSource{db: db}
}

// MovementReport ejecuta get_product_movement_report para un bloque de productos.
func (s *MovementSource) MovementReport(ctx context.Context, q repository.MovementChunkQuery) ([]report.RawRow, error) {
	movements := make([]string, len(q.Movements))
	for i, k := range q.Movements {
		movements[i] = string(k)
	}
	query := `
		SELECT * FROM get_product_movement_report(
			product_ids   => $1::bigint[],
			warehouse_ids => $2::bigint[],
			movements     => $3::text[],
			from_ts       => $4::timestamptz,
			to_ts         => $5::timestamptz
		)`
	rows, err := s.db.Query(ctx, query, q.ProductIDs, q.WarehouseIDs, movements, q.From, q.To)
	if err != nil {
		return nil, remoteError(err)
	}
	return collectRawRows(rows)
}

// AsOfReport ejecuta get_product_as_of_report para un bloque de productos.
func (s *MovementSource) AsOfReport(ctx context.Context, q repository.AsOfChunkQuery) ([]report.RawRow, error) {
	query := `
		SELECT * FROM get_product_as_of_report(
			product_ids   => $1::bigint[],
			warehouse_ids => $2::bigint[],
			from_date     => $3::date,
			to_date       => $4::date
		)`
	rows, err := s.db.Query(ctx, query, q.ProductIDs, q.WarehouseIDs, dateArg(q.FromDate), dateArg(q.ToDate))
	if err != nil {
		return nil, remoteError(err)
	}
	return collectRawRows(rows)
}

func collectRawRows(rows pgx.Rows) ([]report.RawRow, error) {
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, remoteError(err)
	}
	out := make([]report.RawRow, 0, len(maps))
	for _, m := range maps {
		if r, ok := rawRowFromMap(m); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// dateArg fecha de calendario como texto YYYY-MM-DD, o nil.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
