package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo lectura de la tabla de inventario. Se piden todas las columnas porque
// los nombres varían entre instalaciones; el mapeo a producto lo hace el cargador de catálogo.
type InventoryRepo struct {
	db Querier
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(db Querier) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// ListPage una página ordenada por nombre.
func (r *InventoryRepo) ListPage(ctx context.Context, limit, offset int) ([]repository.Record, error) {
	query := `SELECT * FROM inventory ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scan inventory: %w", err)
	}
	out := make([]repository.Record, len(maps))
	for i, m := range maps {
		out[i] = repository.Record(m)
	}
	return out, nil
}
