package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// Tablas de bodegas conocidas; algunas instalaciones usan el nombre en singular.
const (
	WarehousesTable      = "warehouses"
	WarehouseLegacyTable = "warehouse"
)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	db    Querier
	table string
}

// NewWarehouseRepository construye el adaptador de lectura de bodegas sobre table.
func NewWarehouseRepository(db Querier, table string) *WarehouseRepo {
	return &WarehouseRepo{db: db, table: table}
}

// ListByIDs bodegas con esos IDs ordenadas por nombre visible. Sin nombre se usa el ID.
func (r *WarehouseRepo) ListByIDs(ctx context.Context, ids []int64) ([]entity.Warehouse, error) {
	query := fmt.Sprintf(`
		SELECT id, display_name
		FROM %s
		WHERE id = ANY($1::bigint[])
		ORDER BY display_name ASC`, pgx.Identifier{r.table}.Sanitize())
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()

	var list []entity.Warehouse
	for rows.Next() {
		var (
			id   int64
			name *string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		w := entity.Warehouse{ID: id, DisplayName: strconv.FormatInt(id, 10)}
		if name != nil && *name != "" {
			w.DisplayName = *name
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
