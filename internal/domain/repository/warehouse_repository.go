package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// WarehouseRepository define el puerto de lectura de bodegas (DIP).
type WarehouseRepository interface {
	// ListByIDs bodegas con esos IDs, ordenadas por nombre visible.
	ListByIDs(ctx context.Context, ids []int64) ([]entity.Warehouse, error)
}
