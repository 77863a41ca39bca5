package repository

import "context"

// Record fila cruda de la tabla de inventario. Las columnas varían entre instalaciones,
// por eso se entrega como mapa columna -> valor.
type Record map[string]any

// InventoryRepository lectura paginada de la tabla de inventario (productos del catálogo).
type InventoryRepository interface {
	// ListPage devuelve hasta limit filas a partir de offset, ordenadas por nombre.
	ListPage(ctx context.Context, limit, offset int) ([]Record, error)
}
