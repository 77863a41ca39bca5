package repository

import "context"

// CategoryRepository define el puerto de lectura de categorías (DIP).
type CategoryRepository interface {
	// NamesByIDs resuelve nombres completos por categ_id. IDs desconocidos se omiten.
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
	// ListAll nombres de categoría según la función get_all_categories().
	ListAll(ctx context.Context) ([]string, error)
	// ListActive nombres de las categorías activas leídos directo de la tabla.
	ListActive(ctx context.Context) ([]string, error)
}
