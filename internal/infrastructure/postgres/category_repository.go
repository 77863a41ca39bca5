package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo lectura de categorías sobre PostgreSQL.
type CategoryRepo struct {
	db Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(db Querier) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// NamesByIDs categ_id -> complete_name.
func (r *CategoryRepo) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT categ_id, complete_name FROM categories WHERE categ_id = ANY($1::bigint[])`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("category names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			name *string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if name != nil {
			out[id] = *name
		}
	}
	return out, rows.Err()
}

// ListAll nombres que entrega get_all_categories(); acepta filas de texto u objetos
// con name / display_name / label.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM get_all_categories()`)
	if err != nil {
		return nil, fmt.Errorf("get_all_categories: %w", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("get_all_categories: %w", err)
	}
	var out []string
	for _, m := range maps {
		if name := categoryName(m, "name", "display_name", "label", "get_all_categories"); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// ListActive categorías activas leídas de la tabla. Una fila sin columnas de estado cuenta como activa.
func (r *CategoryRepo) ListActive(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM categories`)
	if err != nil {
		if isUndefined(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list categories: %w", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var out []string
	for _, m := range maps {
		if !isActiveCategory(m) {
			continue
		}
		if name := categoryName(m, "display_name", "name"); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

func categoryName(m map[string]any, columns ...string) string {
	for _, c := range columns {
		if s, ok := m[c].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func isActiveCategory(m map[string]any) bool {
	active, hasActive := m["active"].(bool)
	isActive, hasIsActive := m["is_active"].(bool)
	if !hasActive && !hasIsActive {
		return true
	}
	return active || isActive
}
