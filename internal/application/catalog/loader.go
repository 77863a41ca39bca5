package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

const (
	inventoryPageSize = 1000
	inventoryMaxRows  = 100000
	categoryChunkSize = 500
)

// Columnas alternativas de la tabla de inventario, en orden de preferencia.
var (
	idColumns       = []string{"odoo_id", "id"}
	labelColumns    = []string{"name", "product_name", "title", "sku"}
	codeColumns     = []string{"barcode", "bar_code", "code", "sku", "ean", "upc", "product_code"}
	categoryColumns = []string{"complete_name", "category_name", "category", "categ_name", "category_full_name"}
)

// Loader arma el catálogo de una sesión: productos, categorías y bodegas.
type Loader struct {
	inventory    repository.InventoryRepository
	categories   repository.CategoryRepository
	warehouses   []repository.WarehouseRepository // en orden de preferencia
	warehouseIDs []int64
	log          *logger.Logger
}

// NewLoader construye el cargador. warehouses se consultan en orden hasta que uno
// devuelva filas.
func NewLoader(
	inventory repository.InventoryRepository,
	categories repository.CategoryRepository,
	warehouseIDs []int64,
	log *logger.Logger,
	warehouses ...repository.WarehouseRepository,
) *Loader {
	return &Loader{
		inventory:    inventory,
		categories:   categories,
		warehouses:   warehouses,
		warehouseIDs: warehouseIDs,
		log:          log,
	}
}

// Load lee inventario y bodegas en paralelo y luego resuelve categorías.
// Solo la falla del inventario es fatal.
func (l *Loader) Load(ctx context.Context) (*entity.Catalog, error) {
	var (
		records    []repository.Record
		warehouses []entity.Warehouse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = l.fetchInventory(gctx)
		return err
	})
	g.Go(func() error {
		warehouses = l.fetchWarehouses(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("inventario: %w", err)
	}

	names := l.fetchCategoryNames(ctx, records)
	items := make([]entity.CatalogItem, 0, len(records))
	for _, r := range records {
		items = append(items, ItemFromRecord(r, names))
	}
	options := l.categoryOptions(ctx, items)

	if l.log != nil {
		l.log.Info().
			Int("products", len(items)).
			Int("warehouses", len(warehouses)).
			Int("categories", len(options)).
			Msg("catálogo cargado")
	}
	return entity.NewCatalog(items, warehouses, options), nil
}

func (l *Loader) fetchInventory(ctx context.Context) ([]repository.Record, error) {
	var all []repository.Record
	for offset := 0; ; {
		page, err := l.inventory.ListPage(ctx, inventoryPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < inventoryPageSize {
			break
		}
		offset += inventoryPageSize
		if offset > inventoryMaxRows {
			break
		}
	}
	return all, nil
}

// fetchWarehouses primera fuente con filas; si ninguna responde, el ID hace de nombre.
func (l *Loader) fetchWarehouses(ctx context.Context) []entity.Warehouse {
	for _, repo := range l.warehouses {
		ws, err := repo.ListByIDs(ctx, l.warehouseIDs)
		if err != nil {
			if l.log != nil {
				l.log.Warn().Err(err).Msg("no se pudieron leer bodegas, se intenta la siguiente fuente")
			}
			continue
		}
		if len(ws) > 0 {
			return ws
		}
	}
	out := make([]entity.Warehouse, len(l.warehouseIDs))
	for i, id := range l.warehouseIDs {
		out[i] = entity.Warehouse{ID: id, DisplayName: strconv.FormatInt(id, 10)}
	}
	return out
}

// fetchCategoryNames resuelve category_id -> nombre completo en bloques. Ante cualquier
// falla devuelve un mapa vacío y los productos usan sus columnas propias.
func (l *Loader) fetchCategoryNames(ctx context.Context, records []repository.Record) map[int64]string {
	seen := make(map[int64]bool)
	var ids []int64
	for _, r := range records {
		id, ok := numericValue(r["category_id"])
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	names := make(map[int64]string)
	for start := 0; start < len(ids); start += categoryChunkSize {
		end := min(start+categoryChunkSize, len(ids))
		chunk, err := l.categories.NamesByIDs(ctx, ids[start:end])
		if err != nil {
			if l.log != nil {
				l.log.Warn().Err(err).Msg("no se pudieron resolver nombres de categoría")
			}
			return map[int64]string{}
		}
		for k, v := range chunk {
			names[k] = v
		}
	}
	return names
}

// categoryOptions get_all_categories(), si falla las activas de la tabla y, en último
// caso, las que traen los productos. Sin repetidos y ordenadas.
func (l *Loader) categoryOptions(ctx context.Context, items []entity.CatalogItem) []string {
	if names, err := l.categories.ListAll(ctx); err == nil && len(names) > 0 {
		return uniqueSorted(names)
	} else if err != nil && l.log != nil {
		l.log.Warn().Err(err).Msg("get_all_categories falló, se leen categorías activas")
	}
	if names, err := l.categories.ListActive(ctx); err == nil && len(names) > 0 {
		return uniqueSorted(names)
	}
	var names []string
	for _, it := range items {
		if it.Category != nil {
			names = append(names, *it.Category)
		}
	}
	return uniqueSorted(names)
}

// ItemFromRecord mapea una fila de inventario al producto del catálogo.
func ItemFromRecord(r repository.Record, categoryNames map[int64]string) entity.CatalogItem {
	label, ok := firstString(r, labelColumns)
	if !ok {
		label = stringValue(r["id"])
		if label == "" {
			label = "Unknown"
		}
	}
	code, hasCode := firstString(r, codeColumns)

	id, ok := firstString(r, idColumns)
	if !ok {
		id = label
	}

	item := entity.CatalogItem{ID: id, Label: label}
	if hasCode {
		item.Code = &code
	}
	if cid, ok := numericValue(r["category_id"]); ok {
		if name, ok := categoryNames[cid]; ok {
			item.Category = &name
			return item
		}
	}
	if cat, ok := firstString(r, categoryColumns); ok {
		item.Category = &cat
	}
	return item
}

func firstString(r repository.Record, columns []string) (string, bool) {
	for _, c := range columns {
		if s := stringValue(r[c]); s != "" {
			return s, true
		}
	}
	return "", false
}

func stringValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func numericValue(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case int:
		return int64(x), true
	case float64:
		if x != float64(int64(x)) {
			return 0, false
		}
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func uniqueSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
