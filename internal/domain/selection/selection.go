package selection

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
)

// DateLayout formato de las fechas límite.
const DateLayout = "2006-01-02"

// Selection estado de lo que el usuario eligió para el reporte.
//
// Solo se guardan dos cosas para los productos: los IDs elegidos uno a uno (explicit)
// y la marca "seleccionar todo" sobre el pool filtrado. El conjunto efectivo se
// deriva siempre de ambas.
type Selection struct {
	catalog *entity.Catalog

	query      string
	categories MultiSelect[string]

	explicit  MultiSelect[string]
	selectAll bool

	warehouses MultiSelect[string]
	movements  MultiSelect[movement.Key]

	from string
	to   string
}

// New crea una selección vacía sobre el catálogo.
func New(catalog *entity.Catalog) *Selection {
	if catalog == nil {
		catalog = entity.NewCatalog(nil, nil, nil)
	}
	return &Selection{catalog: catalog}
}

// Catalog catálogo sobre el que se elige.
func (s *Selection) Catalog() *entity.Catalog { return s.catalog }

// ----- Filtro del pool -----

// SetQuery cambia el texto de búsqueda.
func (s *Selection) SetQuery(q string) { s.query = strings.TrimSpace(q) }

// Query texto de búsqueda actual.
func (s *Selection) Query() string { return s.query }

// SetCategories reemplaza las categorías del filtro.
func (s *Selection) SetCategories(names []string) { s.categories.Set(names) }

// ToggleCategory agrega o quita una categoría del filtro.
func (s *Selection) ToggleCategory(name string) { s.categories.Toggle(name) }

// Categories categorías del filtro en orden de elección.
func (s *Selection) Categories() []string { return s.categories.Values() }

// Pool productos que pasan el filtro, en orden del catálogo. Primero categoría, luego
// coincidencia por prefijo en nombre o código sin distinguir mayúsculas ni tildes.
func (s *Selection) Pool() []entity.CatalogItem {
	q := Normalize(s.query)
	out := make([]entity.CatalogItem, 0, len(s.catalog.Items))
	for _, it := range s.catalog.Items {
		if s.categories.Len() > 0 {
			if it.Category == nil || !s.categories.Has(*it.Category) {
				continue
			}
		}
		if q != "" && !matchesPrefix(it, q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesPrefix(it entity.CatalogItem, q string) bool {
	if strings.HasPrefix(Normalize(it.Label), q) {
		return true
	}
	return it.Code != nil && strings.HasPrefix(Normalize(*it.Code), q)
}

// Normalize descompone (NFKD), quita marcas diacríticas y pliega mayúsculas.
func Normalize(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// ----- Productos -----

// Effective conjunto efectivo: explicit ∪ (selectAll ? pool : ∅).
func (s *Selection) Effective() map[string]struct{} {
	eff := make(map[string]struct{}, s.explicit.Len())
	for _, id := range s.explicit.values {
		eff[id] = struct{}{}
	}
	if s.selectAll {
		for _, it := range s.Pool() {
			eff[it.ID] = struct{}{}
		}
	}
	return eff
}

// IsSelected indica si id está en el conjunto efectivo.
func (s *Selection) IsSelected(id string) bool {
	if s.explicit.Has(id) {
		return true
	}
	return s.selectAll && s.inPool(id)
}

// SelectAll valor de la marca "seleccionar todo".
func (s *Selection) SelectAll() bool { return s.selectAll }

// Explicit IDs elegidos uno a uno, en orden de elección.
func (s *Selection) Explicit() []string { return s.explicit.Values() }

// SelectedItems productos efectivos en orden del catálogo.
func (s *Selection) SelectedItems() []entity.CatalogItem {
	eff := s.Effective()
	out := make([]entity.CatalogItem, 0, len(eff))
	for _, it := range s.catalog.Items {
		if _, ok := eff[it.ID]; ok {
			out = append(out, it)
		}
	}
	return out
}

// SelectedIDs IDs efectivos en orden del catálogo.
func (s *Selection) SelectedIDs() []string {
	items := s.SelectedItems()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// AllPoolSelected true si el pool no está vacío y todos sus productos son efectivos.
func (s *Selection) AllPoolSelected() bool {
	return allSelected(s, s.Pool())
}

func allSelected(s *Selection, pool []entity.CatalogItem) bool {
	if len(pool) == 0 {
		return false
	}
	for _, it := range pool {
		if !s.IsSelected(it.ID) {
			return false
		}
	}
	return true
}

// Toggle elige o quita un producto. Un ID fuera del catálogo devuelve ErrNotFound;
// fuera del pool actual es válido.
func (s *Selection) Toggle(id string) error {
	if !s.catalog.Has(id) {
		return fmt.Errorf("producto %q: %w", id, domain.ErrNotFound)
	}
	if s.IsSelected(id) {
		s.deselect(id)
		return nil
	}
	s.explicit.Add(id)
	return nil
}

// Select agrega varios productos a la selección (unión).
func (s *Selection) Select(ids ...string) error {
	for _, id := range ids {
		if !s.catalog.Has(id) {
			return fmt.Errorf("producto %q: %w", id, domain.ErrNotFound)
		}
	}
	for _, id := range ids {
		if !s.IsSelected(id) {
			s.explicit.Add(id)
		}
	}
	return nil
}

// Remove quita un producto si estaba elegido.
func (s *Selection) Remove(id string) error {
	if !s.catalog.Has(id) {
		return fmt.Errorf("producto %q: %w", id, domain.ErrNotFound)
	}
	if s.IsSelected(id) {
		s.deselect(id)
	}
	return nil
}

// ToggleAll con todo el pool efectivo apaga la marca y quita el pool de explicit;
// si no, enciende la marca. Un pool vacío no cambia nada.
func (s *Selection) ToggleAll(pool []entity.CatalogItem) {
	if len(pool) == 0 {
		return
	}
	if allSelected(s, pool) {
		s.selectAll = false
		for _, it := range pool {
			s.explicit.Remove(it.ID)
		}
		return
	}
	s.selectAll = true
}

// ToggleAllVisible ToggleAll sobre el pool actual.
func (s *Selection) ToggleAllVisible() { s.ToggleAll(s.Pool()) }

// ClearProducts vacía la selección de productos.
func (s *Selection) ClearProducts() {
	s.explicit.Clear()
	s.selectAll = false
}

// deselect quita id del conjunto efectivo. Si solo estaba por la marca, el conjunto
// efectivo se materializa en explicit y la marca se apaga.
func (s *Selection) deselect(id string) {
	if s.selectAll && s.inPool(id) {
		for _, it := range s.catalog.Items {
			if s.IsSelected(it.ID) {
				s.explicit.Add(it.ID)
			}
		}
		s.selectAll = false
	}
	s.explicit.Remove(id)
}

func (s *Selection) inPool(id string) bool {
	for _, it := range s.Pool() {
		if it.ID == id {
			return true
		}
	}
	return false
}

// ----- Bodegas -----

// SetWarehouses reemplaza las bodegas. Todas deben existir en el catálogo.
func (s *Selection) SetWarehouses(ids []string) error {
	for _, id := range ids {
		if !s.hasWarehouse(id) {
			return fmt.Errorf("bodega %q: %w", id, domain.ErrNotFound)
		}
	}
	s.warehouses.Set(ids)
	return nil
}

// ToggleWarehouse agrega o quita una bodega.
func (s *Selection) ToggleWarehouse(id string) error {
	if !s.hasWarehouse(id) {
		return fmt.Errorf("bodega %q: %w", id, domain.ErrNotFound)
	}
	s.warehouses.Toggle(id)
	return nil
}

// ToggleAllWarehouses elige todas las bodegas del catálogo o ninguna.
func (s *Selection) ToggleAllWarehouses() { s.warehouses.ToggleAll(s.catalog.WarehouseKeys()) }

// Warehouses bodegas elegidas en orden de elección.
func (s *Selection) Warehouses() []string { return s.warehouses.Values() }

func (s *Selection) hasWarehouse(id string) bool {
	for _, w := range s.catalog.Warehouses {
		if w.Key() == id {
			return true
		}
	}
	return false
}

// ----- Tipos de movimiento -----

// SetMovements reemplaza los tipos de movimiento. Rechaza códigos fuera del conjunto cerrado.
func (s *Selection) SetMovements(codes []string) error {
	keys := make([]movement.Key, 0, len(codes))
	for _, c := range codes {
		k, err := movement.Parse(c)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}
	s.movements.Set(keys)
	return nil
}

// ToggleMovement agrega o quita un tipo de movimiento.
func (s *Selection) ToggleMovement(code string) error {
	k, err := movement.Parse(code)
	if err != nil {
		return err
	}
	s.movements.Toggle(k)
	return nil
}

// ToggleAllMovements elige los nueve tipos o ninguno.
func (s *Selection) ToggleAllMovements() { s.movements.ToggleAll(movement.All()) }

// Movements tipos elegidos en orden de elección.
func (s *Selection) Movements() []movement.Key { return s.movements.Values() }

// ----- Fechas -----

// SetDates fija los límites (YYYY-MM-DD, vacío = sin límite). Si ambos están, from <= to.
func (s *Selection) SetDates(from, to string) error {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	f, err := ParseDate(from)
	if err != nil {
		return domain.NewValidationError("dates", "Fecha inicial inválida (use AAAA-MM-DD)")
	}
	t, err := ParseDate(to)
	if err != nil {
		return domain.NewValidationError("dates", "Fecha final inválida (use AAAA-MM-DD)")
	}
	if f != nil && t != nil && f.After(*t) {
		return domain.NewValidationError("dates", "La fecha inicial no puede ser posterior a la final")
	}
	s.from, s.to = from, to
	return nil
}

// From fecha inicial ("" si no hay).
func (s *Selection) From() string { return s.from }

// To fecha final ("" si no hay).
func (s *Selection) To() string { return s.to }

// FromDate fecha inicial como time.Time UTC, o nil.
func (s *Selection) FromDate() *time.Time {
	d, _ := ParseDate(s.from)
	return d
}

// ToDate fecha final como time.Time UTC, o nil.
func (s *Selection) ToDate() *time.Time {
	d, _ := ParseDate(s.to)
	return d
}

// ParseDate interpreta YYYY-MM-DD en UTC. Vacío devuelve nil sin error.
func ParseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, v, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
