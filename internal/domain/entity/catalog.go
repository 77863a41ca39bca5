package entity

// Catalog agrupa lo que el colaborador de catálogo entrega para una sesión de trabajo:
// productos, bodegas y nombres de categoría. No se modifica después de cargado.
type Catalog struct {
	Items      []CatalogItem
	Warehouses []Warehouse
	Categories []string

	byID map[string]int
}

// NewCatalog construye el catálogo e indexa los productos por ID.
// Si hay IDs repetidos se conserva la primera aparición.
func NewCatalog(items []CatalogItem, warehouses []Warehouse, categories []string) *Catalog {
	c := &Catalog{
		Items:      make([]CatalogItem, 0, len(items)),
		Warehouses: warehouses,
		Categories: categories,
		byID:       make(map[string]int, len(items)),
	}
	for _, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			continue
		}
		c.byID[it.ID] = len(c.Items)
		c.Items = append(c.Items, it)
	}
	return c
}

// Item busca un producto por ID.
func (c *Catalog) Item(id string) (CatalogItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return CatalogItem{}, false
	}
	return c.Items[i], true
}

// Has indica si el ID pertenece al catálogo.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// WarehouseName nombre visible de la bodega; si no se conoce, el propio ID.
func (c *Catalog) WarehouseName(key string) string {
	for _, w := range c.Warehouses {
		if w.Key() == key {
			return w.DisplayName
		}
	}
	return key
}

// WarehouseKeys IDs canónicos de todas las bodegas, en el orden del catálogo.
func (c *Catalog) WarehouseKeys() []string {
	out := make([]string, 0, len(c.Warehouses))
	for _, w := range c.Warehouses {
		out = append(out, w.Key())
	}
	return out
}
