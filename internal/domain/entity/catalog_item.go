package entity

// CatalogItem representa un producto del catálogo. Identidad = ID.
// Inmutable una vez cargado; la selección lo referencia sin duplicarlo.
type CatalogItem struct {
	ID       string
	Label    string
	Code     *string
	Category *string
}

// CodeOrEmpty devuelve el código de barras/SKU o "".
func (i CatalogItem) CodeOrEmpty() string {
	if i.Code == nil {
		return ""
	}
	return *i.Code
}

// CategoryOrEmpty devuelve la categoría o "".
func (i CatalogItem) CategoryOrEmpty() string {
	if i.Category == nil {
		return ""
	}
	return *i.Category
}
