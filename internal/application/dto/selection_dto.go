package dto

// SelectionFilterRequest texto de búsqueda y categorías del pool.
type SelectionFilterRequest struct {
	Query      string   `json:"query" validate:"max=200"`
	Categories []string `json:"categories" validate:"omitempty,dive,min=1"`
}

// SelectionProductsRequest productos a agregar a la selección (unión).
type SelectionProductsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// SelectionWarehousesRequest reemplaza las bodegas elegidas.
type SelectionWarehousesRequest struct {
	IDs []string `json:"ids" validate:"dive,required"`
}

// SelectionMovementsRequest reemplaza los tipos de movimiento elegidos.
type SelectionMovementsRequest struct {
	Movements []string `json:"movements" validate:"dive,required"`
}

// SelectionCategoriesRequest reemplaza las categorías del filtro.
type SelectionCategoriesRequest struct {
	Categories []string `json:"categories" validate:"dive,min=1"`
}

// SelectionDatesRequest límites de fecha (YYYY-MM-DD, vacío = sin límite).
type SelectionDatesRequest struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

// SelectionResponse estado de la selección del usuario.
type SelectionResponse struct {
	Query           string   `json:"query"`
	Categories      []string `json:"categories"`
	SelectAll       bool     `json:"select_all"`
	Explicit        []string `json:"explicit"`
	SelectedIDs     []string `json:"selected_ids"`
	SelectedCount   int      `json:"selected_count"`
	PoolCount       int      `json:"pool_count"`
	AllPoolSelected bool     `json:"all_pool_selected"`
	Warehouses      []string `json:"warehouses"`
	Movements       []string `json:"movements"`
	From            string   `json:"from"`
	To              string   `json:"to"`
}
