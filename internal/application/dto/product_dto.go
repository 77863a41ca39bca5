package dto

// ProductFilterRequest filtro del pool de productos (query string).
type ProductFilterRequest struct {
	PageRequest
	Query    string   `query:"q" validate:"max=200"`
	Category []string `query:"category"`
}

// ProductResponse producto del catálogo con su estado de selección.
type ProductResponse struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Code     *string `json:"code,omitempty"`
	Category *string `json:"category,omitempty"`
	Selected bool    `json:"selected"`
}

// ProductListResponse pool filtrado y paginado.
type ProductListResponse struct {
	Items           []ProductResponse `json:"items"`
	Page            PageResponse      `json:"page"`
	AllPoolSelected bool              `json:"all_pool_selected"`
}

// CategoryListResponse nombres de categoría disponibles para el filtro.
type CategoryListResponse struct {
	Items []string `json:"items"`
}
