package dto

// WarehouseResponse bodega ofrecida por el catálogo.
type WarehouseResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Selected    bool   `json:"selected"`
}

// WarehouseListResponse bodegas del catálogo.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
}
