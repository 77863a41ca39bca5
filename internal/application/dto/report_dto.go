package dto

// ReportPageRequest página del reporte vigente.
type ReportPageRequest struct {
	Page int `query:"page" validate:"min=0"`
}

// ExportRequest formato de descarga.
type ExportRequest struct {
	Format string `query:"format" validate:"omitempty,oneof=xls xlsx pdf"`
}

// ColumnResponse columna numérica de una tabla.
type ColumnResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TableRowResponse fila de una bodega. Las celdas vacías ("") indican que no hubo datos.
type TableRowResponse struct {
	WarehouseID string   `json:"warehouse_id"`
	Warehouse   string   `json:"warehouse"`
	Missing     bool     `json:"missing"`
	Cells       []string `json:"cells"`
}

// ProductTableResponse tabla de un producto.
type ProductTableResponse struct {
	ProductID string             `json:"product_id"`
	Title     string             `json:"title"`
	Label     string             `json:"label"`
	Category  string             `json:"category,omitempty"`
	Code      string             `json:"code,omitempty"`
	Columns   []ColumnResponse   `json:"columns"`
	Rows      []TableRowResponse `json:"rows"`
	Footer    []string           `json:"footer"`
}

// TotalsResponse totales generales del reporte, con dos decimales.
type TotalsResponse struct {
	Moves       map[string]string `json:"moves"`
	Opening     string            `json:"opening,omitempty"`
	Adjustments string            `json:"adjustments,omitempty"`
	Closing     string            `json:"closing,omitempty"`
	Net         string            `json:"net"`
	Rows        int               `json:"rows"`
}

// ReportPageResponse página del reporte vigente más el estado del espacio de trabajo.
type ReportPageResponse struct {
	Kind       string                 `json:"kind,omitempty"`
	From       string                 `json:"from"`
	To         string                 `json:"to"`
	Loading    bool                   `json:"loading"`
	Error      string                 `json:"error,omitempty"`
	Tables     []ProductTableResponse `json:"tables"`
	Totals     *TotalsResponse        `json:"totals,omitempty"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalItems int                    `json:"total_items"`
	TotalPages int                    `json:"total_pages"`
	HasPrev    bool                   `json:"has_prev"`
	HasNext    bool                   `json:"has_next"`
}
