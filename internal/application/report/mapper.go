package report

import (
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	domreport "github.com/jhoicas/inventario-movimientos/internal/domain/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain/selection"
)

// ToTableResponse convierte una tabla de producto a su DTO (celdas ya formateadas).
func ToTableResponse(t domreport.ProductTable) dto.ProductTableResponse {
	out := dto.ProductTableResponse{
		ProductID: t.ProductID,
		Title:     t.Title(),
		Label:     t.Label,
		Category:  t.Category,
		Code:      t.Code,
		Columns:   make([]dto.ColumnResponse, len(t.Columns)),
		Rows:      make([]dto.TableRowResponse, len(t.Rows)),
		Footer:    cellTexts(t.Footer),
	}
	for i, c := range t.Columns {
		out.Columns[i] = dto.ColumnResponse{Key: c.Key, Label: c.Label}
	}
	for i, r := range t.Rows {
		out.Rows[i] = dto.TableRowResponse{
			WarehouseID: r.WarehouseID,
			Warehouse:   r.WarehouseName,
			Missing:     r.Missing,
			Cells:       cellTexts(r.Cells),
		}
	}
	return out
}

// ToTotalsResponse totales generales con dos decimales, uno por cada tipo en keys (las
// columnas del reporte); los tipos sin datos quedan en 0.00. Apertura, ajustes y cierre
// solo aplican al reporte "a la fecha".
func ToTotalsResponse(t domreport.Totals, keys []movement.Key) dto.TotalsResponse {
	out := dto.TotalsResponse{
		Moves: make(map[string]string, len(keys)),
		Net:   domreport.FormatAmount(t.Net),
		Rows:  t.Rows,
	}
	for _, k := range keys {
		out.Moves[string(k)] = domreport.FormatAmount(t.Moves[k])
	}
	if t.Kind == domreport.KindAsOf {
		out.Opening = domreport.FormatAmount(t.Opening)
		out.Adjustments = domreport.FormatAmount(t.Adjustments)
		out.Closing = domreport.FormatAmount(t.Closing)
	}
	return out
}

// ToSelectionResponse estado de la selección para la API.
func ToSelectionResponse(s *selection.Selection) dto.SelectionResponse {
	ids := s.SelectedIDs()
	movs := s.Movements()
	codes := make([]string, len(movs))
	for i, k := range movs {
		codes[i] = string(k)
	}
	return dto.SelectionResponse{
		Query:           s.Query(),
		Categories:      nonNil(s.Categories()),
		SelectAll:       s.SelectAll(),
		Explicit:        nonNil(s.Explicit()),
		SelectedIDs:     ids,
		SelectedCount:   len(ids),
		PoolCount:       len(s.Pool()),
		AllPoolSelected: s.AllPoolSelected(),
		Warehouses:      nonNil(s.Warehouses()),
		Movements:       codes,
		From:            s.From(),
		To:              s.To(),
	}
}

func cellTexts(cells []domreport.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text()
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
