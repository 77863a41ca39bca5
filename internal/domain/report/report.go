// Package report contiene el motor de reportes de movimiento de inventario:
// agregación de filas crudas por (bodega, producto), cálculo de stock de cierre,
// armado de tablas por producto y paginación.
package report

import (
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
)

// Kind tipo de reporte.
type Kind string

const (
	KindMovement Kind = "movement" // flujo de movimientos en un rango de fechas
	KindAsOf     Kind = "as_of"    // posición de stock a una fecha (apertura, ajustes, cierre)
)

// RawRow fila tal como llega del origen remoto, ya normalizada a la forma fija.
// Puede haber varias por (bodega, producto), p.ej. por bloques distintos.
// Opening y Adjustments solo aplican al reporte "as of".
type RawRow struct {
	WarehouseID string
	ProductID   string
	Opening     float64
	Adjustments float64
	Moves       map[movement.Key]float64
}

// MovementRow fila agregada: única por (bodega, producto) dentro de un reporte.
type MovementRow struct {
	WarehouseID string
	ProductID   string
	Moves       map[movement.Key]float64
}

// Key llave de agregación de la fila.
func (r MovementRow) Key() string { return RowKey(r.WarehouseID, r.ProductID) }

// Raw convierte la fila agregada de nuevo a fila cruda.
func (r MovementRow) Raw() RawRow {
	return RawRow{WarehouseID: r.WarehouseID, ProductID: r.ProductID, Moves: copyMoves(r.Moves)}
}

// AsOfRow fila agregada del reporte "as of".
type AsOfRow struct {
	MovementRow
	Opening     float64
	Adjustments float64
}

// Raw convierte la fila agregada de nuevo a fila cruda.
func (r AsOfRow) Raw() RawRow {
	raw := r.MovementRow.Raw()
	raw.Opening = r.Opening
	raw.Adjustments = r.Adjustments
	return raw
}

// MovementReport reporte de flujo de movimientos.
type MovementReport struct {
	Rows   []MovementRow
	Totals map[movement.Key]float64
}

// RawRows devuelve las filas en forma cruda (útil para re-agregar).
func (r *MovementReport) RawRows() []RawRow {
	out := make([]RawRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, row.Raw())
	}
	return out
}

// AsOfReport reporte de posición de stock.
type AsOfReport struct {
	Rows        []AsOfRow
	Totals      map[movement.Key]float64
	Opening     float64
	Adjustments float64
}

// RawRows devuelve las filas en forma cruda.
func (r *AsOfReport) RawRows() []RawRow {
	out := make([]RawRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, row.Raw())
	}
	return out
}

// Closing stock de cierre total del reporte.
func (r *AsOfReport) Closing() float64 {
	return Closing(r.Opening, r.Totals, r.Adjustments)
}

// RowKey concatena los IDs canónicos de bodega y producto.
func RowKey(warehouseID, productID string) string {
	return warehouseID + ":" + productID
}

func copyMoves(m map[movement.Key]float64) map[movement.Key]float64 {
	out := make(map[movement.Key]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
