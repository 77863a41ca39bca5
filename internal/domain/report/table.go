package report

import (
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
)

// Encabezados fijos de las tablas por producto.
const (
	HeaderWarehouse   = "Warehouse"
	HeaderOpening     = "Opening Stock"
	HeaderAdjustments = "Stock Adjustments"
	HeaderClosing     = "Closing Stock"
	FooterTotals      = "Totals"
)

// Llaves de columnas no asociadas a un movimiento.
const (
	ColumnOpening     = "opening"
	ColumnAdjustments = "adjustments"
	ColumnClosing     = "closing"
)

// Column columna numérica de una tabla (la columna de bodega va aparte).
type Column struct {
	Key   string
	Label string
}

// Layout disposición de columnas de un reporte.
type Layout struct {
	AsOf      bool
	Movements []movement.Key
}

// MovementLayout columnas del reporte de movimientos: solo los tipos seleccionados,
// en orden canónico.
func MovementLayout(selected []movement.Key) Layout {
	return Layout{Movements: movement.Ordered(selected)}
}

// AsOfLayout columnas del reporte "as of": siempre los 9 tipos.
func AsOfLayout() Layout {
	return Layout{AsOf: true, Movements: movement.All()}
}

// Columns apertura [as of] + un movimiento por columna + ajustes y cierre [as of].
func (l Layout) Columns() []Column {
	cols := make([]Column, 0, len(l.Movements)+3)
	if l.AsOf {
		cols = append(cols, Column{Key: ColumnOpening, Label: HeaderOpening})
	}
	for _, k := range l.Movements {
		cols = append(cols, Column{Key: string(k), Label: k.Label()})
	}
	if l.AsOf {
		cols = append(cols,
			Column{Key: ColumnAdjustments, Label: HeaderAdjustments},
			Column{Key: ColumnClosing, Label: HeaderClosing},
		)
	}
	return cols
}

// Cell celda numérica. Blank distingue "sin datos" de "movimiento cero".
type Cell struct {
	Value float64
	Blank bool
}

// Text representación de la celda: vacía si no hay datos, dos decimales si no.
func (c Cell) Text() string {
	if c.Blank {
		return ""
	}
	return FormatAmount(c.Value)
}

// TableRow fila de una bodega dentro de la tabla de un producto.
type TableRow struct {
	WarehouseID   string
	WarehouseName string
	Missing       bool // no llegó ninguna fila para (bodega, producto)
	Cells         []Cell
}

// ProductTable tabla lógica de un producto: título, encabezado, una fila por bodega y totales.
type ProductTable struct {
	ProductID string
	Label     string
	Category  string
	Code      string
	Columns   []Column
	Rows      []TableRow
	Footer    []Cell
}

// Title une etiqueta, categoría y código omitiendo las partes vacías.
func (t ProductTable) Title() string {
	parts := []string{t.Label}
	if t.Category != "" {
		parts = append(parts, t.Category)
	}
	if t.Code != "" {
		parts = append(parts, t.Code)
	}
	return strings.Join(parts, " — ")
}

// ColumnCount total de columnas incluyendo la de bodega.
func (t ProductTable) ColumnCount() int { return len(t.Columns) + 1 }

// View reporte agregado listo para armar tablas por producto.
// Las filas de movimiento se guardan como AsOfRow con apertura y ajustes en cero.
type View struct {
	Kind   Kind
	Layout Layout

	byKey     map[string]AsOfRow
	byProduct map[string][]AsOfRow
}

// NewMovementView vista del reporte de movimientos con las columnas seleccionadas.
func NewMovementView(rep *MovementReport, selected []movement.Key) *View {
	rows := make([]AsOfRow, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, AsOfRow{MovementRow: r})
	}
	return newView(KindMovement, MovementLayout(selected), rows)
}

// NewAsOfView vista del reporte "as of".
func NewAsOfView(rep *AsOfReport) *View {
	return newView(KindAsOf, AsOfLayout(), rep.Rows)
}

func newView(kind Kind, layout Layout, rows []AsOfRow) *View {
	v := &View{
		Kind:      kind,
		Layout:    layout,
		byKey:     make(map[string]AsOfRow, len(rows)),
		byProduct: make(map[string][]AsOfRow),
	}
	for _, r := range rows {
		v.byKey[r.Key()] = r
		v.byProduct[r.ProductID] = append(v.byProduct[r.ProductID], r)
	}
	return v
}

// Table arma la tabla de un producto con una fila por bodega en el orden dado.
// Una bodega sin fila agregada se muestra en blanco; el pie suma todas las filas
// del producto tratando lo ausente como cero.
func (v *View) Table(item entity.CatalogItem, warehouseKeys []string, warehouseName func(string) string) ProductTable {
	t := ProductTable{
		ProductID: item.ID,
		Label:     item.Label,
		Category:  item.CategoryOrEmpty(),
		Code:      item.CodeOrEmpty(),
		Columns:   v.Layout.Columns(),
	}
	if t.Label == "" {
		t.Label = item.ID
	}

	for _, wid := range warehouseKeys {
		name := wid
		if warehouseName != nil {
			name = warehouseName(wid)
		}
		row := TableRow{WarehouseID: wid, WarehouseName: name}
		r, ok := v.byKey[RowKey(wid, item.ID)]
		if !ok {
			row.Missing = true
			row.Cells = blankCells(len(t.Columns))
		} else {
			row.Cells = v.cells(r.Opening, r.Moves, r.Adjustments)
		}
		t.Rows = append(t.Rows, row)
	}

	var opening, adjustments float64
	totals := map[movement.Key]float64{}
	for _, r := range v.byProduct[item.ID] {
		opening += zeroIfNotFinite(r.Opening)
		adjustments += zeroIfNotFinite(r.Adjustments)
		for _, k := range v.Layout.Movements {
			totals[k] += zeroIfNotFinite(r.Moves[k])
		}
	}
	t.Footer = v.cells(opening, totals, adjustments)
	return t
}

// Tables una tabla por producto, en el orden de items.
func (v *View) Tables(items []entity.CatalogItem, warehouseKeys []string, warehouseName func(string) string) []ProductTable {
	out := make([]ProductTable, 0, len(items))
	for _, it := range items {
		out = append(out, v.Table(it, warehouseKeys, warehouseName))
	}
	return out
}

// HasRows indica si el reporte trae alguna fila para el producto.
func (v *View) HasRows(productID string) bool {
	return len(v.byProduct[productID]) > 0
}

func (v *View) cells(opening float64, moves map[movement.Key]float64, adjustments float64) []Cell {
	cells := make([]Cell, 0, len(v.Layout.Movements)+3)
	if v.Layout.AsOf {
		cells = append(cells, Cell{Value: zeroIfNotFinite(opening)})
	}
	for _, k := range v.Layout.Movements {
		cells = append(cells, Cell{Value: zeroIfNotFinite(moves[k])})
	}
	if v.Layout.AsOf {
		cells = append(cells,
			Cell{Value: zeroIfNotFinite(adjustments)},
			Cell{Value: Closing(opening, moves, adjustments)},
		)
	}
	return cells
}

func blankCells(n int) []Cell {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i].Blank = true
	}
	return cells
}
