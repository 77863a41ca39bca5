package report

import (
	"math"

	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
)

// AggregateMovements pliega las filas crudas en una fila por (bodega, producto),
// sumando cada movimiento por separado. Los valores no finitos se omiten.
// El orden de salida es el de primera aparición de cada llave.
func AggregateMovements(raw []RawRow) *MovementReport {
	index := make(map[string]int, len(raw))
	rows := make([]MovementRow, 0, len(raw))
	for _, r := range raw {
		key := RowKey(r.WarehouseID, r.ProductID)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, MovementRow{
				WarehouseID: r.WarehouseID,
				ProductID:   r.ProductID,
				Moves:       map[movement.Key]float64{},
			})
		}
		addMoves(rows[i].Moves, r.Moves)
	}

	totals := map[movement.Key]float64{}
	for _, row := range rows {
		addMoves(totals, row.Moves)
	}
	return &MovementReport{Rows: rows, Totals: totals}
}

// AggregateAsOf igual que AggregateMovements, sumando además apertura y ajustes.
func AggregateAsOf(raw []RawRow) *AsOfReport {
	index := make(map[string]int, len(raw))
	rows := make([]AsOfRow, 0, len(raw))
	for _, r := range raw {
		key := RowKey(r.WarehouseID, r.ProductID)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, AsOfRow{MovementRow: MovementRow{
				WarehouseID: r.WarehouseID,
				ProductID:   r.ProductID,
				Moves:       map[movement.Key]float64{},
			}})
		}
		cur := &rows[i]
		if finite(r.Opening) {
			cur.Opening += r.Opening
		}
		if finite(r.Adjustments) {
			cur.Adjustments += r.Adjustments
		}
		addMoves(cur.Moves, r.Moves)
	}

	rep := &AsOfReport{Rows: rows, Totals: map[movement.Key]float64{}}
	for _, row := range rows {
		rep.Opening += row.Opening
		rep.Adjustments += row.Adjustments
		addMoves(rep.Totals, row.Moves)
	}
	return rep
}

func addMoves(dst, src map[movement.Key]float64) {
	for k, v := range src {
		if !finite(v) {
			continue
		}
		dst[k] += v
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
