package report

import "github.com/jhoicas/inventario-movimientos/internal/domain/movement"

// Closing stock de cierre:
//
//	cierre = apertura + Σ entradas + ajustes − Σ salidas
//
// Los códigos fuera del conjunto canónico no afectan el cierre.
func Closing(opening float64, moves map[movement.Key]float64, adjustments float64) float64 {
	return zeroIfNotFinite(opening) + NetMovement(moves) + zeroIfNotFinite(adjustments)
}

// NetMovement Σ entradas − Σ salidas.
func NetMovement(moves map[movement.Key]float64) float64 {
	var in, out float64
	for k, v := range moves {
		if !finite(v) {
			continue
		}
		switch s, _ := k.Sign(); s {
		case movement.Inflow:
			in += v
		case movement.Outflow:
			out += v
		}
	}
	return in - out
}

// Closing stock de cierre de la fila.
func (r AsOfRow) Closing() float64 {
	return Closing(r.Opening, r.Moves, r.Adjustments)
}

// Totals totales generales de un reporte, independientes de la paginación.
type Totals struct {
	Kind        Kind
	Moves       map[movement.Key]float64
	Opening     float64
	Adjustments float64
	Closing     float64
	Net         float64
	Rows        int
}

// MovementTotals totales generales del reporte de movimientos (sin apertura ni cierre).
func MovementTotals(r *MovementReport) Totals {
	return Totals{
		Kind:  KindMovement,
		Moves: copyMoves(r.Totals),
		Net:   NetMovement(r.Totals),
		Rows:  len(r.Rows),
	}
}

// AsOfTotals totales generales del reporte "as of", con el cierre global.
func AsOfTotals(r *AsOfReport) Totals {
	return Totals{
		Kind:        KindAsOf,
		Moves:       copyMoves(r.Totals),
		Opening:     r.Opening,
		Adjustments: r.Adjustments,
		Closing:     r.Closing(),
		Net:         NetMovement(r.Totals),
		Rows:        len(r.Rows),
	}
}

func zeroIfNotFinite(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}
