package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	domreport "github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

func TestToTotalsResponse_AsOfIncluyeLosNueveTipos(t *testing.T) {
	rep := domreport.AggregateAsOf([]domreport.RawRow{{
		WarehouseID: "8",
		ProductID:   "1",
		Opening:     10,
		Adjustments: -1,
		Moves:       map[movement.Key]float64{movement.Purchase: 5, movement.Sales: 2},
	}})

	out := report.ToTotalsResponse(domreport.AsOfTotals(rep), movement.All())
	require.Len(t, out.Moves, 9)
	assert.Equal(t, "5.00", out.Moves["purchase"])
	assert.Equal(t, "2.00", out.Moves["sales"])
	assert.Equal(t, "0.00", out.Moves["wastages"])
	assert.Equal(t, "0.00", out.Moves["consumption"])
	assert.Equal(t, "10.00", out.Opening)
	assert.Equal(t, "-1.00", out.Adjustments)
	assert.Equal(t, "12.00", out.Closing)
}

func TestToTotalsResponse_MovimientosSoloColumnasDelReporte(t *testing.T) {
	rep := domreport.AggregateMovements([]domreport.RawRow{{
		WarehouseID: "8",
		ProductID:   "1",
		Moves:       map[movement.Key]float64{movement.Purchase: 5, movement.TransferIn: 4},
	}})

	out := report.ToTotalsResponse(domreport.MovementTotals(rep), []movement.Key{movement.Purchase, movement.Sales})
	assert.Equal(t, map[string]string{"purchase": "5.00", "sales": "0.00"}, out.Moves)
	assert.Empty(t, out.Opening)
	assert.Empty(t, out.Closing)
}
