package report_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

func raw(wid, pid string, moves map[movement.Key]float64) report.RawRow {
	return report.RawRow{WarehouseID: wid, ProductID: pid, Moves: moves}
}

func rawAsOf(wid, pid string, opening, adj float64, moves map[movement.Key]float64) report.RawRow {
	return report.RawRow{WarehouseID: wid, ProductID: pid, Opening: opening, Adjustments: adj, Moves: moves}
}

// Escenario: {W1,A,purchase:5}, {W1,A,purchase:3}, {W1,B,sales:2}.
func TestAggregateMovements_EscenarioBase(t *testing.T) {
	rep := report.AggregateMovements([]report.RawRow{
		raw("W1", "A", map[movement.Key]float64{movement.Purchase: 5}),
		raw("W1", "A", map[movement.Key]float64{movement.Purchase: 3}),
		raw("W1", "B", map[movement.Key]float64{movement.Sales: 2}),
	})

	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "W1", rep.Rows[0].WarehouseID)
	assert.Equal(t, "A", rep.Rows[0].ProductID)
	assert.Equal(t, map[movement.Key]float64{movement.Purchase: 8}, rep.Rows[0].Moves)
	assert.Equal(t, "B", rep.Rows[1].ProductID)
	assert.Equal(t, map[movement.Key]float64{movement.Sales: 2}, rep.Rows[1].Moves)
	assert.Equal(t, map[movement.Key]float64{movement.Purchase: 8, movement.Sales: 2}, rep.Totals)
}

func TestAggregateMovements_LlavesUnicas(t *testing.T) {
	rep := report.AggregateMovements([]report.RawRow{
		raw("1", "10", map[movement.Key]float64{movement.Sales: 1}),
		raw("2", "10", map[movement.Key]float64{movement.Sales: 1}),
		raw("1", "10", map[movement.Key]float64{movement.Sales: 1}),
		raw("1", "11", nil),
	})
	seen := map[string]bool{}
	for _, r := range rep.Rows {
		assert.False(t, seen[r.Key()], "llave repetida %s", r.Key())
		seen[r.Key()] = true
	}
	assert.Len(t, rep.Rows, 3)
	assert.Equal(t, 2.0, rep.Rows[0].Moves[movement.Sales])
	assert.Empty(t, rep.Rows[2].Moves)
}

func TestAggregateMovements_OmiteNoFinitos(t *testing.T) {
	rep := report.AggregateMovements([]report.RawRow{
		raw("1", "10", map[movement.Key]float64{movement.Sales: math.NaN(), movement.Purchase: 4}),
		raw("1", "10", map[movement.Key]float64{movement.Sales: 3, movement.Purchase: math.Inf(1)}),
	})
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, 3.0, rep.Rows[0].Moves[movement.Sales])
	assert.Equal(t, 4.0, rep.Rows[0].Moves[movement.Purchase])
	assert.Equal(t, 3.0, rep.Totals[movement.Sales])
}

func TestAggregateMovements_Vacio(t *testing.T) {
	rep := report.AggregateMovements(nil)
	assert.Empty(t, rep.Rows)
	assert.Empty(t, rep.Totals)
}

func TestAggregateAsOf_SumaAperturaYAjustes(t *testing.T) {
	rep := report.AggregateAsOf([]report.RawRow{
		rawAsOf("1", "10", 10, -1, map[movement.Key]float64{movement.Purchase: 5}),
		rawAsOf("1", "10", 2, 0.5, map[movement.Key]float64{movement.Sales: 2}),
		rawAsOf("2", "10", math.NaN(), 1, nil),
	})
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, 12.0, rep.Rows[0].Opening)
	assert.Equal(t, -0.5, rep.Rows[0].Adjustments)
	assert.Equal(t, 0.0, rep.Rows[1].Opening)
	assert.Equal(t, 12.0, rep.Opening)
	assert.Equal(t, 0.5, rep.Adjustments)
	assert.Equal(t, map[movement.Key]float64{movement.Purchase: 5, movement.Sales: 2}, rep.Totals)
}

// Re-agregar la salida agregada no cambia los totales.
func TestAggregate_Idempotente(t *testing.T) {
	input := []report.RawRow{
		rawAsOf("1", "10", 3, 1, map[movement.Key]float64{movement.Purchase: 5, movement.Wastages: 1}),
		rawAsOf("1", "10", 1, 0, map[movement.Key]float64{movement.Purchase: 2}),
		rawAsOf("2", "11", 0, 2, map[movement.Key]float64{movement.Consumption: 7}),
	}
	once := report.AggregateAsOf(input)
	twice := report.AggregateAsOf(once.RawRows())
	assert.Equal(t, once.Totals, twice.Totals)
	assert.Equal(t, once.Opening, twice.Opening)
	assert.Equal(t, once.Adjustments, twice.Adjustments)
	assert.Equal(t, once.Rows, twice.Rows)

	m1 := report.AggregateMovements(input)
	m2 := report.AggregateMovements(m1.RawRows())
	assert.Equal(t, m1.Totals, m2.Totals)
	assert.Equal(t, m1.Rows, m2.Rows)
}

// Partir las filas en dos bloques no cambia los totales.
func TestAggregate_InvarianteAlBloque(t *testing.T) {
	var input []report.RawRow
	for i := 0; i < 11; i++ {
		wid := []string{"8", "9"}[i%2]
		pid := []string{"100", "101", "102"}[i%3]
		input = append(input, rawAsOf(wid, pid, float64(i), float64(i%2), map[movement.Key]float64{
			movement.Purchase: float64(i * 2),
			movement.Sales:    float64(i),
		}))
	}
	whole := report.AggregateAsOf(input)

	half := (len(input) + 1) / 2
	var chunked []report.RawRow
	chunked = append(chunked, report.AggregateAsOf(input[:half]).RawRows()...)
	chunked = append(chunked, report.AggregateAsOf(input[half:]).RawRows()...)
	split := report.AggregateAsOf(chunked)

	assert.Equal(t, whole.Totals, split.Totals)
	assert.Equal(t, whole.Opening, split.Opening)
	assert.Equal(t, whole.Adjustments, split.Adjustments)
	assert.ElementsMatch(t, whole.Rows, split.Rows)
}
