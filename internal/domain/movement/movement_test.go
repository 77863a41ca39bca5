package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
)

// Cada tipo pertenece exactamente a uno de {entrada, salida} y ambos conjuntos cubren los 9.
func TestSigns_ParticionCompleta(t *testing.T) {
	all := movement.All()
	require.Len(t, all, 9)

	seen := map[movement.Key]int{}
	for _, k := range movement.Inflows() {
		seen[k]++
		assert.True(t, k.IsInflow())
		assert.False(t, k.IsOutflow())
	}
	for _, k := range movement.Outflows() {
		seen[k]++
		assert.True(t, k.IsOutflow())
		assert.False(t, k.IsInflow())
	}
	assert.Len(t, seen, len(all), "no debe omitirse ningún tipo")
	for _, k := range all {
		assert.Equal(t, 1, seen[k], "el tipo %s debe estar en un solo conjunto", k)
	}
}

func TestSigns_Clasificacion(t *testing.T) {
	assert.Equal(t,
		[]movement.Key{movement.Purchase, movement.SalesReturns, movement.TransferIn, movement.Manufacturing},
		movement.Inflows())
	assert.Equal(t,
		[]movement.Key{movement.PurchaseReturn, movement.Sales, movement.TransferOut, movement.Wastages, movement.Consumption},
		movement.Outflows())
}

func TestOrdered_RespetaOrdenCanonico(t *testing.T) {
	got := movement.Ordered([]movement.Key{movement.Consumption, movement.Sales, movement.Purchase, movement.Sales, "unknown"})
	assert.Equal(t, []movement.Key{movement.Purchase, movement.Sales, movement.Consumption}, got)
	assert.Empty(t, movement.Ordered(nil))
}

func TestAll_DevuelveCopia(t *testing.T) {
	a := movement.All()
	a[0] = "x"
	assert.Equal(t, movement.Purchase, movement.All()[0])
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Purchase Returns", movement.PurchaseReturn.Label())
	assert.Equal(t, "Wastages", movement.Wastages.Label())
	assert.Equal(t, "Stock Count", movement.Key("stock_count").Label())
}

func TestParse(t *testing.T) {
	k, err := movement.Parse("transfer_in")
	require.NoError(t, err)
	assert.Equal(t, movement.TransferIn, k)

	_, err = movement.Parse("wastage")
	assert.Error(t, err)
}

func TestSign_Desconocido(t *testing.T) {
	_, ok := movement.Key("adjustment").Sign()
	assert.False(t, ok)
	s, ok := movement.Sales.Sign()
	assert.True(t, ok)
	assert.Equal(t, movement.Outflow, s)
}
