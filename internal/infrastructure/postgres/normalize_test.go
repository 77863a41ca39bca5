package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de filas
// ──────────────────────────────────────────────────────────────────────────────

func TestRawRowFromMap_MovesComoTexto(t *testing.T) {
	row, ok := rawRowFromMap(map[string]any{
		"warehouse_id": int64(8),
		"product_id":   int64(1500),
		"moves":        `{"purchase": 12.5, "sales": "3", "desconocido": 1, "malo": "x"}`,
	})
	require.True(t, ok)
	assert.Equal(t, "8", row.WarehouseID)
	assert.Equal(t, "1500", row.ProductID)
	assert.Equal(t, 12.5, row.Moves[movement.Purchase])
	assert.Equal(t, 3.0, row.Moves[movement.Sales])
	assert.Equal(t, 1.0, row.Moves["desconocido"])
	_, has := row.Moves["malo"]
	assert.False(t, has, "valores no numéricos se omiten")
}

func TestRawRowFromMap_NombresAlternativos(t *testing.T) {
	row, ok := rawRowFromMap(map[string]any{
		"warehouseId": "9",
		"productId":   "77",
		"moves":       map[string]any{"purchase": json.Number("4")},
		"opening":     decimal.RequireFromString("10.25"),
		"adjustments": "-1.5",
	})
	require.True(t, ok)
	assert.Equal(t, "9", row.WarehouseID)
	assert.Equal(t, "77", row.ProductID)
	assert.Equal(t, 4.0, row.Moves[movement.Purchase])
	assert.Equal(t, 10.25, row.Opening)
	assert.Equal(t, -1.5, row.Adjustments)
}

func TestRawRowFromMap_SinLlavesSeDescarta(t *testing.T) {
	_, ok := rawRowFromMap(map[string]any{"product_id": int64(1)})
	assert.False(t, ok)
}

func TestRawRowFromMap_MovesInvalidos(t *testing.T) {
	row, ok := rawRowFromMap(map[string]any{"warehouse_id": int64(8), "product_id": int64(1), "moves": "{no es json"})
	require.True(t, ok)
	assert.Empty(t, row.Moves)
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"nulo", nil, 0, false},
		{"entero", int32(5), 5, true},
		{"decimal nulo", decimal.NullDecimal{}, 0, false},
		{"decimal", decimal.NullDecimal{Decimal: decimal.NewFromInt(3), Valid: true}, 3, true},
		{"texto", " 2.5 ", 2.5, true},
		{"texto inválido", "abc", 0, false},
		{"infinito", math.Inf(1), 0, false},
		{"NaN", math.NaN(), 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toFloat(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoteError_Cancelacion(t *testing.T) {
	err := remoteError(&pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"})
	assert.ErrorIs(t, err, domain.ErrQueryTimeout)
	assert.ErrorContains(t, err, "statement timeout")
}

func TestRemoteError_CancelacionDelUsuarioNoEsTimeout(t *testing.T) {
	err := remoteError(&pgconn.PgError{Code: "57014", Message: "canceling statement due to user request"})
	assert.ErrorIs(t, err, domain.ErrRemoteQuery)
	assert.NotErrorIs(t, err, domain.ErrQueryTimeout)
}

func TestRemoteError_PlazoPropioVencido(t *testing.T) {
	err := remoteError(fmt.Errorf("%w: %w", &pgconn.PgError{Code: "57014", Message: "canceling statement due to user request"}, context.DeadlineExceeded))
	assert.ErrorIs(t, err, domain.ErrQueryTimeout)
}

func TestRemoteError_Generico(t *testing.T) {
	err := remoteError(errors.New("connection reset by peer"))
	assert.ErrorIs(t, err, domain.ErrRemoteQuery)
	assert.NotErrorIs(t, err, domain.ErrQueryTimeout)
	assert.Nil(t, remoteError(nil))
}

func TestIsUndefined(t *testing.T) {
	assert.True(t, isUndefined(&pgconn.PgError{Code: "42P01"}))
	assert.True(t, isUndefined(&pgconn.PgError{Code: "42883"}))
	assert.False(t, isUndefined(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUndefined(errors.New("x")))
}

func TestCategoryHelpers(t *testing.T) {
	assert.Equal(t, "Aseo", categoryName(map[string]any{"name": " ", "display_name": "Aseo"}, "name", "display_name"))
	assert.True(t, isActiveCategory(map[string]any{"name": "x"}))
	assert.True(t, isActiveCategory(map[string]any{"active": false, "is_active": true}))
	assert.False(t, isActiveCategory(map[string]any{"active": false}))
}
