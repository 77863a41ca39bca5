package postgres

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

// rawRowFromMap normaliza una fila devuelta por los procedimientos de reporte.
// Acepta warehouse_id/warehouseId y product_id/productId; moves puede llegar como
// objeto JSON ya decodificado o como texto. Valores numéricos mal formados se omiten.
func rawRowFromMap(m map[string]any) (report.RawRow, bool) {
	wid := idString(first(m, "warehouse_id", "warehouseId"))
	pid := idString(first(m, "product_id", "productId"))
	if wid == "" || pid == "" {
		return report.RawRow{}, false
	}
	row := report.RawRow{
		WarehouseID: wid,
		ProductID:   pid,
		Moves:       movesFrom(m["moves"]),
	}
	if v, ok := toFloat(m["opening"]); ok {
		row.Opening = v
	}
	if v, ok := toFloat(m["adjustments"]); ok {
		row.Adjustments = v
	}
	return row, true
}

func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func idString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case decimal.Decimal:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func movesFrom(v any) map[movement.Key]float64 {
	var raw map[string]any
	switch x := v.(type) {
	case map[string]any:
		raw = x
	case string:
		raw = decodeMoves([]byte(x))
	case []byte:
		raw = decodeMoves(x)
	case json.RawMessage:
		raw = decodeMoves(x)
	}
	out := make(map[movement.Key]float64, len(raw))
	for k, val := range raw {
		if f, ok := toFloat(val); ok {
			out[movement.Key(k)] = f
		}
	}
	return out
}

func decodeMoves(b []byte) map[string]any {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil
	}
	return m
}

// toFloat convierte los tipos numéricos que puede entregar pgx (o JSON) a float64.
// Nulos, textos no numéricos y valores no finitos devuelven false.
func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case int:
		f = float64(x)
	case decimal.Decimal:
		f = x.InexactFloat64()
	case decimal.NullDecimal:
		if !x.Valid {
			return 0, false
		}
		f = x.Decimal.InexactFloat64()
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
