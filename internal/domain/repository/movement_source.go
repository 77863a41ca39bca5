package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

// MovementChunkQuery parámetros de una llamada al reporte de movimientos para un bloque de productos.
// From y To son instantes UTC; nil significa sin límite.
type MovementChunkQuery struct {
	ProductIDs   []int64
	WarehouseIDs []int64
	Movements    []movement.Key
	From         *time.Time
	To           *time.Time
}

// AsOfChunkQuery parámetros de una llamada al reporte "a la fecha" para un bloque de productos.
// FromDate y ToDate son fechas de calendario.
type AsOfChunkQuery struct {
	ProductIDs   []int64
	WarehouseIDs []int64
	FromDate     *time.Time
	ToDate       *time.Time
}

// MovementSource origen remoto de los reportes agregados (procedimientos almacenados).
// Cada llamada cubre un solo bloque de productos; las filas vuelven ya normalizadas.
type MovementSource interface {
	MovementReport(ctx context.Context, q MovementChunkQuery) ([]report.RawRow, error)
	AsOfReport(ctx context.Context, q AsOfChunkQuery) ([]report.RawRow, error)
}
