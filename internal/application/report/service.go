package report

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	domreport "github.com/jhoicas/inventario-movimientos/internal/domain/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	"github.com/jhoicas/inventario-movimientos/internal/domain/selection"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

const (
	defaultChunkSize   = 250
	defaultParallelism = 4
	defaultAsOfFrom    = "2025-07-01"
)

// Mensajes de validación (se muestran tal cual al usuario).
const (
	MsgSelectProduct   = "Seleccione al menos un producto"
	MsgSelectWarehouse = "Seleccione al menos una bodega"
	MsgSelectMovement  = "Seleccione al menos un tipo de movimiento"
)

// Options parámetros del servicio de reportes.
type Options struct {
	ChunkSize    int           // productos por llamada remota
	Parallelism  int           // llamadas simultáneas
	AsOfFrom     string        // límite inferior por defecto del reporte "a la fecha"
	QueryTimeout time.Duration // 0 = sin plazo propio
}

// MovementQuery entrada del reporte de movimientos. Fechas en YYYY-MM-DD, vacías = sin límite.
type MovementQuery struct {
	ProductIDs   []string
	WarehouseIDs []string
	Movements    []movement.Key
	From         string
	To           string
}

// AsOfQuery entrada del reporte "a la fecha".
type AsOfQuery struct {
	ProductIDs   []string
	WarehouseIDs []string
	From         string
	To           string
}

// Service arma los reportes: valida la selección, consulta por bloques y agrega.
type Service struct {
	source repository.MovementSource
	opts   Options
	log    *logger.Logger
}

// NewService construye el servicio. Los valores no positivos de opts toman el valor por defecto.
func NewService(source repository.MovementSource, opts Options, log *logger.Logger) *Service {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = defaultParallelism
	}
	if opts.AsOfFrom == "" {
		opts.AsOfFrom = defaultAsOfFrom
	}
	return &Service{source: source, opts: opts, log: log}
}

// MovementReport valida (productos, bodegas, tipos, en ese orden), consulta por bloques y agrega.
func (s *Service) MovementReport(ctx context.Context, q MovementQuery) (*domreport.MovementReport, error) {
	if len(q.ProductIDs) == 0 {
		return nil, domain.NewValidationError("products", MsgSelectProduct)
	}
	if len(q.WarehouseIDs) == 0 {
		return nil, domain.NewValidationError("warehouses", MsgSelectWarehouse)
	}
	if len(q.Movements) == 0 {
		return nil, domain.NewValidationError("movements", MsgSelectMovement)
	}
	from, to, err := MovementBounds(q.From, q.To)
	if err != nil {
		return nil, err
	}

	base := repository.MovementChunkQuery{
		WarehouseIDs: NumericIDs(q.WarehouseIDs),
		Movements:    q.Movements,
		From:         from,
		To:           to,
	}
	productIDs := NumericIDs(q.ProductIDs)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	raw, err := FetchBatched(ctx, productIDs, s.opts.ChunkSize, s.opts.Parallelism,
		func(ctx context.Context, chunk []int64) ([]domreport.RawRow, error) {
			cq := base
			cq.ProductIDs = chunk
			return s.source.MovementReport(ctx, cq)
		})
	if err != nil {
		err = domain.NewRemoteQueryError(err)
		s.logFailure(err, "movement", len(productIDs))
		return nil, err
	}

	rep := domreport.AggregateMovements(raw)
	if s.log != nil {
		s.log.Info().
			Int("products", len(productIDs)).
			Int("raw_rows", len(raw)).
			Int("rows", len(rep.Rows)).
			Dur("elapsed", time.Since(started)).
			Msg("reporte de movimientos generado")
	}
	return rep, nil
}

// AsOfReport valida (productos, bodegas), consulta por bloques y agrega. Sin fecha inicial
// usa el límite configurado.
func (s *Service) AsOfReport(ctx context.Context, q AsOfQuery) (*domreport.AsOfReport, error) {
	if len(q.ProductIDs) == 0 {
		return nil, domain.NewValidationError("products", MsgSelectProduct)
	}
	if len(q.WarehouseIDs) == 0 {
		return nil, domain.NewValidationError("warehouses", MsgSelectWarehouse)
	}
	fromStr := q.From
	if fromStr == "" {
		fromStr = s.opts.AsOfFrom
	}
	from, err := selection.ParseDate(fromStr)
	if err != nil {
		return nil, domain.NewValidationError("dates", "Fecha inicial inválida (use AAAA-MM-DD)")
	}
	to, err := selection.ParseDate(q.To)
	if err != nil {
		return nil, domain.NewValidationError("dates", "Fecha final inválida (use AAAA-MM-DD)")
	}

	base := repository.AsOfChunkQuery{
		WarehouseIDs: NumericIDs(q.WarehouseIDs),
		FromDate:     from,
		ToDate:       to,
	}
	productIDs := NumericIDs(q.ProductIDs)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	raw, err := FetchBatched(ctx, productIDs, s.opts.ChunkSize, s.opts.Parallelism,
		func(ctx context.Context, chunk []int64) ([]domreport.RawRow, error) {
			cq := base
			cq.ProductIDs = chunk
			return s.source.AsOfReport(ctx, cq)
		})
	if err != nil {
		err = domain.NewRemoteQueryError(err)
		s.logFailure(err, "as_of", len(productIDs))
		return nil, err
	}

	rep := domreport.AggregateAsOf(raw)
	if s.log != nil {
		s.log.Info().
			Int("products", len(productIDs)).
			Int("raw_rows", len(raw)).
			Int("rows", len(rep.Rows)).
			Dur("elapsed", time.Since(started)).
			Msg("reporte a la fecha generado")
	}
	return rep, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *Service) logFailure(err error, kind string, products int) {
	if s.log == nil {
		return
	}
	s.log.Error().Err(err).
		Str("kind", kind).
		Int("products", products).
		Bool("timeout", errors.Is(err, domain.ErrQueryTimeout)).
		Msg("falló la consulta del reporte")
}

// MovementBounds convierte las fechas de calendario en instantes UTC: from a las 00:00 y
// to como el inicio del día siguiente (fin de día inclusivo).
func MovementBounds(from, to string) (*time.Time, *time.Time, error) {
	f, err := selection.ParseDate(from)
	if err != nil {
		return nil, nil, domain.NewValidationError("dates", "Fecha inicial inválida (use AAAA-MM-DD)")
	}
	t, err := selection.ParseDate(to)
	if err != nil {
		return nil, nil, domain.NewValidationError("dates", "Fecha final inválida (use AAAA-MM-DD)")
	}
	if t != nil {
		next := t.AddDate(0, 0, 1)
		t = &next
	}
	return f, t, nil
}

// NumericIDs convierte IDs de texto a enteros; los no numéricos se descartan.
func NumericIDs(ids []string) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
