package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	domreport "github.com/jhoicas/inventario-movimientos/internal/domain/report"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

// DefaultFormat formato de descarga cuando no se indica otro.
const DefaultFormat = "xls"

// ErrStaleFetch la consulta terminó pero otra más reciente la reemplazó.
var ErrStaleFetch = errors.New("la consulta fue reemplazada por una más reciente")

// Exporter arma un archivo descargable a partir del documento del reporte.
type Exporter interface {
	Format() string
	Extension() string
	ContentType() string
	Render(w io.Writer, doc domreport.Document) error
}

// ExportFile archivo listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// UseCaseConfig parámetros de presentación.
type UseCaseConfig struct {
	PageSize     int
	ExportPrefix string
}

// UseCase orquesta el espacio de trabajo: dispara consultas, entrega páginas y exporta.
type UseCase struct {
	service   *Service
	sessions  *SessionStore
	exporters map[string]Exporter
	cfg       UseCaseConfig
	now       func() time.Time
	log       *logger.Logger
}

// NewUseCase construye el caso de uso con los exportadores disponibles.
func NewUseCase(service *Service, sessions *SessionStore, cfg UseCaseConfig, log *logger.Logger, exporters ...Exporter) *UseCase {
	if cfg.PageSize <= 0 {
		cfg.PageSize = domreport.DefaultPageSize
	}
	if cfg.ExportPrefix == "" {
		cfg.ExportPrefix = "productwise-report"
	}
	byFormat := make(map[string]Exporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &UseCase{
		service:   service,
		sessions:  sessions,
		exporters: byFormat,
		cfg:       cfg,
		now:       time.Now,
		log:       log,
	}
}

// Workspace espacio de trabajo del usuario (lo crea si no existe).
func (uc *UseCase) Workspace(ctx context.Context, owner string) (*Workspace, error) {
	return uc.sessions.Get(ctx, owner)
}

// RunMovement genera el reporte de movimientos con la selección actual y devuelve la página 1.
func (uc *UseCase) RunMovement(ctx context.Context, owner string) (*dto.ReportPageResponse, error) {
	ws, err := uc.sessions.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	gen, st, err := ws.begin()
	if err != nil {
		return nil, err
	}

	rep, err := uc.service.MovementReport(ctx, MovementQuery{
		ProductIDs:   itemIDs(st),
		WarehouseIDs: st.Selected,
		Movements:    st.Movements,
		From:         st.From,
		To:           st.To,
	})
	applied := ws.finish(gen, func() {
		if err != nil {
			ws.errMsg = ErrorMessage(domreport.KindMovement, err)
			return
		}
		ws.movement = rep
		ws.fetched = st.Movements
		ws.page = 1
	})
	return uc.settle(ws, applied, err)
}

// RunAsOf genera el reporte "a la fecha" con la selección actual y devuelve la página 1.
func (uc *UseCase) RunAsOf(ctx context.Context, owner string) (*dto.ReportPageResponse, error) {
	ws, err := uc.sessions.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	gen, st, err := ws.begin()
	if err != nil {
		return nil, err
	}

	rep, err := uc.service.AsOfReport(ctx, AsOfQuery{
		ProductIDs:   itemIDs(st),
		WarehouseIDs: st.Selected,
		From:         st.From,
		To:           st.To,
	})
	applied := ws.finish(gen, func() {
		if err != nil {
			ws.errMsg = ErrorMessage(domreport.KindAsOf, err)
			return
		}
		ws.asOf = rep
		ws.page = 1
	})
	return uc.settle(ws, applied, err)
}

func (uc *UseCase) settle(ws *Workspace, applied bool, err error) (*dto.ReportPageResponse, error) {
	if !applied {
		if uc.log != nil {
			uc.log.Warn().Str("owner", ws.Owner()).Msg("resultado de consulta descartado")
		}
		return nil, ErrStaleFetch
	}
	if err != nil {
		return nil, err
	}
	return uc.buildPage(ws.State()), nil
}

// Current página del reporte vigente. page <= 0 conserva la página actual.
func (uc *UseCase) Current(ctx context.Context, owner string, page int) (*dto.ReportPageResponse, error) {
	ws, err := uc.sessions.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if page > 0 {
		ws.SetPage(page)
	}
	return uc.buildPage(ws.State()), nil
}

// Export arma el archivo del reporte vigente en el formato pedido.
func (uc *UseCase) Export(ctx context.Context, owner, format string) (*ExportFile, error) {
	ws, err := uc.sessions.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	st := ws.State()
	view, totals, ok := viewOf(st)
	if !ok {
		return nil, domain.ErrNoReport
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DefaultFormat
	}
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, domain.NewValidationError("format", "Formato de exportación no soportado: "+format)
	}
	now := uc.now()
	doc := domreport.Document{
		Kind:        view.Kind,
		From:        st.From,
		To:          st.To,
		Tables:      view.Tables(st.Items, st.Warehouses, st.Catalog.WarehouseName),
		Totals:      totals,
		GeneratedAt: now,
	}

	var buf bytes.Buffer
	if err := exp.Render(&buf, doc); err != nil {
		return nil, err
	}
	if uc.log != nil {
		uc.log.Info().
			Str("owner", owner).
			Str("format", format).
			Int("tables", len(doc.Tables)).
			Int("bytes", buf.Len()).
			Msg("reporte exportado")
	}
	return &ExportFile{
		Name:        domreport.ExportFileName(uc.cfg.ExportPrefix, now, exp.Extension()),
		ContentType: exp.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func (uc *UseCase) buildPage(st State) *dto.ReportPageResponse {
	resp := &dto.ReportPageResponse{
		From:     st.From,
		To:       st.To,
		Loading:  st.Loading,
		Error:    st.Error,
		Tables:   []dto.ProductTableResponse{},
		PageSize: uc.cfg.PageSize,
	}
	p := domreport.Paginate(st.Items, st.Page, uc.cfg.PageSize)
	resp.Page = p.Number
	resp.TotalItems = p.TotalItems
	resp.TotalPages = p.TotalPages
	resp.HasPrev = p.HasPrev
	resp.HasNext = p.HasNext

	view, totals, ok := viewOf(st)
	if !ok {
		return resp
	}
	resp.Kind = string(view.Kind)
	for _, t := range view.Tables(p.Items, st.Warehouses, st.Catalog.WarehouseName) {
		resp.Tables = append(resp.Tables, ToTableResponse(t))
	}
	tr := ToTotalsResponse(totals, view.Layout.Movements)
	resp.Totals = &tr
	return resp
}

// viewOf vista y totales del reporte vigente; ok=false si no hay reporte.
func viewOf(st State) (*domreport.View, domreport.Totals, bool) {
	switch {
	case st.AsOf != nil:
		return domreport.NewAsOfView(st.AsOf), domreport.AsOfTotals(st.AsOf), true
	case st.Movement != nil:
		return domreport.NewMovementView(st.Movement, st.MovementColumns), domreport.MovementTotals(st.Movement), true
	default:
		return nil, domreport.Totals{}, false
	}
}

func itemIDs(st State) []string {
	out := make([]string, len(st.Items))
	for i, it := range st.Items {
		out[i] = it.ID
	}
	return out
}
