package report_test

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	domreport "github.com/jhoicas/inventario-movimientos/internal/domain/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	"github.com/jhoicas/inventario-movimientos/internal/domain/selection"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakeLoader struct {
	catalog *entity.Catalog
	err     error
	calls   int32
}

func (l *fakeLoader) Load(context.Context) (*entity.Catalog, error) {
	atomic.AddInt32(&l.calls, 1)
	time.Sleep(time.Millisecond)
	return l.catalog, l.err
}

type fakeExporter struct{ last domreport.Document }

func (e *fakeExporter) Format() string      { return "xls" }
func (e *fakeExporter) Extension() string   { return "xls" }
func (e *fakeExporter) ContentType() string { return "application/vnd.ms-excel;charset=utf-8;" }
func (e *fakeExporter) Render(w io.Writer, doc domreport.Document) error {
	e.last = doc
	_, err := io.WriteString(w, "<html></html>")
	return err
}

func catalogOf(n int) *entity.Catalog {
	items := make([]entity.CatalogItem, n)
	for i := range items {
		items[i] = entity.CatalogItem{ID: strconv.Itoa(i + 1), Label: "Producto " + strconv.Itoa(i+1)}
	}
	return entity.NewCatalog(items, []entity.Warehouse{{ID: 8, DisplayName: "Central"}, {ID: 9, DisplayName: "Norte"}}, nil)
}

func newUseCase(src repository.MovementSource, cat *entity.Catalog, exporters ...report.Exporter) *report.UseCase {
	svc := report.NewService(src, report.Options{ChunkSize: 250, Parallelism: 1}, nil)
	store := report.NewSessionStore(&fakeLoader{catalog: cat})
	return report.NewUseCase(svc, store, report.UseCaseConfig{PageSize: 20, ExportPrefix: "productwise-report"}, nil, exporters...)
}

func selectAll(t *testing.T, uc *report.UseCase, owner string, movs ...string) *report.Workspace {
	t.Helper()
	ws, err := uc.Workspace(context.Background(), owner)
	require.NoError(t, err)
	require.NoError(t, ws.Update(func(s *selection.Selection) error {
		s.ToggleAllVisible()
		if err := s.SetWarehouses([]string{"9", "8"}); err != nil {
			return err
		}
		return s.SetMovements(movs)
	}))
	return ws
}

func purchases(q repository.MovementChunkQuery) ([]domreport.RawRow, error) {
	var rows []domreport.RawRow
	for _, id := range q.ProductIDs {
		rows = append(rows, domreport.RawRow{
			WarehouseID: "8",
			ProductID:   strconv.FormatInt(id, 10),
			Moves:       map[movement.Key]float64{movement.Purchase: 2},
		})
	}
	return rows, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestRunMovement_PrimeraPagina(t *testing.T) {
	uc := newUseCase(&fakeSource{movRows: purchases}, catalogOf(45))
	selectAll(t, uc, "u1", "purchase", "sales")

	page, err := uc.RunMovement(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "movement", page.Kind)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 45, page.TotalItems)
	require.Len(t, page.Tables, 20)

	tbl := page.Tables[0]
	assert.Equal(t, "Producto 1", tbl.Title)
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, "Purchases", tbl.Columns[0].Label)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Norte", tbl.Rows[0].Warehouse)
	assert.True(t, tbl.Rows[0].Missing)
	assert.Equal(t, []string{"", ""}, tbl.Rows[0].Cells)
	assert.Equal(t, []string{"2.00", "0.00"}, tbl.Rows[1].Cells)
	assert.Equal(t, []string{"2.00", "0.00"}, tbl.Footer)

	require.NotNil(t, page.Totals)
	assert.Equal(t, "90.00", page.Totals.Moves["purchase"])
	assert.Equal(t, "0.00", page.Totals.Moves["sales"], "tipo pedido sin datos")
	assert.Empty(t, page.Totals.Closing)

	last, err := uc.Current(context.Background(), "u1", 3)
	require.NoError(t, err)
	assert.Len(t, last.Tables, 5)
	assert.False(t, last.HasNext)
}

func TestRunMovement_ValidacionQuedaEnElError(t *testing.T) {
	src := &fakeSource{}
	uc := newUseCase(src, catalogOf(3))

	_, err := uc.RunMovement(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, src.calls())

	cur, err := uc.Current(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, report.MsgSelectProduct, cur.Error)
	assert.False(t, cur.Loading)
	assert.Nil(t, cur.Totals)
	assert.Empty(t, cur.Tables)
}

// Disparar una consulta borra ambos reportes; la falla deja el reporte ausente.
func TestRun_FallaBorraReportePrevio(t *testing.T) {
	src := &fakeSource{
		movRows: purchases,
		asOfRows: func(repository.AsOfChunkQuery) ([]domreport.RawRow, error) {
			return nil, errors.New("canceling statement due to statement timeout")
		},
	}
	uc := newUseCase(src, catalogOf(2))
	selectAll(t, uc, "u1", "purchase")

	_, err := uc.RunMovement(context.Background(), "u1")
	require.NoError(t, err)

	_, err = uc.RunAsOf(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrQueryTimeout)

	cur, err := uc.Current(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, cur.Kind)
	assert.Equal(t, report.MsgAsOfTimeout, cur.Error)

	_, err = uc.Export(context.Background(), "u1", "xls")
	assert.ErrorIs(t, err, domain.ErrNoReport)
}

func TestRun_ConsultaEnCursoRechazaOtra(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	src := &fakeSource{movRows: purchases}
	src.beforeCall = func() {
		once.Do(func() { close(started) })
		<-release
	}
	uc := newUseCase(src, catalogOf(2))
	selectAll(t, uc, "u1", "purchase")

	done := make(chan error, 1)
	go func() {
		_, err := uc.RunMovement(context.Background(), "u1")
		done <- err
	}()
	<-started

	cur, err := uc.Current(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.True(t, cur.Loading)

	_, err = uc.RunAsOf(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrFetchInProgress)

	close(release)
	require.NoError(t, <-done)
}

// Un resultado que llega después de un Reset se descarta.
func TestRun_ResultadoViejoSeDescarta(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	src := &fakeSource{movRows: purchases}
	src.beforeCall = func() {
		once.Do(func() { close(started) })
		<-release
	}
	uc := newUseCase(src, catalogOf(2))
	ws := selectAll(t, uc, "u1", "purchase")

	done := make(chan error, 1)
	go func() {
		_, err := uc.RunMovement(context.Background(), "u1")
		done <- err
	}()
	<-started
	ws.Reset()
	close(release)

	assert.ErrorIs(t, <-done, report.ErrStaleFetch)
	assert.False(t, ws.State().HasReport())
}

// Las columnas siguen los tipos con los que se pidió el reporte, no la selección actual.
func TestCurrent_ColumnasDelReportePedido(t *testing.T) {
	exp := &fakeExporter{}
	uc := newUseCase(&fakeSource{movRows: purchases}, catalogOf(2), exp)
	ws := selectAll(t, uc, "u1", "purchase")
	_, err := uc.RunMovement(context.Background(), "u1")
	require.NoError(t, err)

	require.NoError(t, ws.Update(func(s *selection.Selection) error {
		return s.SetMovements([]string{"purchase", "sales", "wastages"})
	}))

	cur, err := uc.Current(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, cur.Tables, 2)
	require.Len(t, cur.Tables[0].Columns, 1)
	assert.Equal(t, "purchase", cur.Tables[0].Columns[0].Key)
	assert.Equal(t, map[string]string{"purchase": "4.00"}, cur.Totals.Moves)

	_, err = uc.Export(context.Background(), "u1", "xls")
	require.NoError(t, err)
	require.Len(t, exp.last.Tables, 2)
	assert.Len(t, exp.last.Tables[0].Columns, 1)
}

func TestUpdate_CambioDeSeleccionVuelveAPagina1(t *testing.T) {
	uc := newUseCase(&fakeSource{movRows: purchases}, catalogOf(45))
	ws := selectAll(t, uc, "u1", "purchase")
	_, err := uc.RunMovement(context.Background(), "u1")
	require.NoError(t, err)

	ws.SetPage(3)
	require.NoError(t, ws.Update(func(s *selection.Selection) error { return s.SetDates("2025-07-01", "") }))
	assert.Equal(t, 3, ws.State().Page, "sin cambio de productos la página se conserva")

	require.NoError(t, ws.Update(func(s *selection.Selection) error { return s.Toggle("1") }))
	assert.Equal(t, 1, ws.State().Page)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_DocumentoCompleto(t *testing.T) {
	exp := &fakeExporter{}
	uc := newUseCase(&fakeSource{movRows: purchases}, catalogOf(25), exp)
	ws := selectAll(t, uc, "u1", "purchase")
	require.NoError(t, ws.Update(func(s *selection.Selection) error { return s.SetDates("2025-07-01", "") }))

	_, err := uc.RunMovement(context.Background(), "u1")
	require.NoError(t, err)

	file, err := uc.Export(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Regexp(t, `^productwise-report-\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}-\d{3}Z\.xls$`, file.Name)
	assert.Equal(t, "application/vnd.ms-excel;charset=utf-8;", file.ContentType)
	assert.Equal(t, "<html></html>", string(file.Body))

	assert.Len(t, exp.last.Tables, 25, "la exportación no se pagina")
	assert.Equal(t, "2025-07-01", exp.last.FromText())
	assert.Equal(t, "—", exp.last.ToText())
	assert.Equal(t, domreport.KindMovement, exp.last.Kind)
}

func TestExport_SinReporteAntesQueFormato(t *testing.T) {
	uc := newUseCase(&fakeSource{movRows: purchases}, catalogOf(1))
	selectAll(t, uc, "u1", "purchase")

	for _, format := range []string{"", "xls", "csv"} {
		_, err := uc.Export(context.Background(), "u1", format)
		assert.ErrorIs(t, err, domain.ErrNoReport, format)
	}
}

func TestExport_FormatoDesconocido(t *testing.T) {
	uc := newUseCase(&fakeSource{movRows: purchases}, catalogOf(1), &fakeExporter{})
	selectAll(t, uc, "u1", "purchase")
	_, err := uc.RunMovement(context.Background(), "u1")
	require.NoError(t, err)

	_, err = uc.Export(context.Background(), "u1", "csv")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionStore_CargaUnaVezPorUsuario(t *testing.T) {
	loader := &fakeLoader{catalog: catalogOf(1)}
	store := report.NewSessionStore(loader)

	var wg sync.WaitGroup
	got := make([]*report.Workspace, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws, err := store.Get(context.Background(), "u1")
			assert.NoError(t, err)
			got[i] = ws
		}()
	}
	wg.Wait()
	for _, ws := range got {
		assert.Same(t, got[0], ws)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&loader.calls))

	other, err := store.Get(context.Background(), "u2")
	require.NoError(t, err)
	assert.NotSame(t, got[0], other)

	store.Drop("u1")
	again, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotSame(t, got[0], again)
}

func TestSessionStore_FallaDeCatalogo(t *testing.T) {
	store := report.NewSessionStore(&fakeLoader{err: errors.New("relation \"inventory\" does not exist")})
	_, err := store.Get(context.Background(), "u1")
	assert.ErrorContains(t, err, "cargar catálogo")
}
