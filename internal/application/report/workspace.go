package report

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	domreport "github.com/jhoicas/inventario-movimientos/internal/domain/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain/selection"
)

// Mensajes del espacio de trabajo para fallas remotas.
const (
	MsgMovementTimeout = "La consulta excedió el tiempo límite. Reduzca el rango de fechas o la cantidad de productos."
	MsgAsOfTimeout     = "La consulta excedió el tiempo límite. Seleccione menos productos o un rango más corto."
	MsgUnexpected      = "Ocurrió un error inesperado"
)

// Workspace estado de trabajo de un usuario: selección, reporte vigente (de movimientos o
// "a la fecha", nunca ambos), un único mensaje de error, la marca de carga y la página.
type Workspace struct {
	mu sync.Mutex

	owner string
	sel   *selection.Selection

	movement   *domreport.MovementReport
	fetched    []movement.Key // tipos con los que se pidió el reporte de movimientos
	asOf       *domreport.AsOfReport
	errMsg     string
	loading    bool
	generation string
	page       int
}

// NewWorkspace crea el espacio de trabajo de owner sobre el catálogo.
func NewWorkspace(owner string, catalog *entity.Catalog) *Workspace {
	return &Workspace{owner: owner, sel: selection.New(catalog), page: 1}
}

// Owner usuario dueño del espacio.
func (w *Workspace) Owner() string { return w.owner }

// Update aplica fn sobre la selección. Si cambia la cantidad de productos efectivos,
// la página vuelve a 1.
func (w *Workspace) Update(fn func(s *selection.Selection) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	before := len(w.sel.SelectedIDs())
	err := fn(w.sel)
	if len(w.sel.SelectedIDs()) != before {
		w.page = 1
	}
	return err
}

// View lee la selección bajo el candado; fn no debe conservar el puntero.
func (w *Workspace) View(fn func(s *selection.Selection)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.sel)
}

// State copia inmutable de lo necesario para mostrar o exportar el reporte.
type State struct {
	Catalog    *entity.Catalog
	Items      []entity.CatalogItem // productos efectivos, orden del catálogo
	Warehouses []string             // bodegas elegidas o, si no hay, todas
	Selected   []string             // bodegas elegidas tal cual
	Movements  []movement.Key
	From       string
	To         string

	Movement        *domreport.MovementReport
	MovementColumns []movement.Key
	AsOf            *domreport.AsOfReport
	Error           string
	Loading  bool
	Page     int
}

// HasReport indica si hay un reporte para mostrar o exportar.
func (s State) HasReport() bool { return s.Movement != nil || s.AsOf != nil }

// State foto del espacio de trabajo.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Workspace) stateLocked() State {
	cat := w.sel.Catalog()
	chosen := w.sel.Warehouses()
	whs := chosen
	if len(whs) == 0 {
		whs = cat.WarehouseKeys()
	}
	return State{
		Catalog:         cat,
		Items:           w.sel.SelectedItems(),
		Warehouses:      whs,
		Selected:        chosen,
		Movements:       w.sel.Movements(),
		From:            w.sel.From(),
		To:              w.sel.To(),
		Movement:        w.movement,
		MovementColumns: w.fetched,
		AsOf:            w.asOf,
		Error:           w.errMsg,
		Loading:         w.loading,
		Page:            w.page,
	}
}

// SetPage fija la página actual.
func (w *Workspace) SetPage(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if n < 1 {
		n = 1
	}
	w.page = n
}

// begin inicia una consulta: limpia ambos reportes y el error, marca la carga y
// entrega el token de generación. Con una consulta en curso devuelve ErrFetchInProgress.
func (w *Workspace) begin() (string, State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loading {
		return "", State{}, domain.ErrFetchInProgress
	}
	w.movement, w.fetched, w.asOf, w.errMsg = nil, nil, nil, ""
	w.loading = true
	w.generation = uuid.NewString()
	return w.generation, w.stateLocked(), nil
}

// finish aplica el resultado solo si gen sigue vigente. Devuelve false si se descartó.
func (w *Workspace) finish(gen string, apply func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		return false
	}
	w.loading = false
	apply()
	return true
}

// Reset invalida cualquier consulta en curso y limpia reporte y error.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generation = uuid.NewString()
	w.loading = false
	w.movement, w.fetched, w.asOf, w.errMsg = nil, nil, nil, ""
	w.page = 1
}

// ErrorMessage texto para el usuario según el tipo de falla y el reporte pedido.
func ErrorMessage(kind domreport.Kind, err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, domain.ErrQueryTimeout):
		if kind == domreport.KindAsOf {
			return MsgAsOfTimeout
		}
		return MsgMovementTimeout
	case err == nil || err.Error() == "":
		return MsgUnexpected
	default:
		return err.Error()
	}
}

// CatalogLoader carga el catálogo de un espacio de trabajo nuevo.
type CatalogLoader interface {
	Load(ctx context.Context) (*entity.Catalog, error)
}

// SessionStore espacios de trabajo en memoria, uno por usuario autenticado.
type SessionStore struct {
	loader CatalogLoader

	mu       sync.RWMutex
	sessions map[string]*Workspace
	group    singleflight.Group
}

// NewSessionStore construye el almacén.
func NewSessionStore(loader CatalogLoader) *SessionStore {
	return &SessionStore{loader: loader, sessions: make(map[string]*Workspace)}
}

// Get devuelve el espacio de owner, cargando el catálogo la primera vez. Cargas simultáneas
// para el mismo usuario comparten la misma llamada.
func (s *SessionStore) Get(ctx context.Context, owner string) (*Workspace, error) {
	s.mu.RLock()
	ws, ok := s.sessions[owner]
	s.mu.RUnlock()
	if ok {
		return ws, nil
	}

	v, err, _ := s.group.Do(owner, func() (any, error) {
		s.mu.RLock()
		existing, ok := s.sessions[owner]
		s.mu.RUnlock()
		if ok {
			return existing, nil
		}
		cat, err := s.loader.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("cargar catálogo: %w", err)
		}
		ws := NewWorkspace(owner, cat)
		s.mu.Lock()
		s.sessions[owner] = ws
		s.mu.Unlock()
		return ws, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Workspace), nil
}

// Drop descarta el espacio de owner; el siguiente Get vuelve a cargar el catálogo.
func (s *SessionStore) Drop(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ws, ok := s.sessions[owner]; ok {
		ws.Reset()
		delete(s.sessions, owner)
	}
}
