package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain/selection"
)

// CatalogHandler expone el catálogo del espacio de trabajo: productos, categorías y bodegas.
type CatalogHandler struct {
	uc       *report.UseCase
	sessions *report.SessionStore
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *report.UseCase, sessions *report.SessionStore) *CatalogHandler {
	return &CatalogHandler{uc: uc, sessions: sessions}
}

// Products godoc
// @Summary      Pool de productos
// @Description  Productos que pasan el filtro de categorías y texto, con su marca de selección.
// @Description  Si se envían q o category, reemplazan el filtro del espacio de trabajo.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  false  "Prefijo de nombre o código"
// @Param        category  query  []string false "Categorías"
// @Param        limit     query  int     false  "Límite"  default(20) maximum(500)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	var in dto.ProductFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return writeError(c, errInvalidBody)
	}
	in.DefaultPage()
	if err := validateRequest(in); err != nil {
		return writeError(c, err)
	}

	ws, err := h.uc.Workspace(c.UserContext(), owner)
	if err != nil {
		return writeError(c, err)
	}
	args := c.Context().QueryArgs()
	setQuery, setCategories := args.Has("q"), args.Has("category")

	var out dto.ProductListResponse
	err = ws.Update(func(s *selection.Selection) error {
		if setQuery {
			s.SetQuery(in.Query)
		}
		if setCategories {
			s.SetCategories(in.Category)
		}
		pool := s.Pool()
		out.Page = dto.NewPageResponse(in.PageRequest, len(pool))
		out.AllPoolSelected = s.AllPoolSelected()
		out.Items = []dto.ProductResponse{}
		start, end := in.Window(len(pool))
		for _, it := range pool[start:end] {
			out.Items = append(out.Items, dto.ProductResponse{
				ID:       it.ID,
				Label:    it.Label,
				Code:     it.Code,
				Category: it.Category,
				Selected: s.IsSelected(it.ID),
			})
		}
		return nil
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías disponibles
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	ws, err := h.uc.Workspace(c.UserContext(), owner)
	if err != nil {
		return writeError(c, err)
	}
	items := ws.State().Catalog.Categories
	if items == nil {
		items = []string{}
	}
	return c.JSON(dto.CategoryListResponse{Items: items})
}

// Warehouses godoc
// @Summary      Bodegas disponibles
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WarehouseListResponse
// @Router       /api/catalog/warehouses [get]
func (h *CatalogHandler) Warehouses(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	ws, err := h.uc.Workspace(c.UserContext(), owner)
	if err != nil {
		return writeError(c, err)
	}
	st := ws.State()
	chosen := make(map[string]bool, len(st.Selected))
	for _, id := range st.Selected {
		chosen[id] = true
	}
	out := dto.WarehouseListResponse{Items: make([]dto.WarehouseResponse, 0, len(st.Catalog.Warehouses))}
	for _, w := range st.Catalog.Warehouses {
		out.Items = append(out.Items, dto.WarehouseResponse{
			ID:          w.Key(),
			DisplayName: w.DisplayName,
			Selected:    chosen[w.Key()],
		})
	}
	return c.JSON(out)
}

// Reload godoc
// @Summary      Recargar catálogo
// @Description  Descarta el espacio de trabajo; la siguiente petición vuelve a leer el catálogo.
// @Tags         catalog
// @Security     Bearer
// @Success      204
// @Router       /api/catalog/reload [post]
func (h *CatalogHandler) Reload(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	h.sessions.Drop(owner)
	return c.SendStatus(fiber.StatusNoContent)
}
