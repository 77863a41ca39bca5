package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain/selection"
)

// SelectionHandler modifica la selección del espacio de trabajo. Toda respuesta
// exitosa devuelve el estado completo de la selección.
type SelectionHandler struct {
	uc *report.UseCase
}

// NewSelectionHandler construye el handler.
func NewSelectionHandler(uc *report.UseCase) *SelectionHandler {
	return &SelectionHandler{uc: uc}
}

// apply ejecuta fn sobre la selección del usuario y responde con el estado resultante.
func (h *SelectionHandler) apply(c *fiber.Ctx, fn func(s *selection.Selection) error) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	ws, err := h.uc.Workspace(c.UserContext(), owner)
	if err != nil {
		return writeError(c, err)
	}
	var out dto.SelectionResponse
	err = ws.Update(func(s *selection.Selection) error {
		if err := fn(s); err != nil {
			return err
		}
		out = report.ToSelectionResponse(s)
		return nil
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// bind parsea el cuerpo JSON y valida sus etiquetas.
func bind(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return errInvalidBody
	}
	return validateRequest(in)
}

// Get godoc
// @Summary      Estado de la selección
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/selection [get]
func (h *SelectionHandler) Get(c *fiber.Ctx) error {
	return h.apply(c, func(*selection.Selection) error { return nil })
}

// SetFilter godoc
// @Summary      Filtro del pool (texto y categorías)
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionFilterRequest  true  "Filtro"
// @Success      200   {object}  dto.SelectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/selection/filter [put]
func (h *SelectionHandler) SetFilter(c *fiber.Ctx) error {
	var in dto.SelectionFilterRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.apply(c, func(s *selection.Selection) error {
		s.SetQuery(in.Query)
		s.SetCategories(in.Categories)
		return nil
	})
}

// SetCategories godoc
// @Summary      Categorías del filtro
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionCategoriesRequest  true  "Categorías"
// @Success      200   {object}  dto.SelectionResponse
// @Router       /api/selection/categories [put]
func (h *SelectionHandler) SetCategories(c *fiber.Ctx) error {
	var in dto.SelectionCategoriesRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.apply(c, func(s *selection.Selection) error {
		s.SetCategories(in.Categories)
		return nil
	})
}

// AddProducts godoc
// @Summary      Agregar productos a la selección
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionProductsRequest  true  "IDs"
// @Success      200   {object}  dto.SelectionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/selection/products [post]
func (h *SelectionHandler) AddProducts(c *fiber.Ctx) error {
	var in dto.SelectionProductsRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.apply(c, func(s *selection.Selection) error { return s.Select(in.IDs...) })
}

// ToggleProduct godoc
// @Summary      Marcar / desmarcar un producto
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SelectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/selection/products/{id}/toggle [post]
func (h *SelectionHandler) ToggleProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	return h.apply(c, func(s *selection.Selection) error { return s.Toggle(id) })
}

// RemoveProduct godoc
// @Summary      Quitar un producto de la selección
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SelectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/selection/products/{id} [delete]
func (h *SelectionHandler) RemoveProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	return h.apply(c, func(s *selection.Selection) error { return s.Remove(id) })
}

// ToggleAllProducts godoc
// @Summary      Seleccionar todo el pool visible (o limpiarlo si ya lo está)
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/selection/products/toggle-all [post]
func (h *SelectionHandler) ToggleAllProducts(c *fiber.Ctx) error {
	return h.apply(c, func(s *selection.Selection) error {
		s.ToggleAllVisible()
		return nil
	})
}

// ClearProducts godoc
// @Summary      Limpiar la selección de productos
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/selection/products [delete]
func (h *SelectionHandler) ClearProducts(c *fiber.Ctx) error {
	return h.apply(c, func(s *selection.Selection) error {
		s.ClearProducts()
		return nil
	})
}

// SetWarehouses godoc
// @Summary      Bodegas elegidas
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionWarehousesRequest  true  "IDs de bodega"
// @Success      200   {object}  dto.SelectionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/selection/warehouses [put]
func (h *SelectionHandler) SetWarehouses(c *fiber.Ctx) error {
	var in dto.SelectionWarehousesRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.apply(c, func(s *selection.Selection) error { return s.SetWarehouses(in.IDs) })
}

// ToggleAllWarehouses godoc
// @Summary      Todas / ninguna bodega
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/selection/warehouses/toggle-all [post]
func (h *SelectionHandler) ToggleAllWarehouses(c *fiber.Ctx) error {
	return h.apply(c, func(s *selection.Selection) error {
		s.ToggleAllWarehouses()
		return nil
	})
}

// SetMovements godoc
// @Summary      Tipos de movimiento elegidos
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionMovementsRequest  true  "Códigos de movimiento"
// @Success      200   {object}  dto.SelectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/selection/movements [put]
func (h *SelectionHandler) SetMovements(c *fiber.Ctx) error {
	var in dto.SelectionMovementsRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.apply(c, func(s *selection.Selection) error { return s.SetMovements(in.Movements) })
}

// ToggleAllMovements godoc
// @Summary      Todos / ningún tipo de movimiento
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/selection/movements/toggle-all [post]
func (h *SelectionHandler) ToggleAllMovements(c *fiber.Ctx) error {
	return h.apply(c, func(s *selection.Selection) error {
		s.ToggleAllMovements()
		return nil
	})
}

// SetDates godoc
// @Summary      Límites de fecha
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionDatesRequest  true  "Fechas AAAA-MM-DD"
// @Success      200   {object}  dto.SelectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/selection/dates [put]
func (h *SelectionHandler) SetDates(c *fiber.Ctx) error {
	var in dto.SelectionDatesRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.apply(c, func(s *selection.Selection) error { return s.SetDates(in.From, in.To) })
}
