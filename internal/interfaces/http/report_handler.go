package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/report"
	domreport "github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

// ReportHandler dispara consultas, entrega páginas del reporte vigente y exporta.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CreateMovement godoc
// @Summary      Generar reporte de movimientos
// @Description  Consulta el origen remoto con la selección actual y devuelve la página 1.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ReportPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/reports/movement [post]
func (h *ReportHandler) CreateMovement(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	out, err := h.uc.RunMovement(c.UserContext(), owner)
	if err != nil {
		return writeReportError(c, domreport.KindMovement, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateAsOf godoc
// @Summary      Generar reporte de stock a la fecha
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ReportPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/reports/as-of [post]
func (h *ReportHandler) CreateAsOf(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	out, err := h.uc.RunAsOf(c.UserContext(), owner)
	if err != nil {
		return writeReportError(c, domreport.KindAsOf, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Current godoc
// @Summary      Página del reporte vigente
// @Description  Tablas por producto de la página pedida, totales generales y el mensaje de error si lo hay.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        page  query  int  false  "Página (1..N); 0 conserva la actual"
// @Success      200   {object}  dto.ReportPageResponse
// @Router       /api/reports/current [get]
func (h *ReportHandler) Current(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	var in dto.ReportPageRequest
	if err := c.QueryParser(&in); err != nil {
		return writeError(c, errInvalidBody)
	}
	if err := validateRequest(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Current(c.UserContext(), owner, in.Page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar el reporte vigente
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.ms-excel,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/pdf
// @Param        format  query  string  false  "xls | xlsx | pdf"  default(xls)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	var in dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return writeError(c, errInvalidBody)
	}
	if err := validateRequest(in); err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.Export(c.UserContext(), owner, in.Format)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Body)
}

// Reset godoc
// @Summary      Descartar el reporte vigente
// @Description  Limpia reporte y error; una consulta en curso se descarta al terminar.
// @Tags         reports
// @Security     Bearer
// @Success      204
// @Router       /api/reports [delete]
func (h *ReportHandler) Reset(c *fiber.Ctx) error {
	owner := GetUserID(c)
	if owner == "" {
		return unauthorized(c)
	}
	ws, err := h.uc.Workspace(c.UserContext(), owner)
	if err != nil {
		return writeError(c, err)
	}
	ws.Reset()
	return c.SendStatus(fiber.StatusNoContent)
}
