package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/report"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	domreport "github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var errInvalidBody = fmt.Errorf("cuerpo inválido: %w", domain.ErrInvalidInput)

// validateRequest valida las etiquetas `validate` del DTO.
func validateRequest(in any) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fe.Field()+": "+fe.Tag())
			}
			return domain.NewValidationError("request", "datos inválidos ("+strings.Join(msgs, ", ")+")")
		}
		return domain.NewValidationError("request", err.Error())
	}
	return nil
}

// writeError traduce errores de dominio a respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	return writeReportError(c, "", err)
}

// writeReportError como writeError; para fallas remotas usa el mensaje del tipo de reporte.
func writeReportError(c *fiber.Ctx, kind domreport.Kind, err error) error {
	status, code := classify(err)
	msg := err.Error()
	if kind != "" {
		msg = report.ErrorMessage(kind, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, "INVALID_BODY"
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrFetchInProgress):
		return fiber.StatusConflict, "FETCH_IN_PROGRESS"
	case errors.Is(err, domain.ErrNoReport):
		return fiber.StatusConflict, "NO_REPORT"
	case errors.Is(err, report.ErrStaleFetch):
		return fiber.StatusConflict, "STALE_FETCH"
	case errors.Is(err, domain.ErrQueryTimeout):
		return fiber.StatusGatewayTimeout, "QUERY_TIMEOUT"
	case errors.Is(err, domain.ErrRemoteQuery):
		return fiber.StatusBadGateway, "REMOTE_QUERY"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario requerido"})
}
