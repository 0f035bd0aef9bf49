package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
)

// ok responde con el envelope de éxito.
func ok(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Data: data})
}

// okList responde un listado paginado con metadatos.
func okList(c *fiber.Ctx, data interface{}, page dto.PageRequest, total int) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{
		Success:  true,
		Data:     data,
		Metadata: &dto.Metadata{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// failWith responde un error con código y mensaje explícitos.
func failWith(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.Envelope{
		Success: false,
		Error:   &dto.ErrorBody{Code: code, Message: message},
	})
}

// fail mapea un error de dominio a su status HTTP. Errores no reconocidos
// son 500 y no filtran detalle interno al cliente.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return failWith(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, domain.ErrUnknownEntity):
		return failWith(c, fiber.StatusBadRequest, "UNKNOWN_ENTITY", err.Error())
	case errors.Is(err, domain.ErrUnknownModel):
		return failWith(c, fiber.StatusBadRequest, "UNKNOWN_MODEL", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return failWith(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrInsufficientCredits):
		return failWith(c, fiber.StatusPaymentRequired, "INSUFFICIENT_CREDITS", err.Error())
	case errors.Is(err, domain.ErrBYOKRequired):
		return failWith(c, fiber.StatusPaymentRequired, "BYOK_REQUIRED", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return failWith(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return failWith(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return failWith(c, fiber.StatusConflict, "EMAIL_TAKEN", err.Error())
	case errors.Is(err, domain.ErrUsernameTaken):
		return failWith(c, fiber.StatusConflict, "USERNAME_TAKEN", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return failWith(c, fiber.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, domain.ErrBookingConflict):
		return failWith(c, fiber.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return failWith(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrConflict):
		return failWith(c, fiber.StatusConflict, "CONFLICT", err.Error())
	default:
		return failWith(c, fiber.StatusInternalServerError, "INTERNAL", "error interno")
	}
}

// notFound respuesta 404 para consultas que devuelven nil sin error.
func notFound(c *fiber.Ctx, resource string) error {
	return failWith(c, fiber.StatusNotFound, "NOT_FOUND", resource+" no encontrado")
}

// invalidBody respuesta 400 cuando el JSON no parsea.
func invalidBody(c *fiber.Ctx) error {
	return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}

// parsePage lee limit y offset del query string con defaults acotados.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	return page
}
