package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/bookings"
	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
)

// BookingHandler maneja disponibilidad y reservas de servicios y bienes.
type BookingHandler struct {
	uc *bookings.UseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *bookings.UseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Availability godoc
// @Summary      Consultar disponibilidad de una entidad
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "Entidad y rango"
// @Success      200   {object}  dto.Envelope{data=dto.AvailabilityResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/v1/bookings/availability [post]
func (h *BookingHandler) Availability(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Availability(in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear reserva
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "Datos de la reserva"
// @Success      201   {object}  dto.Envelope{data=dto.BookingResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(GetActorID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// ListMine godoc
// @Summary  Listar mis reservas
// @Tags     bookings
// @Security Bearer
// @Router   /api/v1/bookings/mine [get]
func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListByBooker(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Confirm godoc
// @Summary  Confirmar reserva pendiente (reservante o dueño)
// @Tags     bookings
// @Security Bearer
// @Router   /api/v1/bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(GetActorID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Cancel godoc
// @Summary  Cancelar reserva (reservante o dueño)
// @Tags     bookings
// @Security Bearer
// @Router   /api/v1/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(GetActorID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
