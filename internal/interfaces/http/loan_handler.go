package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
)

// LoanHandler maneja las peticiones HTTP para Loan.
type LoanHandler struct {
	uc *usecase.LoanUseCase
}

// NewLoanHandler construye el handler.
func NewLoanHandler(uc *usecase.LoanUseCase) *LoanHandler {
	return &LoanHandler{uc: uc}
}

// Create godoc
// @Summary  Publicar solicitud de préstamo
// @Tags     loans
// @Security Bearer
// @Router   /api/v1/loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(GetActorID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary  Obtener préstamo por ID
// @Tags     loans
// @Router   /api/v1/loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "préstamo")
	}
	return ok(c, fiber.StatusOK, out)
}

// ListPublic godoc
// @Summary  Listar préstamos activos
// @Tags     loans
// @Router   /api/v1/loans [get]
func (h *LoanHandler) ListPublic(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListPublic(page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// ListMine godoc
// @Summary  Listar mis préstamos
// @Tags     loans
// @Security Bearer
// @Router   /api/v1/loans/mine [get]
func (h *LoanHandler) ListMine(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListByActor(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Update godoc
// @Summary  Actualizar préstamo
// @Tags     loans
// @Security Bearer
// @Router   /api/v1/loans/{id} [put]
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(GetActorID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// ChangeStatus godoc
// @Summary  Cambiar estado del préstamo
// @Tags     loans
// @Security Bearer
// @Router   /api/v1/loans/{id}/status [patch]
func (h *LoanHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeStatus(GetActorID(c), c.Params("id"), in.Status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary  Eliminar préstamo
// @Tags     loans
// @Security Bearer
// @Router   /api/v1/loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActorID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
