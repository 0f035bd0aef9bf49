package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
)

// CauseHandler maneja las peticiones HTTP para Cause (causas benéficas).
type CauseHandler struct {
	uc *usecase.CauseUseCase
}

// NewCauseHandler construye el handler.
func NewCauseHandler(uc *usecase.CauseUseCase) *CauseHandler {
	return &CauseHandler{uc: uc}
}

// Create godoc
// @Summary  Publicar causa
// @Tags     causes
// @Security Bearer
// @Router   /api/v1/causes [post]
func (h *CauseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCauseRequest
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
// @Summary  Obtener causa por ID
// @Tags     causes
// @Router   /api/v1/causes/{id} [get]
func (h *CauseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "causa")
	}
	return ok(c, fiber.StatusOK, out)
}

// ListPublic godoc
// @Summary  Listar causas activas
// @Tags     causes
// @Router   /api/v1/causes [get]
func (h *CauseHandler) ListPublic(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListPublic(page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// ListMine godoc
// @Summary  Listar mis causas
// @Tags     causes
// @Security Bearer
// @Router   /api/v1/causes/mine [get]
func (h *CauseHandler) ListMine(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListByActor(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Update godoc
// @Summary  Actualizar causa
// @Tags     causes
// @Security Bearer
// @Router   /api/v1/causes/{id} [put]
func (h *CauseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCauseRequest
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
// @Summary  Cambiar estado de la causa
// @Tags     causes
// @Security Bearer
// @Router   /api/v1/causes/{id}/status [patch]
func (h *CauseHandler) ChangeStatus(c *fiber.Ctx) error {
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
// @Summary  Eliminar causa
// @Tags     causes
// @Security Bearer
// @Router   /api/v1/causes/{id} [delete]
func (h *CauseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActorID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
