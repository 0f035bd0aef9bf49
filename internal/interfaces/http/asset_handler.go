package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
)

// AssetHandler maneja las peticiones HTTP para Asset (bienes rentables).
type AssetHandler struct {
	uc *usecase.AssetUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Create godoc
// @Summary  Publicar bien
// @Tags     assets
// @Security Bearer
// @Router   /api/v1/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
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
// @Summary  Obtener bien por ID
// @Tags     assets
// @Router   /api/v1/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "bien")
	}
	return ok(c, fiber.StatusOK, out)
}

// ListPublic godoc
// @Summary  Listar bienes activos
// @Tags     assets
// @Router   /api/v1/assets [get]
func (h *AssetHandler) ListPublic(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListPublic(page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// ListMine godoc
// @Summary  Listar mis bienes
// @Tags     assets
// @Security Bearer
// @Router   /api/v1/assets/mine [get]
func (h *AssetHandler) ListMine(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListByActor(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Update godoc
// @Summary  Actualizar bien
// @Tags     assets
// @Security Bearer
// @Router   /api/v1/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAssetRequest
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
// @Summary  Cambiar estado del bien
// @Tags     assets
// @Security Bearer
// @Router   /api/v1/assets/{id}/status [patch]
func (h *AssetHandler) ChangeStatus(c *fiber.Ctx) error {
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
// @Summary  Eliminar bien
// @Tags     assets
// @Security Bearer
// @Router   /api/v1/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActorID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
