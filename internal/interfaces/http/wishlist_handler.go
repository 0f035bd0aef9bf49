package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
)

// WishlistHandler maneja las peticiones HTTP para Wishlist y sus items.
type WishlistHandler struct {
	uc *usecase.WishlistUseCase
}

// NewWishlistHandler construye el handler.
func NewWishlistHandler(uc *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

// Create godoc
// @Summary  Crear wishlist
// @Tags     wishlists
// @Security Bearer
// @Router   /api/v1/wishlists [post]
func (h *WishlistHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWishlistRequest
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
// @Summary  Obtener wishlist con items
// @Tags     wishlists
// @Router   /api/v1/wishlists/{id} [get]
func (h *WishlistHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "wishlist")
	}
	return ok(c, fiber.StatusOK, out)
}

// ListMine godoc
// @Summary  Listar mis wishlists
// @Tags     wishlists
// @Security Bearer
// @Router   /api/v1/wishlists/mine [get]
func (h *WishlistHandler) ListMine(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListByActor(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Update godoc
// @Summary  Actualizar wishlist
// @Tags     wishlists
// @Security Bearer
// @Router   /api/v1/wishlists/{id} [put]
func (h *WishlistHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWishlistRequest
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
// @Summary  Cambiar estado de la wishlist
// @Tags     wishlists
// @Security Bearer
// @Router   /api/v1/wishlists/{id}/status [patch]
func (h *WishlistHandler) ChangeStatus(c *fiber.Ctx) error {
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
// @Summary  Eliminar wishlist
// @Tags     wishlists
// @Security Bearer
// @Router   /api/v1/wishlists/{id} [delete]
func (h *WishlistHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActorID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem godoc
// @Summary  Agregar item a la wishlist
// @Tags     wishlists
// @Security Bearer
// @Router   /api/v1/wishlists/{id}/items [post]
func (h *WishlistHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddWishlistItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddItem(GetActorID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// RemoveItem godoc
// @Summary  Quitar item de la wishlist
// @Tags     wishlists
// @Security Bearer
// @Router   /api/v1/wishlists/{id}/items/{itemID} [delete]
func (h *WishlistHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(GetActorID(c), c.Params("id"), c.Params("itemID")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
