package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
)

// OrganizationHandler maneja organizaciones, grupos, miembros y propuestas.
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Create godoc
// @Summary  Crear organización
// @Tags     organizations
// @Security Bearer
// @Router   /api/v1/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
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
// @Summary  Obtener organización por ID
// @Tags     organizations
// @Router   /api/v1/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "organización")
	}
	return ok(c, fiber.StatusOK, out)
}

// List godoc
// @Summary  Listar organizaciones activas
// @Tags     organizations
// @Router   /api/v1/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.List(page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Update godoc
// @Summary  Actualizar organización (solo fundador)
// @Tags     organizations
// @Security Bearer
// @Router   /api/v1/organizations/{id} [put]
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(GetActorID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// CreateGroup godoc
// @Summary  Crear grupo en la organización (solo fundador)
// @Tags     organizations
// @Security Bearer
// @Router   /api/v1/organizations/{id}/groups [post]
func (h *OrganizationHandler) CreateGroup(c *fiber.Ctx) error {
	var in dto.CreateGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateGroup(GetActorID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// ListGroups godoc
// @Summary  Listar grupos de la organización
// @Tags     organizations
// @Router   /api/v1/organizations/{id}/groups [get]
func (h *OrganizationHandler) ListGroups(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListGroups(c.Params("id"), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// AddMember godoc
// @Summary  Agregar miembro al grupo (solo admin del grupo)
// @Tags     groups
// @Security Bearer
// @Router   /api/v1/groups/{id}/members [post]
func (h *OrganizationHandler) AddMember(c *fiber.Ctx) error {
	var in dto.AddMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddMember(GetActorID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// ListMembers godoc
// @Summary  Listar miembros del grupo
// @Tags     groups
// @Router   /api/v1/groups/{id}/members [get]
func (h *OrganizationHandler) ListMembers(c *fiber.Ctx) error {
	out, err := h.uc.ListMembers(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// RemoveMember godoc
// @Summary  Quitar miembro del grupo (admin o el propio miembro)
// @Tags     groups
// @Security Bearer
// @Router   /api/v1/groups/{id}/members/{actorID} [delete]
func (h *OrganizationHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveMember(GetActorID(c), c.Params("id"), c.Params("actorID")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateProposal godoc
// @Summary  Crear propuesta en el grupo (solo miembros)
// @Tags     proposals
// @Security Bearer
// @Router   /api/v1/groups/{id}/proposals [post]
func (h *OrganizationHandler) CreateProposal(c *fiber.Ctx) error {
	var in dto.CreateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateProposal(GetActorID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// ListProposals godoc
// @Summary  Listar propuestas del grupo
// @Tags     proposals
// @Router   /api/v1/groups/{id}/proposals [get]
func (h *OrganizationHandler) ListProposals(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListProposals(c.Params("id"), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// GetProposal godoc
// @Summary  Obtener propuesta con conteo de votos
// @Tags     proposals
// @Router   /api/v1/proposals/{id} [get]
func (h *OrganizationHandler) GetProposal(c *fiber.Ctx) error {
	out, err := h.uc.GetProposal(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "propuesta")
	}
	return ok(c, fiber.StatusOK, out)
}

// Vote godoc
// @Summary  Votar una propuesta abierta (solo miembros, un voto por actor)
// @Tags     proposals
// @Security Bearer
// @Router   /api/v1/proposals/{id}/votes [post]
func (h *OrganizationHandler) Vote(c *fiber.Ctx) error {
	var in dto.VoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Vote(GetActorID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}
