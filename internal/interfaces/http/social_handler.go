package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
	"github.com/orangecat-xyz/orangecat-api/internal/infrastructure/feeds"
)

// SocialHandler maneja seguimiento, timeline, feed y RSS.
type SocialHandler struct {
	uc  *usecase.SocialUseCase
	rss *feeds.RSSBuilder
}

// NewSocialHandler construye el handler.
func NewSocialHandler(uc *usecase.SocialUseCase, rss *feeds.RSSBuilder) *SocialHandler {
	return &SocialHandler{uc: uc, rss: rss}
}

// Follow godoc
// @Summary      Seguir a un actor
// @Tags         social
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FollowRequest  true  "Actor a seguir"
// @Success      201   {object}  dto.Envelope{data=dto.FollowResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/social/follow [post]
func (h *SocialHandler) Follow(c *fiber.Ctx) error {
	var in dto.FollowRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Follow(GetActorID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Unfollow godoc
// @Summary  Dejar de seguir a un actor (idempotente)
// @Tags     social
// @Security Bearer
// @Router   /api/v1/social/follow/{actorID} [delete]
func (h *SocialHandler) Unfollow(c *fiber.Ctx) error {
	if err := h.uc.Unfollow(GetActorID(c), c.Params("actorID")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListFollowers godoc
// @Summary  Listar seguidores de un actor
// @Tags     social
// @Router   /api/v1/actors/{id}/followers [get]
func (h *SocialHandler) ListFollowers(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListFollowers(c.Params("id"), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// ListFollowing godoc
// @Summary  Listar seguidos de un actor
// @Tags     social
// @Router   /api/v1/actors/{id}/following [get]
func (h *SocialHandler) ListFollowing(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListFollowing(c.Params("id"), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Feed godoc
// @Summary  Feed del usuario autenticado (actividad de los seguidos)
// @Tags     social
// @Security Bearer
// @Router   /api/v1/social/feed [get]
func (h *SocialHandler) Feed(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.Feed(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// ActorTimeline godoc
// @Summary  Actividad pública de un actor
// @Tags     social
// @Router   /api/v1/actors/{id}/timeline [get]
func (h *SocialHandler) ActorTimeline(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ActorTimeline(c.Params("id"), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// ActorRSS godoc
// @Summary  Timeline público de un actor como RSS 2.0
// @Tags     social
// @Produce  application/rss+xml
// @Router   /api/v1/actors/{id}/timeline.rss [get]
func (h *SocialHandler) ActorRSS(c *fiber.Ctx) error {
	actorID := c.Params("id")
	name, err := h.uc.ActorName(actorID)
	if err != nil {
		return fail(c, err)
	}
	page := dto.PageRequest{Limit: 50}
	page.DefaultPage()
	items, _, err := h.uc.ActorTimeline(actorID, page)
	if err != nil {
		return fail(c, err)
	}
	xml, err := h.rss.BuildActorFeed(actorID, name, items)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.Send(xml)
}
