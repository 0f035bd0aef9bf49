package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/ai"
	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
)

// AIHandler maneja asistentes, conversaciones, chat y créditos.
type AIHandler struct {
	uc *ai.UseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *ai.UseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Chat godoc
// @Summary      Enviar un mensaje al asistente
// @Description  ConversationID vacío abre un hilo nuevo. Model "auto" enruta
// @Description  por palabras clave al modelo más barato con la capacidad.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Mensaje"
// @Success      200   {object}  dto.Envelope{data=dto.ChatResponse}
// @Failure      402   {object}  dto.Envelope
// @Router       /api/v1/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Chat(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// CreateAssistant godoc
// @Summary  Crear asistente
// @Tags     ai
// @Security Bearer
// @Router   /api/v1/ai/assistants [post]
func (h *AIHandler) CreateAssistant(c *fiber.Ctx) error {
	var in dto.CreateAssistantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateAssistant(GetActorID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// GetAssistant godoc
// @Summary  Obtener asistente por ID
// @Tags     ai
// @Router   /api/v1/ai/assistants/{id} [get]
func (h *AIHandler) GetAssistant(c *fiber.Ctx) error {
	out, err := h.uc.GetAssistant(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "asistente")
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateAssistant godoc
// @Summary  Actualizar asistente (solo dueño)
// @Tags     ai
// @Security Bearer
// @Router   /api/v1/ai/assistants/{id} [put]
func (h *AIHandler) UpdateAssistant(c *fiber.Ctx) error {
	var in dto.UpdateAssistantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateAssistant(GetActorID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// ListAssistants godoc
// @Summary  Listar mis asistentes
// @Tags     ai
// @Security Bearer
// @Router   /api/v1/ai/assistants [get]
func (h *AIHandler) ListAssistants(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListAssistants(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// DeleteAssistant godoc
// @Summary  Eliminar asistente (solo dueño)
// @Tags     ai
// @Security Bearer
// @Router   /api/v1/ai/assistants/{id} [delete]
func (h *AIHandler) DeleteAssistant(c *fiber.Ctx) error {
	if err := h.uc.DeleteAssistant(GetActorID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListConversations godoc
// @Summary  Listar mis conversaciones
// @Tags     ai
// @Security Bearer
// @Router   /api/v1/ai/conversations [get]
func (h *AIHandler) ListConversations(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListConversations(GetUserID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// ListMessages godoc
// @Summary  Listar mensajes de una conversación propia
// @Tags     ai
// @Security Bearer
// @Router   /api/v1/ai/conversations/{id}/messages [get]
func (h *AIHandler) ListMessages(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListMessages(GetUserID(c), c.Params("id"), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Credits godoc
// @Summary  Saldo de créditos de IA
// @Tags     ai
// @Security Bearer
// @Router   /api/v1/ai/credits [get]
func (h *AIHandler) Credits(c *fiber.Ctx) error {
	out, err := h.uc.Credits(GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Models godoc
// @Summary  Registro de modelos disponibles
// @Tags     ai
// @Router   /api/v1/ai/models [get]
func (h *AIHandler) Models(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, h.uc.Models())
}
