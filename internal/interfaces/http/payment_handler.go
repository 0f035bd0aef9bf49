package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/payments"
)

// PaymentHandler maneja la iniciación de pagos Lightning y el ledger.
type PaymentHandler struct {
	uc *payments.UseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payments.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Initiate godoc
// @Summary      Iniciar un pago hacia una entidad registrada
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitiatePaymentRequest  true  "Entidad, cantidad y monto"
// @Success      201   {object}  dto.Envelope{data=dto.InitiatePaymentResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/payments [post]
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	var in dto.InitiatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Initiate(c.Context(), GetActorID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary  Obtener un pago propio
// @Tags     payments
// @Security Bearer
// @Router   /api/v1/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetPayment(GetActorID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "pago")
	}
	return ok(c, fiber.StatusOK, out)
}

// ListMine godoc
// @Summary  Listar mis pagos
// @Tags     payments
// @Security Bearer
// @Router   /api/v1/payments/mine [get]
func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListByPayer(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// Ledger godoc
// @Summary  Ledger de transacciones del actor autenticado
// @Tags     payments
// @Security Bearer
// @Router   /api/v1/payments/ledger [get]
func (h *PaymentHandler) Ledger(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListLedger(GetActorID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}
