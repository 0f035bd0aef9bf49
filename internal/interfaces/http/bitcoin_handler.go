package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/bitcoin"
	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
)

// BitcoinHandler maneja el rastreo on-chain y la transparencia de proyectos.
type BitcoinHandler struct {
	uc *bitcoin.UseCase
}

// NewBitcoinHandler construye el handler.
func NewBitcoinHandler(uc *bitcoin.UseCase) *BitcoinHandler {
	return &BitcoinHandler{uc: uc}
}

// Balance godoc
// @Summary      Saldo on-chain de la dirección del proyecto
// @Tags         bitcoin
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.Envelope{data=dto.AddressBalanceResponse}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/v1/projects/{id}/bitcoin/balance [get]
func (h *BitcoinHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Refresh godoc
// @Summary      Sincronizar transacciones desde el explorador (solo dueño)
// @Tags         bitcoin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.Envelope{data=[]dto.TrackedTxResponse}
// @Router       /api/v1/projects/{id}/bitcoin/refresh [post]
func (h *BitcoinHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.uc.Refresh(c.Context(), GetActorID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// ListTransactions godoc
// @Summary  Listar transacciones rastreadas del proyecto
// @Tags     bitcoin
// @Router   /api/v1/projects/{id}/bitcoin/transactions [get]
func (h *BitcoinHandler) ListTransactions(c *fiber.Ctx) error {
	page := parsePage(c)
	items, total, err := h.uc.ListTransactions(c.Params("id"), page)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, items, page, total)
}

// VerifyTransaction godoc
// @Summary  Verificar integridad de una transacción rastreada
// @Tags     bitcoin
// @Router   /api/v1/projects/{id}/bitcoin/transactions/{txid}/verify [get]
func (h *BitcoinHandler) VerifyTransaction(c *fiber.Ctx) error {
	out, err := h.uc.VerifyTransaction(c.Params("id"), c.Params("txid"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Score godoc
// @Summary      Calcular puntaje de transparencia (sin persistir)
// @Tags         transparency
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransparencyMetricsRequest  true  "Métricas declaradas"
// @Success      200   {object}  dto.Envelope{data=dto.TransparencyScoreResponse}
// @Router       /api/v1/transparency/score [post]
func (h *BitcoinHandler) Score(c *fiber.Ctx) error {
	var in dto.TransparencyMetricsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return ok(c, fiber.StatusOK, h.uc.Score(in))
}

// Report godoc
// @Summary  Reporte de transparencia del proyecto
// @Tags     transparency
// @Router   /api/v1/projects/{id}/transparency/report [post]
func (h *BitcoinHandler) Report(c *fiber.Ctx) error {
	var in dto.TransparencyMetricsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Report(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// ReportPDF godoc
// @Summary  Reporte de transparencia en PDF
// @Tags     transparency
// @Produce  application/pdf
// @Router   /api/v1/projects/{id}/transparency/report.pdf [post]
func (h *BitcoinHandler) ReportPDF(c *fiber.Ctx) error {
	var in dto.TransparencyMetricsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	pdfBytes, err := h.uc.ReportPDF(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transparency-report.pdf"`)
	return c.Send(pdfBytes)
}
