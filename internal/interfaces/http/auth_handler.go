package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/auth"
	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
)

// AuthHandler maneja registro, login y perfiles.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de registro"
// @Success      201   {object}  dto.Envelope{data=dto.ProfileResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.Envelope{data=dto.LoginResponse}
// @Failure      401   {object}  dto.Envelope
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetProfile godoc
// @Summary      Perfil público por username
// @Tags         profiles
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  dto.Envelope{data=dto.ProfileResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/profiles/{username} [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.Params("username"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "perfil")
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateProfile godoc
// @Summary      Actualizar mi perfil
// @Tags         profiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.ProfileResponse}
// @Router       /api/v1/profiles/me [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateProfile(GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// SetProfileStatus godoc
// @Summary      Suspender o reactivar una cuenta (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del perfil"
// @Param        body  body  dto.StatusRequest  true  "active | suspended"
// @Success      200   {object}  dto.Envelope{data=dto.ProfileResponse}
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/admin/profiles/{id}/status [patch]
func (h *AuthHandler) SetProfileStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetStatus(c.Params("id"), in.Status)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c, "perfil")
	}
	return ok(c, fiber.StatusOK, out)
}
