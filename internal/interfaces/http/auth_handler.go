package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bizops-api/internal/application/auth"
	"github.com/jhoicas/Bizops-api/internal/application/dto"
	"github.com/rs/zerolog"
)

// AuthHandler maneja registro, login y administración del equipo.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Signup godoc
// @Summary      Registrar empresa y usuario owner
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "empresa, email, password"
// @Success      201   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateUser da de alta un usuario en la empresa del token.
// POST /api/users
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateUserRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateMember(c.Context(), p, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ChangeRole cambia el rol de un usuario de la empresa.
// PUT /api/users/:id/role
func (h *AuthHandler) ChangeRole(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ChangeRoleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeRole(c.Context(), p, c.Params("id"), in.Role)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
