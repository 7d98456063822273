package auth

import (
	"errors"

	authsvc "amlak-backend/internal/application/auth"
	"amlak-backend/internal/middleware"
	"amlak-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *authsvc.Service
}

type loginRequest struct {
	Password string `json:"password"`
}

// POST /api/v1/auth/login: {password} in, capability token out.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	token, err := h.Service.Login(c.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrPasswordRequired):
			return response.Error(c, "Password is required", 400, nil)
		case errors.Is(err, authsvc.ErrInvalidPassword):
			return response.Unauthorized(c, "Invalid password")
		case errors.Is(err, authsvc.ErrNotConfigured):
			return response.Error(c, "Admin login is not configured", 503, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Login successful", fiber.Map{"token": token}, nil)
}

// GET /api/v1/auth/me: token introspection.
func (h *Handlers) Me(c *fiber.Ctx) error {
	ok, err := h.Service.Verify(c.Context(), middleware.BearerToken(c))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, "Authenticated", fiber.Map{"role": "admin"}, nil)
}

// DELETE /api/v1/auth/logout: revokes the token.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if err := h.Service.Logout(c.Context(), middleware.BearerToken(c)); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Logged out", nil, nil)
}
