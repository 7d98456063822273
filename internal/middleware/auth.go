package middleware

import (
	"strings"

	authsvc "amlak-backend/internal/application/auth"
	"amlak-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BearerToken extracts the capability token from the Authorization header.
func BearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return ""
}

// RequireAdmin guards write routes behind the admin capability token.
// Stateless: the token is checked against Redis on every request.
func RequireAdmin(auth *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := auth.Verify(c.Context(), BearerToken(c))
		if err != nil {
			return response.Error(c, "Auth check failed", fiber.StatusInternalServerError, nil)
		}
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}
