package handlers

import (
	"strings"

	"stockroom/internal/apperr"
	"stockroom/internal/domain"
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and attaches the resolved
// user to the request context.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			applog.Security(c, "auth.header.missing", nil)
			return fail(c, apperr.Authf("missing or invalid authorization header"))
		}
		u, err := auth.Authenticate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return fail(c, err)
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireRole enforces the ordered privilege hierarchy
// (super_admin > staff > employee). Must run after RequireAuth.
func RequireRole(minimum string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return fail(c, apperr.Authf("not authenticated"))
		}
		if !domain.RoleAtLeast(u.Role, minimum) {
			applog.Security(c, "access.denied", map[string]any{"user_id": u.ID, "need": minimum})
			return fail(c, apperr.Authzf("insufficient permissions"))
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
