package handlers

import (
	"stockroom/internal/apperr"
	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	email, okEmail := validate.Email(body.Email)
	if !okEmail || body.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": body.Email, "reason": "bad_format"})
		return fail(c, apperr.Authf("invalid email or password"))
	}

	token, u, err := h.Auth.Login(email, body.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, err)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return ok(c, fiber.StatusOK, fiber.Map{"token": token, "user": u})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, CurrentUser(c))
}
