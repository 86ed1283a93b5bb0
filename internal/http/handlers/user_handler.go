package handlers

import (
	"stockroom/internal/apperr"
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes account administration; all routes are gated to
// super_admin in the router.
type UserHandler struct {
	Users *services.UserService
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, users)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	u, err := h.Users.Create(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.create", map[string]any{"user_id": u.ID, "role": u.Role})
	return ok(c, fiber.StatusCreated, u)
}

func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == CurrentUser(c).ID {
		return fail(c, apperr.Validationf("cannot deactivate your own account"))
	}
	if err := h.Users.Deactivate(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.deactivate", map[string]any{"user_id": id})
	return ok(c, fiber.StatusOK, nil)
}
