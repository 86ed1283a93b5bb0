package handlers

import (
	"stockroom/internal/apperr"
	applog "stockroom/internal/log"

	"github.com/gofiber/fiber/v2"
)

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

// fail maps the error taxonomy onto HTTP statuses with the uniform
// {success:false, message} envelope. Anything outside the taxonomy is
// logged and surfaced as a generic 500 without internal detail.
func fail(c *fiber.Ctx, err error) error {
	var status int
	var msg string
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindDuplicate:
		status, msg = fiber.StatusBadRequest, apperr.Message(err)
	case apperr.KindNotFound:
		// Generic on purpose: which entity is missing is not the
		// caller's business at this boundary.
		status, msg = fiber.StatusNotFound, "not found"
	case apperr.KindAuth:
		status, msg = fiber.StatusUnauthorized, apperr.Message(err)
	case apperr.KindAuthz:
		status, msg = fiber.StatusForbidden, apperr.Message(err)
	default:
		applog.Error(c, "server.error", err, nil)
		status, msg = fiber.StatusInternalServerError, "Something went wrong. Please try again."
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}
