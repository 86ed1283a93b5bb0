package handlers

import (
	"stockroom/internal/apperr"
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type LocationHandler struct {
	Locations *services.LocationService
}

func (h *LocationHandler) List(c *fiber.Ctx) error {
	locs, err := h.Locations.List()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, locs)
}

func (h *LocationHandler) Get(c *fiber.Ctx) error {
	loc, err := h.Locations.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, loc)
}

func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in services.LocationInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	loc, err := h.Locations.Create(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "location.create", map[string]any{"location_id": loc.ID, "code": loc.Code})
	return ok(c, fiber.StatusCreated, loc)
}

func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in services.LocationInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	loc, err := h.Locations.Update(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "location.update", map[string]any{"location_id": loc.ID})
	return ok(c, fiber.StatusOK, loc)
}

func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Locations.Delete(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "location.delete", map[string]any{"location_id": id})
	return ok(c, fiber.StatusOK, nil)
}
