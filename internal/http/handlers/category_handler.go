package handlers

import (
	"stockroom/internal/apperr"
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.List()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, cats)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.Categories.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, cat)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	cat, err := h.Categories.Create(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": cat.ID})
	return ok(c, fiber.StatusCreated, cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	cat, err := h.Categories.Update(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": cat.ID})
	return ok(c, fiber.StatusOK, cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Categories.Delete(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return ok(c, fiber.StatusOK, nil)
}
