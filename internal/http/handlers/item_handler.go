package handlers

import (
	"strconv"
	"strings"

	"stockroom/internal/apperr"
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	Items *services.ItemService
}

// paging parses limit/offset query params with sane clamps.
func paging(c *fiber.Ctx) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	items, err := h.Items.List(
		c.Query("category"),
		c.Query("location"),
		strings.TrimSpace(c.Query("q")),
		c.Query("status"),
		limit, offset,
	)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, items)
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	it, err := h.Items.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, it)
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in services.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	it, err := h.Items.Create(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "item.create", map[string]any{"item_id": it.ID, "sku": it.SKU})
	return ok(c, fiber.StatusCreated, it)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in services.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	it, err := h.Items.Update(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "item.update", map[string]any{"item_id": it.ID})
	return ok(c, fiber.StatusOK, it)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Items.Delete(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "item.delete", map[string]any{"item_id": id})
	return ok(c, fiber.StatusOK, nil)
}
