package handlers

import (
	"stockroom/internal/apperr"
	"stockroom/internal/domain"
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	Requests *services.RequestService
}

type createRequestBody struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var body createRequestBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	req, err := h.Requests.Create(CurrentUser(c).ID, body.ItemID, body.Quantity, body.Reason)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "request.create", map[string]any{"request_id": req.ID, "code": req.Code})
	return ok(c, fiber.StatusCreated, req)
}

// List shows all requests to staff and above; employees only see
// their own.
func (h *RequestHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	u := CurrentUser(c)

	requester := c.Query("requester")
	if !domain.RoleAtLeast(u.Role, domain.RoleStaff) {
		requester = u.ID
	}
	reqs, err := h.Requests.List(requester, c.Query("status"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, reqs)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	req, err := h.Requests.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	u := CurrentUser(c)
	if !domain.RoleAtLeast(u.Role, domain.RoleStaff) && req.RequesterID != u.ID {
		return fail(c, apperr.Authzf("insufficient permissions"))
	}
	return ok(c, fiber.StatusOK, req)
}

func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	req, err := h.Requests.Approve(c.Params("id"), CurrentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "request.approve", map[string]any{"request_id": req.ID, "code": req.Code})
	return ok(c, fiber.StatusOK, req)
}

type rejectBody struct {
	Reason string `json:"reason"`
}

func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	var body rejectBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	req, err := h.Requests.Reject(c.Params("id"), CurrentUser(c).ID, body.Reason)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "request.reject", map[string]any{"request_id": req.ID, "code": req.Code})
	return ok(c, fiber.StatusOK, req)
}

func (h *RequestHandler) Complete(c *fiber.Ctx) error {
	req, err := h.Requests.Complete(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "request.complete", map[string]any{"request_id": req.ID, "code": req.Code})
	return ok(c, fiber.StatusOK, req)
}

// Fulfill executes an approved request against the ledger.
func (h *RequestHandler) Fulfill(c *fiber.Ctx) error {
	req, err := h.Requests.Fulfill(c.Params("id"), CurrentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "request.fulfill", map[string]any{
		"request_id": req.ID, "code": req.Code, "tx_id": req.FulfilledTxID,
	})
	return ok(c, fiber.StatusOK, req)
}
