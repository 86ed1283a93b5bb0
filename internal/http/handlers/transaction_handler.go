package handlers

import (
	"stockroom/internal/apperr"
	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	Ledger *services.LedgerService
}

// Create records a ledger entry. The acting staff is always the
// authenticated caller, never taken from the body.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in services.RecordInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, apperr.Validationf("invalid request body"))
	}
	in.StaffID = CurrentUser(c).ID

	tx, err := h.Ledger.Record(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "transaction.record", map[string]any{
		"tx_id": tx.ID, "type": tx.Type, "item_id": tx.ItemID, "quantity": tx.Quantity,
	})
	return ok(c, fiber.StatusCreated, tx)
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	txs, err := h.Ledger.List(c.Query("item"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, txs)
}
