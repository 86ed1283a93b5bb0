package repos

import (
	"stockroom/internal/apperr"
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TransactionRepo struct{ db *sqlx.DB }

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// Record persists a ledger entry and applies its stock effect to the
// referenced item inside a single database transaction, so the ledger
// and the item can never disagree. The stock delta is an atomic
// in-place UPDATE, never a read-modify-write: two concurrent inbound
// entries of +5 always net +10.
func (r *TransactionRepo) Record(t *domain.Transaction) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := applyTransaction(tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

// applyTransaction writes the ledger entry and its stock effect on an
// open transaction, so callers can bundle it with other writes that
// must commit or roll back together (request fulfillment does).
func applyTransaction(tx *sqlx.Tx, t *domain.Transaction) error {
	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM items WHERE id = ?`, t.ItemID); err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFoundf("item not found")
	}

	if _, err := tx.Exec(`
	  INSERT INTO transactions(id, type, item_id, quantity, user_id, staff_id,
	                           supplier, invoice_no, purpose, notes, location_id)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?)
	`, t.ID, t.Type, t.ItemID, t.Quantity, nullable(t.UserID), nullable(t.StaffID),
		t.Supplier, t.InvoiceNo, t.Purpose, t.Notes, nullable(t.LocationID)); err != nil {
		return err
	}

	switch t.Type {
	case domain.TxInbound:
		if _, err := tx.Exec(`
		  UPDATE items SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
		`, t.Quantity, t.ItemID); err != nil {
			return err
		}
	case domain.TxOutbound:
		res, err := tx.Exec(`
		  UPDATE items SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND stock >= ?
		`, t.Quantity, t.ItemID, t.Quantity)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.Validationf("insufficient stock")
		}
	case domain.TxAdjustment:
		// Recorded without a stock effect; reconciliation happens through
		// the stock-count workflow.
	}

	return nil
}

const txCols = `
  t.id, t.type, t.item_id, t.quantity,
  COALESCE(t.user_id,'') AS user_id, COALESCE(t.staff_id,'') AS staff_id,
  COALESCE(t.supplier,'') AS supplier, COALESCE(t.invoice_no,'') AS invoice_no,
  COALESCE(t.purpose,'') AS purpose, COALESCE(t.notes,'') AS notes,
  COALESCE(t.location_id,'') AS location_id, t.created_at`

func (r *TransactionRepo) Get(id string) (domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.Get(&t, `
	  SELECT `+txCols+`, i.name AS item_name
	  FROM transactions t JOIN items i ON i.id = t.item_id
	  WHERE t.id = ?
	`, id)
	return t, err
}

// List returns ledger entries newest first, optionally filtered by item.
func (r *TransactionRepo) List(itemID string, limit, offset int) ([]domain.Transaction, error) {
	where := `1=1`
	args := []any{}
	if itemID != "" {
		where += ` AND t.item_id = ?`
		args = append(args, itemID)
	}
	args = append(args, limit, offset)

	var out []domain.Transaction
	err := r.db.Select(&out, `
	  SELECT `+txCols+`, i.name AS item_name
	  FROM transactions t JOIN items i ON i.id = t.item_id
	  WHERE `+where+`
	  ORDER BY t.created_at DESC, t.id
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

// nullable maps an empty string to NULL for optional FK columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
