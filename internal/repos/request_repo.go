package repos

import (
	"database/sql"

	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type RequestRepo struct{ db *sqlx.DB }

func NewRequestRepo(db *sqlx.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestCols = `
  r.id, r.code, r.requester_id, r.item_id, r.quantity, r.reason, r.status,
  COALESCE(r.approved_by,'') AS approved_by, COALESCE(r.approved_at,'') AS approved_at,
  COALESCE(r.rejected_by,'') AS rejected_by, COALESCE(r.rejected_at,'') AS rejected_at,
  COALESCE(r.reject_reason,'') AS reject_reason,
  COALESCE(r.fulfilled_tx_id,'') AS fulfilled_tx_id,
  r.created_at, COALESCE(r.updated_at,'') AS updated_at`

func (r *RequestRepo) Insert(req *domain.Request) error {
	_, err := r.db.Exec(`
	  INSERT INTO requests(id, code, requester_id, item_id, quantity, reason)
	  VALUES(?,?,?,?,?,?)
	`, req.ID, req.Code, req.RequesterID, req.ItemID, req.Quantity, req.Reason)
	return err
}

func (r *RequestRepo) Get(id string) (domain.Request, error) {
	var req domain.Request
	err := r.db.Get(&req, `
	  SELECT `+requestCols+`, i.name AS item_name, u.name AS requester_name
	  FROM requests r
	  JOIN items i ON i.id = r.item_id
	  JOIN users u ON u.id = r.requester_id
	  WHERE r.id = ?
	`, id)
	return req, err
}

// List returns requests newest first. requesterID narrows the list to
// one requester (employees only see their own); status filters by state.
func (r *RequestRepo) List(requesterID, status string, limit, offset int) ([]domain.Request, error) {
	where := `1=1`
	args := []any{}
	if requesterID != "" {
		where += ` AND r.requester_id = ?`
		args = append(args, requesterID)
	}
	if status != "" {
		where += ` AND r.status = ?`
		args = append(args, status)
	}
	args = append(args, limit, offset)

	var out []domain.Request
	err := r.db.Select(&out, `
	  SELECT `+requestCols+`, i.name AS item_name, u.name AS requester_name
	  FROM requests r
	  JOIN items i ON i.id = r.item_id
	  JOIN users u ON u.id = r.requester_id
	  WHERE `+where+`
	  ORDER BY r.created_at DESC, r.id
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

// Fulfill completes an approved request and records its outbound
// ledger entry in one database transaction. The guarded claim runs
// first: of N concurrent callers only one moves the request out of
// approved, and only that one writes the ledger entry. Losers get
// sql.ErrNoRows; a failed stock decrement rolls the claim back too.
func (r *RequestRepo) Fulfill(id string, t *domain.Transaction) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE requests SET status = ?, fulfilled_tx_id = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = ?
	`, domain.ReqCompleted, t.ID, id, domain.ReqApproved)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if err := applyTransaction(tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

// Transition moves a request out of fromStatus, writing the fields the
// target state carries. The guarded WHERE makes the state machine safe
// under concurrent approvals: only one caller wins, the other sees
// sql.ErrNoRows.
func (r *RequestRepo) Transition(id, fromStatus string, req *domain.Request) error {
	res, err := r.db.Exec(`
	  UPDATE requests SET
	    status = ?,
	    approved_by = COALESCE(?, approved_by), approved_at = COALESCE(?, approved_at),
	    rejected_by = ?, rejected_at = ?, reject_reason = ?,
	    fulfilled_tx_id = COALESCE(?, fulfilled_tx_id),
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = ?
	`, req.Status,
		nullable(req.ApprovedBy), nullable(req.ApprovedAt),
		nullable(req.RejectedBy), nullable(req.RejectedAt), nullable(req.RejectReason),
		nullable(req.FulfilledTxID),
		id, fromStatus)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
