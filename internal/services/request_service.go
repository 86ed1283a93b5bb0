package services

import (
	"database/sql"
	"strings"
	"time"

	"stockroom/internal/apperr"
	"stockroom/internal/domain"
	"stockroom/internal/repos"

	"github.com/google/uuid"
)

// RequestService drives the employee stock-request state machine:
// pending -> approved | rejected, approved -> completed. Terminal
// states never re-enter pending.
type RequestService struct {
	Requests *repos.RequestRepo
	Items    *repos.ItemRepo
	Seq      *repos.SequenceRepo

	// Now is swappable so year-scoped request codes are testable.
	Now func() time.Time
}

func NewRequestService(reqs *repos.RequestRepo, items *repos.ItemRepo, seq *repos.SequenceRepo) *RequestService {
	return &RequestService{Requests: reqs, Items: items, Seq: seq, Now: time.Now}
}

func (s *RequestService) Create(requesterID, itemID string, quantity int, reason string) (*domain.Request, error) {
	var problems []string
	if itemID == "" {
		problems = append(problems, "item is required")
	}
	if quantity < 1 {
		problems = append(problems, "quantity must be at least 1")
	}
	if strings.TrimSpace(reason) == "" {
		problems = append(problems, "reason is required")
	}
	if len(problems) > 0 {
		return nil, apperr.Validationf("%s", strings.Join(problems, "; "))
	}

	ok, err := s.Items.Exists(itemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFoundf("item not found")
	}

	now := s.Now()
	n, err := s.Seq.Next(requestScope(now))
	if err != nil {
		return nil, err
	}

	req := &domain.Request{
		ID:          uuid.NewString(),
		Code:        formatRequestCode(now, n),
		RequesterID: requesterID,
		ItemID:      itemID,
		Quantity:    quantity,
		Reason:      strings.TrimSpace(reason),
	}
	if err := s.Requests.Insert(req); err != nil {
		return nil, apperr.FromUnique(err)
	}
	return s.Get(req.ID)
}

func (s *RequestService) Get(id string) (*domain.Request, error) {
	req, err := s.Requests.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("request not found")
		}
		return nil, err
	}
	return &req, nil
}

func (s *RequestService) List(requesterID, status string, limit, offset int) ([]domain.Request, error) {
	return s.Requests.List(requesterID, status, limit, offset)
}

// Approve moves a pending request to approved. It records the approver
// but deliberately does not touch stock: the approval is a promise,
// fulfillment happens via Fulfill or a manual Complete.
func (s *RequestService) Approve(id, approverID string) (*domain.Request, error) {
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if cur.Status != domain.ReqPending {
		return nil, apperr.Validationf("cannot approve a %s request", cur.Status)
	}
	upd := &domain.Request{
		Status:     domain.ReqApproved,
		ApprovedBy: approverID,
		ApprovedAt: s.timestamp(),
	}
	if err := s.transition(id, domain.ReqPending, upd); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Reject moves a pending request to rejected. A reason is mandatory.
func (s *RequestService) Reject(id, rejecterID, reason string) (*domain.Request, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validationf("reject reason is required")
	}
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if cur.Status != domain.ReqPending {
		return nil, apperr.Validationf("cannot reject a %s request", cur.Status)
	}
	upd := &domain.Request{
		Status:       domain.ReqRejected,
		RejectedBy:   rejecterID,
		RejectedAt:   s.timestamp(),
		RejectReason: strings.TrimSpace(reason),
	}
	if err := s.transition(id, domain.ReqPending, upd); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Complete marks an approved request completed without a ledger link,
// for handovers reconciled outside the system.
func (s *RequestService) Complete(id string) (*domain.Request, error) {
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if cur.Status != domain.ReqApproved {
		return nil, apperr.Validationf("cannot complete a %s request", cur.Status)
	}
	if err := s.transition(id, domain.ReqApproved, &domain.Request{Status: domain.ReqCompleted}); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Fulfill executes an approved request: it records an outbound ledger
// entry for the requested quantity and marks the request completed,
// keeping a reference to the ledger entry. The claim and the ledger
// write commit together, so racing callers cannot each decrement
// stock: the repo claims the request before the entry is written.
func (s *RequestService) Fulfill(id, staffID string) (*domain.Request, error) {
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if cur.Status != domain.ReqApproved {
		return nil, apperr.Validationf("cannot fulfill a %s request", cur.Status)
	}

	tx := &domain.Transaction{
		ID:       uuid.NewString(),
		Type:     domain.TxOutbound,
		ItemID:   cur.ItemID,
		Quantity: cur.Quantity,
		UserID:   cur.RequesterID,
		StaffID:  staffID,
		Purpose:  "request " + cur.Code,
	}
	if err := s.Requests.Fulfill(id, tx); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.Validationf("request is no longer %s", domain.ReqApproved)
		}
		return nil, err
	}
	return s.Get(id)
}

// transition applies a guarded state change; losing a concurrent race
// surfaces as a transition error, not a silent overwrite.
func (s *RequestService) transition(id, from string, upd *domain.Request) error {
	if err := s.Requests.Transition(id, from, upd); err != nil {
		if err == sql.ErrNoRows {
			return apperr.Validationf("request is no longer %s", from)
		}
		return err
	}
	return nil
}

func (s *RequestService) timestamp() string {
	return s.Now().UTC().Format("2006-01-02 15:04:05")
}
