package services

import (
	"stockroom/internal/apperr"
	"stockroom/internal/domain"
	"stockroom/internal/repos"

	"github.com/google/uuid"
)

// LedgerService records stock movements. Entries are append-only; the
// stock effect is applied in the same database transaction as the
// entry itself (see repos.TransactionRepo.Record).
type LedgerService struct {
	Tx *repos.TransactionRepo
}

func NewLedgerService(tx *repos.TransactionRepo) *LedgerService {
	return &LedgerService{Tx: tx}
}

type RecordInput struct {
	Type       string `json:"type"`
	ItemID     string `json:"item_id"`
	Quantity   int    `json:"quantity"`
	UserID     string `json:"user_id"`
	StaffID    string `json:"staff_id"`
	Supplier   string `json:"supplier"`
	InvoiceNo  string `json:"invoice_no"`
	Purpose    string `json:"purpose"`
	Notes      string `json:"notes"`
	LocationID string `json:"location_id"`
}

// Record validates and persists a ledger entry. inbound adds stock,
// outbound subtracts (rejected if it would go negative), adjustment is
// recorded without a stock effect.
func (s *LedgerService) Record(in RecordInput) (*domain.Transaction, error) {
	switch in.Type {
	case domain.TxInbound, domain.TxOutbound, domain.TxAdjustment:
	default:
		return nil, apperr.Validationf("type must be inbound, outbound or adjustment")
	}
	if in.Quantity < 1 {
		return nil, apperr.Validationf("quantity must be at least 1")
	}
	if in.ItemID == "" {
		return nil, apperr.Validationf("item is required")
	}

	t := &domain.Transaction{
		ID:         uuid.NewString(),
		Type:       in.Type,
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		UserID:     in.UserID,
		StaffID:    in.StaffID,
		Supplier:   in.Supplier,
		InvoiceNo:  in.InvoiceNo,
		Purpose:    in.Purpose,
		Notes:      in.Notes,
		LocationID: in.LocationID,
	}
	if err := s.Tx.Record(t); err != nil {
		return nil, err
	}

	rec, err := s.Tx.Get(t.ID)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *LedgerService) List(itemID string, limit, offset int) ([]domain.Transaction, error) {
	return s.Tx.List(itemID, limit, offset)
}
