package domain

import "github.com/shopspring/decimal"

// Item types.
const (
	ItemTypeAsset      = "asset"
	ItemTypeConsumable = "consumable"
)

// Derived stock statuses (computed on read, never stored).
const (
	StatusOutOfStock = "out_of_stock"
	StatusLow        = "low"
	StatusAvailable  = "available"
)

type Item struct {
	ID         string          `db:"id" json:"id"`
	SKU        string          `db:"sku" json:"sku"`
	Name       string          `db:"name" json:"name"`
	CategoryID string          `db:"category_id" json:"category_id"`
	LocationID string          `db:"location_id" json:"location_id"`
	Type       string          `db:"type" json:"type"` // asset | consumable
	Stock      int             `db:"stock" json:"stock"`
	MinStock   int             `db:"min_stock" json:"min_stock"`
	Unit       string          `db:"unit" json:"unit,omitempty"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Supplier   string          `db:"supplier" json:"supplier,omitempty"`
	SpecJSON   string          `db:"spec_json" json:"spec,omitempty"`
	ImagesJSON string          `db:"images_json" json:"images,omitempty"`
	QRPayload  string          `db:"qr_payload" json:"qr_payload,omitempty"`
	CreatedAt  string          `db:"created_at" json:"created_at"`
	UpdatedAt  string          `db:"updated_at" json:"updated_at,omitempty"`

	// Derived on read from Stock and MinStock.
	Status string `db:"-" json:"status"`
}

// StockStatus derives availability from the current stock level:
// out_of_stock when stock <= 0, low when 0 < stock <= minStock,
// available when stock > minStock.
func StockStatus(stock, minStock int) string {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= minStock:
		return StatusLow
	default:
		return StatusAvailable
	}
}

// Derive fills the computed Status field.
func (it *Item) Derive() { it.Status = StockStatus(it.Stock, it.MinStock) }

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	Icon        string `db:"icon" json:"icon,omitempty"`
	Color       string `db:"color" json:"color,omitempty"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at,omitempty"`

	// Aggregated on read: number of items referencing this category.
	ItemCount int `db:"item_count" json:"item_count"`
}

// Location types, broadest first.
const (
	LocBuilding  = "building"
	LocWarehouse = "warehouse"
	LocRoom      = "room"
	LocRack      = "rack"
	LocShelf     = "shelf"
)

// LocationTypes lists the allowed values for validation.
var LocationTypes = []string{LocBuilding, LocWarehouse, LocRoom, LocRack, LocShelf}

type Location struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Type        string `db:"type" json:"type"`
	ParentID    string `db:"parent_id" json:"parent_id,omitempty"`
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description,omitempty"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at,omitempty"`

	// Aggregated on read.
	ItemCount int        `db:"item_count" json:"item_count"`
	Children  []Location `db:"-" json:"children,omitempty"`
}

// Transaction types.
const (
	TxInbound    = "inbound"
	TxOutbound   = "outbound"
	TxAdjustment = "adjustment"
)

// Transaction is a ledger entry. Immutable once recorded.
type Transaction struct {
	ID         string `db:"id" json:"id"`
	Type       string `db:"type" json:"type"`
	ItemID     string `db:"item_id" json:"item_id"`
	Quantity   int    `db:"quantity" json:"quantity"`
	UserID     string `db:"user_id" json:"user_id,omitempty"`
	StaffID    string `db:"staff_id" json:"staff_id,omitempty"`
	Supplier   string `db:"supplier" json:"supplier,omitempty"`
	InvoiceNo  string `db:"invoice_no" json:"invoice_no,omitempty"`
	Purpose    string `db:"purpose" json:"purpose,omitempty"`
	Notes      string `db:"notes" json:"notes,omitempty"`
	LocationID string `db:"location_id" json:"location_id,omitempty"`
	CreatedAt  string `db:"created_at" json:"created_at"`

	// Joined field (not always populated).
	ItemName string `db:"item_name" json:"item_name,omitempty"`
}

// Request statuses.
const (
	ReqPending   = "pending"
	ReqApproved  = "approved"
	ReqRejected  = "rejected"
	ReqCompleted = "completed"
)

type Request struct {
	ID           string `db:"id" json:"id"`
	Code         string `db:"code" json:"code"`
	RequesterID  string `db:"requester_id" json:"requester_id"`
	ItemID       string `db:"item_id" json:"item_id"`
	Quantity     int    `db:"quantity" json:"quantity"`
	Reason       string `db:"reason" json:"reason"`
	Status       string `db:"status" json:"status"`
	ApprovedBy   string `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt   string `db:"approved_at" json:"approved_at,omitempty"`
	RejectedBy   string `db:"rejected_by" json:"rejected_by,omitempty"`
	RejectedAt   string `db:"rejected_at" json:"rejected_at,omitempty"`
	RejectReason string `db:"reject_reason" json:"reject_reason,omitempty"`
	// Ledger entry recorded on fulfillment; empty for manual completion.
	FulfilledTxID string `db:"fulfilled_tx_id" json:"fulfilled_tx_id,omitempty"`
	CreatedAt     string `db:"created_at" json:"created_at"`
	UpdatedAt     string `db:"updated_at" json:"updated_at,omitempty"`

	// Joined fields (not always populated).
	ItemName      string `db:"item_name" json:"item_name,omitempty"`
	RequesterName string `db:"requester_name" json:"requester_name,omitempty"`
}
