package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PO status state machine: OPEN → APPROVED | CANCELLED; APPROVED → RECEIVED.
// RECEIVED and CANCELLED are terminal. RECEIVED is only reachable through the
// receipt processor, never through a bare status update.
const (
	POStatusOpen      = "OPEN"
	POStatusApproved  = "APPROVED"
	POStatusReceived  = "RECEIVED"
	POStatusCancelled = "CANCELLED"
)

// PurchaseOrder is a commitment to buy the listed items from a supplier.
// Supplier and buyer fields are denormalized snapshots taken at creation.
type PurchaseOrder struct {
	PONumber int64  `gorm:"column:po_number;primaryKey;autoIncrement"`
	POCode   string `gorm:"column:po_code;uniqueIndex"`

	SupplierCNPJ         string `gorm:"column:supplier_cnpj;not null"`
	SupplierName         *string
	SupplierAddress      *string
	SupplierNeighborhood *string
	SupplierCity         *string
	SupplierState        *string
	SupplierCEP          *string `gorm:"column:supplier_cep"`
	SupplierPix          *string
	SupplierContact      *string

	BuyerCNPJ         *string `gorm:"column:buyer_cnpj"`
	BuyerName         *string
	BuyerAddress      *string
	BuyerNeighborhood *string
	BuyerCity         *string
	BuyerState        *string
	BuyerCEP          *string `gorm:"column:buyer_cep"`
	BuyerPix          *string
	BuyerContact      *string

	CreatedAt  time.Time
	ReceivedAt *time.Time
	Status     string `gorm:"not null;default:'OPEN'"`
	Notes      *string

	Items []POItem `gorm:"foreignKey:PONumber;references:PONumber"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

// POItem is one line of a purchase order. LineTotal = Qty × UnitPrice,
// computed at insertion and stored, never recomputed on read.
type POItem struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	PONumber    int64  `gorm:"column:po_number;not null;index"`
	ItemCode    string `gorm:"not null"`
	Description string
	Unit        string
	Qty         decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (POItem) TableName() string { return "po_items" }

// POReceipt records the receipt of a purchase order. Created exactly once per
// PO at the RECEIVED transition; immutable afterward.
type POReceipt struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	PONumber     int64   `gorm:"column:po_number;not null;index"`
	SupplierCNPJ string  `gorm:"column:supplier_cnpj"`
	SupplierName *string
	BuyerCNPJ    *string `gorm:"column:buyer_cnpj"`
	BuyerName    *string
	TotalValue   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes        *string
	CreatedAt    time.Time

	Items []POReceiptItem `gorm:"foreignKey:POReceivedID"`
}

func (POReceipt) TableName() string { return "po_received" }

// POReceiptItem is a verbatim copy of a PO line item at receipt time.
type POReceiptItem struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	POReceivedID int64  `gorm:"column:po_received_id;not null;index"`
	ProductCode  string `gorm:"not null"`
	Description  string
	Unit         string
	Qty          decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (POReceiptItem) TableName() string { return "po_received_items" }

// EntryHistory is one append-only reporting row per received line item,
// denormalized so list/export never needs to walk the PO graph.
type EntryHistory struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	PONumber     int64  `gorm:"column:po_number;not null;index"`
	SupplierCNPJ string `gorm:"column:supplier_cnpj"`
	ProductCode  string `gorm:"not null;index"`
	Description  string
	Unit         string
	Qty          decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReceivedAt   time.Time       `gorm:"autoCreateTime"`
}

func (EntryHistory) TableName() string { return "entries_history" }
