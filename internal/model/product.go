package model

import "github.com/shopspring/decimal"

// Product is an inventory item identified by its immutable code.
// Stock is mutated exclusively through the stock ledger; the product CRUD
// update path never writes this column.
type Product struct {
	Code        string          `gorm:"primaryKey"`
	Category    string          `gorm:"not null"`
	Subcategory *string
	Description string          `gorm:"not null"`
	Unit        string          `gorm:"not null"`
	Stock       decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
}

func (Product) TableName() string { return "products" }
