package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exit is a stock withdrawal to a destination (sector, client, job site).
// Immutable after creation — there is no edit or delete operation.
type Exit struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ExitCode    string `gorm:"uniqueIndex;not null"`
	Destination string `gorm:"not null"`
	CreatedBy   *int64
	CreatedAt   time.Time
	Notes       *string

	Items []ExitItem `gorm:"foreignKey:ExitID"`
}

func (Exit) TableName() string { return "exits" }

// ExitItem snapshots the product description/unit at withdrawal time.
// UnitCost defaults to zero when the request omits it, so LineTotal is always
// a concrete value.
type ExitItem struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ExitID      int64  `gorm:"not null;index"`
	ProductCode string `gorm:"not null"`
	Description string
	Unit        string
	Qty         decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

func (ExitItem) TableName() string { return "exit_items" }

// ExitHistory is a write-once audit row per exit line item. It is never read
// back into business logic.
type ExitHistory struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ExitID      int64  `gorm:"not null;index"`
	ProductCode string `gorm:"not null"`
	Qty         decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	ChangedBy   *int64
	Action      string `gorm:"not null"`
	CreatedAt   time.Time
}

func (ExitHistory) TableName() string { return "exits_history" }
