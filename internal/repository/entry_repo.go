package repository

import (
	"context"
	"time"

	"almox/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryRow is an entries-history record flattened with the supplier name,
// shaped for listing and the spreadsheet export.
type EntryRow struct {
	ID           int64
	ReceivedAt   time.Time
	PONumber     int64
	SupplierCNPJ string
	SupplierName *string
	ProductCode  string
	Description  string
	Unit         string
	Qty          decimal.Decimal
	UnitCost     decimal.Decimal
	LineTotal    decimal.Decimal
}

type EntryRepository interface {
	CreateTx(tx *gorm.DB, e *model.EntryHistory) error
	ListWithSupplier(ctx context.Context) ([]EntryRow, error)
}

type entryRepo struct{ db *gorm.DB }

func NewEntryRepository(db *gorm.DB) EntryRepository { return &entryRepo{db: db} }

func (r *entryRepo) CreateTx(tx *gorm.DB, e *model.EntryHistory) error {
	return tx.Create(e).Error
}

func (r *entryRepo) ListWithSupplier(ctx context.Context) ([]EntryRow, error) {
	var rows []EntryRow
	err := r.db.WithContext(ctx).
		Table("entries_history AS eh").
		Select(`eh.id, eh.received_at, eh.po_number, eh.supplier_cnpj,
			s.name AS supplier_name,
			eh.product_code, eh.description, eh.unit,
			eh.qty, eh.unit_cost, eh.line_total`).
		Joins("LEFT JOIN suppliers s ON s.cnpj = eh.supplier_cnpj").
		Order("eh.received_at DESC").
		Scan(&rows).Error
	return rows, err
}
