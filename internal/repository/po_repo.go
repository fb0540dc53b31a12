package repository

import (
	"context"
	"time"

	"almox/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PORepository interface {
	CreateTx(tx *gorm.DB, po *model.PurchaseOrder) error
	SetCodeTx(tx *gorm.DB, poNumber int64, code string) error
	CreateItemTx(tx *gorm.DB, item *model.POItem) error

	FindByNumber(ctx context.Context, poNumber int64) (*model.PurchaseOrder, error)
	// FindForUpdateTx locks the PO header row for the duration of the caller's
	// transaction. Two concurrent receives of the same PO serialize here.
	FindForUpdateTx(tx *gorm.DB, poNumber int64) (*model.PurchaseOrder, error)
	ItemsTx(tx *gorm.DB, poNumber int64) ([]model.POItem, error)
	List(ctx context.Context) ([]model.PurchaseOrder, error)

	UpdateStatusTx(tx *gorm.DB, poNumber int64, status string) error
	MarkReceivedTx(tx *gorm.DB, poNumber int64, at time.Time) error
	CreateReceiptTx(tx *gorm.DB, rec *model.POReceipt) error
	CreateReceiptItemTx(tx *gorm.DB, item *model.POReceiptItem) error

	DB() *gorm.DB
}

type poRepo struct{ db *gorm.DB }

func NewPORepository(db *gorm.DB) PORepository { return &poRepo{db: db} }

func (r *poRepo) CreateTx(tx *gorm.DB, po *model.PurchaseOrder) error {
	return tx.Omit("Items").Create(po).Error
}

func (r *poRepo) SetCodeTx(tx *gorm.DB, poNumber int64, code string) error {
	return tx.Model(&model.PurchaseOrder{}).Where("po_number = ?", poNumber).
		Update("po_code", code).Error
}

func (r *poRepo) CreateItemTx(tx *gorm.DB, item *model.POItem) error {
	return tx.Create(item).Error
}

func (r *poRepo) FindByNumber(ctx context.Context, poNumber int64) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).Preload("Items").
		Where("po_number = ?", poNumber).First(&po).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *poRepo) FindForUpdateTx(tx *gorm.DB, poNumber int64) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("po_number = ?", poNumber).First(&po).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *poRepo) ItemsTx(tx *gorm.DB, poNumber int64) ([]model.POItem, error) {
	var items []model.POItem
	err := tx.Where("po_number = ?", poNumber).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *poRepo) List(ctx context.Context) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&pos).Error
	return pos, err
}

func (r *poRepo) UpdateStatusTx(tx *gorm.DB, poNumber int64, status string) error {
	return tx.Model(&model.PurchaseOrder{}).Where("po_number = ?", poNumber).
		Update("status", status).Error
}

func (r *poRepo) MarkReceivedTx(tx *gorm.DB, poNumber int64, at time.Time) error {
	return tx.Model(&model.PurchaseOrder{}).Where("po_number = ?", poNumber).
		Updates(map[string]interface{}{"status": model.POStatusReceived, "received_at": at}).Error
}

func (r *poRepo) CreateReceiptTx(tx *gorm.DB, rec *model.POReceipt) error {
	return tx.Omit("Items").Create(rec).Error
}

func (r *poRepo) CreateReceiptItemTx(tx *gorm.DB, item *model.POReceiptItem) error {
	return tx.Create(item).Error
}

func (r *poRepo) DB() *gorm.DB { return r.db }
