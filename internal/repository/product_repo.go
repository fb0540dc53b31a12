package repository

import (
	"context"

	"almox/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	// Update writes non-stock attributes only. products.stock is owned by the
	// stock ledger and is never part of this statement.
	Update(ctx context.Context, p *model.Product) error

	// Used inside transactions — callers must pass the live tx instance.
	FindByCodeForUpdateTx(tx *gorm.DB, code string) (*model.Product, error)
	UpdateStockTx(tx *gorm.DB, code string, newStock decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("code ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("code = ?", p.Code).
		Select("category", "subcategory", "description", "unit").
		Updates(map[string]interface{}{
			"category":    p.Category,
			"subcategory": p.Subcategory,
			"description": p.Description,
			"unit":        p.Unit,
		}).Error
}

// FindByCodeForUpdateTx takes a row-level write lock so concurrent stock
// mutations on the same product serialize at transaction start.
func (r *productRepo) FindByCodeForUpdateTx(tx *gorm.DB, code string) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, code string, newStock decimal.Decimal) error {
	return tx.Model(&model.Product{}).Where("code = ?", code).
		Update("stock", newStock).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
