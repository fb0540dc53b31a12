package service

import (
	"context"
	"errors"

	"almox/internal/apierror"
	"almox/internal/model"
	"almox/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockChange reports a single applied stock delta. Previous/new values feed
// the callers' audit-record construction; Product carries the description and
// unit snapshot so callers do not need a second read.
type StockChange struct {
	Product       *model.Product
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
}

// StockLedger is the sole writer of products.stock. Apply runs inside the
// CALLER's active transaction and never opens or commits one of its own, so
// callers can batch multiple line items atomically.
type StockLedger interface {
	Apply(tx *gorm.DB, productCode string, delta decimal.Decimal) (*StockChange, error)
}

type stockLedger struct {
	products repository.ProductRepository
}

func NewStockLedger(products repository.ProductRepository) StockLedger {
	return &stockLedger{products: products}
}

func (l *stockLedger) Apply(tx *gorm.DB, productCode string, delta decimal.Decimal) (*StockChange, error) {
	if delta.IsZero() {
		return nil, apierror.Errorf(apierror.InvalidInput,
			"quantity for product %s must be greater than zero", productCode)
	}

	// Lock the row up-front: the stock read below must not go stale before
	// the write lands.
	p, err := l.products.FindByCodeForUpdateTx(tx, productCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Errorf(apierror.NotFound, "product %s not found", productCode)
		}
		return nil, err
	}

	newStock := p.Stock.Add(delta)
	if newStock.IsNegative() {
		return nil, apierror.Errorf(apierror.InsufficientStock,
			"insufficient stock for product %s: available %s, requested %s",
			productCode, p.Stock.String(), delta.Neg().String())
	}

	if err := l.products.UpdateStockTx(tx, productCode, newStock); err != nil {
		return nil, err
	}

	prev := p.Stock
	p.Stock = newStock
	return &StockChange{Product: p, PreviousStock: prev, NewStock: newStock}, nil
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with in-memory stubs).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
