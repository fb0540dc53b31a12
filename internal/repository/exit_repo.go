package repository

import (
	"context"

	"almox/internal/dto"
	"almox/internal/model"

	"gorm.io/gorm"
)

type ExitRepository interface {
	CreateTx(tx *gorm.DB, e *model.Exit) error
	CreateItemTx(tx *gorm.DB, item *model.ExitItem) error
	CreateHistoryTx(tx *gorm.DB, h *model.ExitHistory) error
	FindByID(ctx context.Context, id int64) (*model.Exit, error)
	List(ctx context.Context, filter dto.ExitFilter) ([]model.Exit, int64, error)
	DB() *gorm.DB
}

type exitRepo struct{ db *gorm.DB }

func NewExitRepository(db *gorm.DB) ExitRepository { return &exitRepo{db: db} }

func (r *exitRepo) CreateTx(tx *gorm.DB, e *model.Exit) error {
	return tx.Create(e).Error
}

func (r *exitRepo) CreateItemTx(tx *gorm.DB, item *model.ExitItem) error {
	return tx.Create(item).Error
}

func (r *exitRepo) CreateHistoryTx(tx *gorm.DB, h *model.ExitHistory) error {
	return tx.Create(h).Error
}

func (r *exitRepo) FindByID(ctx context.Context, id int64) (*model.Exit, error) {
	var e model.Exit
	err := r.db.WithContext(ctx).Preload("Items").First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *exitRepo) List(ctx context.Context, filter dto.ExitFilter) ([]model.Exit, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Exit{})

	if filter.Destination != "" {
		q = q.Where("destination ILIKE ?", "%"+filter.Destination+"%")
	}
	if filter.DateFrom != "" {
		q = q.Where("DATE(created_at) >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("DATE(created_at) <= ?", filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.Sort == "asc" {
		order = "created_at ASC"
	}
	offset := (filter.Page - 1) * filter.Limit

	var exits []model.Exit
	err := q.Order(order).Offset(offset).Limit(filter.Limit).Find(&exits).Error
	return exits, total, err
}

func (r *exitRepo) DB() *gorm.DB { return r.db }
