package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/pos/internal/order/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).
		Omit(clause.Associations).
		Create(order).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&items).Error
}

func (r *repo) InsertAppliedCharges(ctx context.Context, db *gorm.DB, charges []domain.OrderAppliedCharge) error {
	if len(charges) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&charges).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).
		Preload("Store").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("line_no ASC")
		}).
		Preload("Items.Variant.Product").
		Preload("AppliedCharges", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("line_no ASC")
		}).
		Preload("AppliedCharges.Charge").
		Where("id = ?", id).
		Limit(1).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	order := &items[0]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	if order.AppliedCharges == nil {
		order.AppliedCharges = []domain.OrderAppliedCharge{}
	}
	return order, nil
}
