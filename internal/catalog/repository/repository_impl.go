package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/pos/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListStores(ctx context.Context, db *gorm.DB) ([]domain.Store, error) {
	var items []domain.Store
	err := db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var items []domain.Category
	err := db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListActiveProducts(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).
		Preload("Category").
		Preload("Variants", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("name ASC").Order("id ASC")
		}).
		Where("is_active = ?", true).
		Order("name ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListCharges(ctx context.Context, db *gorm.DB) ([]domain.Charge, error) {
	var items []domain.Charge
	err := db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindStore(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Store, error) {
	var items []domain.Store
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (r *repo) FindVariants(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]domain.ProductVariant, error) {
	out := make(map[uuid.UUID]domain.ProductVariant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []domain.ProductVariant
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}

func (r *repo) FindCharges(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]domain.Charge, error) {
	out := make(map[uuid.UUID]domain.Charge, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []domain.Charge
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}
