package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListStores(ctx context.Context, db *gorm.DB) ([]Store, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)
	ListActiveProducts(ctx context.Context, db *gorm.DB) ([]Product, error)
	ListCharges(ctx context.Context, db *gorm.DB) ([]Charge, error)

	FindStore(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Store, error)
	FindVariants(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]ProductVariant, error)
	FindCharges(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]Charge, error)
}
