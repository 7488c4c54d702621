package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/pos/internal/inventory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Reserve(ctx context.Context, db *gorm.DB, storeID, variantID uuid.UUID, qty int, now time.Time) (*domain.Inventory, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE inventory SET quantity = quantity - ?, updated_at = ?
		 WHERE variant_id = ? AND store_id = ? AND quantity >= ?`,
		qty,
		now,
		variantID,
		storeID,
		qty,
	)
	if res.Error != nil {
		return nil, res.Error
	}

	current, err := r.Get(ctx, db, variantID, storeID)
	if err != nil {
		return nil, err
	}

	if res.RowsAffected == 0 {
		available := 0
		if current != nil {
			available = current.Quantity
		}
		return nil, &domain.InsufficientStockError{
			VariantID: variantID,
			Available: available,
			Requested: qty,
		}
	}

	return current, nil
}

func (r *repo) Get(ctx context.Context, db *gorm.DB, variantID, storeID uuid.UUID) (*domain.Inventory, error) {
	var items []domain.Inventory
	err := db.WithContext(ctx).
		Where("variant_id = ? AND store_id = ?", variantID, storeID).
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
