package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Reserve decrements stock only if enough is on hand and returns the updated row.
	// When the store cannot cover qty it returns *InsufficientStockError and changes nothing.
	Reserve(ctx context.Context, db *gorm.DB, storeID, variantID uuid.UUID, qty int, now time.Time) (*Inventory, error)
	Get(ctx context.Context, db *gorm.DB, variantID, storeID uuid.UUID) (*Inventory, error)
}
