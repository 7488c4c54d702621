package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	InsertItems(ctx context.Context, db *gorm.DB, items []OrderItem) error
	InsertAppliedCharges(ctx context.Context, db *gorm.DB, charges []OrderAppliedCharge) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Order, error)
}
