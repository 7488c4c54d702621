package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Inventory is the on-hand quantity of one variant at one store.
type Inventory struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	VariantID    uuid.UUID `json:"variantId" gorm:"column:variant_id;type:char(36);not null;uniqueIndex:ux_inventory_variant_store,priority:1"`
	StoreID      uuid.UUID `json:"storeId" gorm:"column:store_id;type:char(36);not null;uniqueIndex:ux_inventory_variant_store,priority:2"`
	Quantity     int       `json:"quantity" gorm:"not null;default:0"`
	MinThreshold int       `json:"min_threshold" gorm:"column:min_threshold;not null;default:0"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}

func (Inventory) TableName() string { return "inventory" }

// IsLow reports whether the remaining quantity has reached the reorder threshold.
func (i Inventory) IsLow() bool {
	return i.Quantity <= i.MinThreshold
}

// InsufficientStockError is returned when a store cannot cover the requested quantity.
type InsufficientStockError struct {
	VariantID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %s: available %d, needed %d",
		e.VariantID, e.Available, e.Requested)
}
