package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
}

type CreateRequest struct {
	StoreID        string           `json:"storeId" validate:"required,uuid"`
	CustomerName   *string          `json:"customer_name" validate:"omitempty,max=255"`
	CustomerPhone  *string          `json:"customer_phone" validate:"omitempty,max=32"`
	AggregatorID   *string          `json:"aggregator_id" validate:"omitempty,max=128"`
	Notes          *string          `json:"notes" validate:"omitempty,max=2000"`
	PaymentMethod  PaymentMethod    `json:"payment_method" validate:"required,payment_method"`
	AmountReceived *decimal.Decimal `json:"amount_received" validate:"omitempty,gte=0,money"`
	Metadata       map[string]any   `json:"metadata"`

	Items          []CreateItem   `json:"items" validate:"required,min=1,dive"`
	AppliedCharges []CreateCharge `json:"applied_charges" validate:"omitempty,dive"`
}

type CreateItem struct {
	VariantID string           `json:"variantId" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"gte=1"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"required,gte=0,money"`
}

type CreateCharge struct {
	ChargeID      string           `json:"chargeId" validate:"required,uuid"`
	AmountCharged *decimal.Decimal `json:"amount_charged" validate:"required,gte=0,money"`
}
