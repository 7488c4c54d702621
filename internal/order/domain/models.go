package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalog "github.com/smallbiznis/pos/internal/catalog/domain"
	"gorm.io/datatypes"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentUPI    PaymentMethod = "UPI"
	PaymentSwiggy PaymentMethod = "Swiggy"
	PaymentZomato PaymentMethod = "Zomato"
	PaymentOther  PaymentMethod = "Other"
)

// PaymentMethods lists every accepted method in display order.
var PaymentMethods = []PaymentMethod{
	PaymentCash, PaymentCard, PaymentUPI, PaymentSwiggy, PaymentZomato, PaymentOther,
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentSwiggy, PaymentZomato, PaymentOther:
		return true
	default:
		return false
	}
}

// IsAggregator reports whether the order came through a delivery aggregator.
func (m PaymentMethod) IsAggregator() bool {
	return m == PaymentSwiggy || m == PaymentZomato
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

type OrderStatus string

const (
	OrderReceived       OrderStatus = "Received"
	OrderPreparing      OrderStatus = "Preparing"
	OrderReadyForPickup OrderStatus = "ReadyForPickup"
	OrderOutForDelivery OrderStatus = "OutForDelivery"
	OrderCompleted      OrderStatus = "Completed"
	OrderCancelled      OrderStatus = "Cancelled"
)

type Order struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	OrderNumber   string    `json:"order_number" gorm:"column:order_number;type:varchar(32);not null;uniqueIndex"`
	StoreID       uuid.UUID `json:"storeId" gorm:"column:store_id;type:char(36);not null;index"`
	CustomerName  *string   `json:"customer_name" gorm:"column:customer_name;type:varchar(255)"`
	CustomerPhone *string   `json:"customer_phone" gorm:"column:customer_phone;type:varchar(32)"`
	AggregatorID  *string   `json:"aggregator_id" gorm:"column:aggregator_id;type:varchar(128)"`

	Subtotal                       decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	AppliedChargesAmountTaxable    decimal.Decimal `json:"applied_charges_amount_taxable" gorm:"column:applied_charges_amount_taxable;type:numeric(12,2);not null"`
	AppliedChargesAmountNontaxable decimal.Decimal `json:"applied_charges_amount_nontaxable" gorm:"column:applied_charges_amount_nontaxable;type:numeric(12,2);not null"`
	DiscountAmount                 decimal.Decimal `json:"discount_amount" gorm:"column:discount_amount;type:numeric(12,2);not null"`
	TaxableAmount                  decimal.Decimal `json:"taxable_amount" gorm:"column:taxable_amount;type:numeric(12,2);not null"`
	CGSTAmount                     decimal.Decimal `json:"cgst_amount" gorm:"column:cgst_amount;type:numeric(12,2);not null"`
	SGSTAmount                     decimal.Decimal `json:"sgst_amount" gorm:"column:sgst_amount;type:numeric(12,2);not null"`
	TotalAmount                    decimal.Decimal `json:"total_amount" gorm:"column:total_amount;type:numeric(12,2);not null"`

	PaymentMethod  PaymentMethod       `json:"payment_method" gorm:"column:payment_method;type:varchar(16);not null"`
	AmountReceived decimal.NullDecimal `json:"amount_received" gorm:"column:amount_received;type:numeric(12,2)"`
	ChangeGiven    decimal.NullDecimal `json:"change_given" gorm:"column:change_given;type:numeric(12,2)"`
	PaymentStatus  PaymentStatus       `json:"payment_status" gorm:"column:payment_status;type:varchar(16);not null"`
	OrderStatus    OrderStatus         `json:"order_status" gorm:"column:order_status;type:varchar(16);not null"`
	Notes          *string             `json:"notes" gorm:"type:text"`
	Metadata       datatypes.JSONMap   `json:"metadata,omitempty"`
	CreatedAt      time.Time           `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time           `json:"updated_at" gorm:"not null"`

	Store          *catalog.Store       `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Items          []OrderItem          `json:"items" gorm:"foreignKey:OrderID"`
	AppliedCharges []OrderAppliedCharge `json:"applied_charges" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID         uuid.UUID               `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID    uuid.UUID               `json:"orderId" gorm:"column:order_id;type:char(36);not null;index"`
	VariantID  uuid.UUID               `json:"variantId" gorm:"column:variant_id;type:char(36);not null;index"`
	LineNo     int                     `json:"-" gorm:"column:line_no;not null;default:0"`
	Quantity   int                     `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal         `json:"unit_price" gorm:"column:unit_price;type:numeric(12,2);not null"`
	TotalPrice decimal.Decimal         `json:"total_price" gorm:"column:total_price;type:numeric(12,2);not null"`
	Variant    *catalog.ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}

func (OrderItem) TableName() string { return "order_items" }

type OrderAppliedCharge struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID       uuid.UUID       `json:"orderId" gorm:"column:order_id;type:char(36);not null;index"`
	ChargeID      uuid.UUID       `json:"chargeId" gorm:"column:charge_id;type:char(36);not null;index"`
	LineNo        int             `json:"-" gorm:"column:line_no;not null;default:0"`
	AmountCharged decimal.Decimal `json:"amount_charged" gorm:"column:amount_charged;type:numeric(12,2);not null"`
	Charge        *catalog.Charge `json:"charge,omitempty" gorm:"foreignKey:ChargeID"`
}

func (OrderAppliedCharge) TableName() string { return "order_applied_charges" }
