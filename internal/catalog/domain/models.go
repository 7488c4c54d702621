package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Money renders as a JSON number for the storefront.
	decimal.MarshalJSONWithoutQuotes = true
}

// TrackingMode controls whether a variant's stock is counted per store.
type TrackingMode string

const (
	TrackingTracked     TrackingMode = "Tracked"
	TrackingUntracked   TrackingMode = "Untracked"
	TrackingMadeToOrder TrackingMode = "MadeToOrder"
)

// Valid reports whether m is a known tracking mode.
func (m TrackingMode) Valid() bool {
	switch m {
	case TrackingTracked, TrackingUntracked, TrackingMadeToOrder:
		return true
	default:
		return false
	}
}

// Reserves reports whether orders for a variant in this mode consume inventory.
func (m TrackingMode) Reserves() bool {
	switch m {
	case TrackingTracked:
		return true
	case TrackingUntracked, TrackingMadeToOrder:
		return false
	default:
		return true
	}
}

type Store struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Address     *string   `json:"address" gorm:"type:text"`
	PhoneNumber *string   `json:"phone_number" gorm:"column:phone_number;type:varchar(32)"`
	GSTIN       *string   `json:"gstin" gorm:"column:gstin;type:varchar(32)"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}

func (Store) TableName() string { return "stores" }

type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug      string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID          uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string           `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug        string           `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description *string          `json:"description" gorm:"type:text"`
	ImageURL    *string          `json:"image_url" gorm:"column:image_url;type:text"`
	IsActive    bool             `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CategoryID  uuid.UUID        `json:"categoryId" gorm:"column:category_id;type:char(36);not null;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time        `json:"updated_at" gorm:"not null"`
	Category    *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

type ProductVariant struct {
	ID                uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	ProductID         uuid.UUID       `json:"productId" gorm:"column:product_id;type:char(36);not null;index"`
	Name              string          `json:"name" gorm:"type:varchar(255);not null"`
	Price             decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	SKU               *string         `json:"sku" gorm:"column:sku;type:varchar(64);uniqueIndex"`
	InventoryTracking TrackingMode    `json:"inventory_tracking" gorm:"column:inventory_tracking;type:varchar(16);not null;default:Tracked"`
	CreatedAt         time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"not null"`
	Product           *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (ProductVariant) TableName() string { return "product_variants" }

type Charge struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	IsTaxable bool            `json:"is_taxable" gorm:"column:is_taxable;not null;default:false"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null"`
}

func (Charge) TableName() string { return "charges" }
