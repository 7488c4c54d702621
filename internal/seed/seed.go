package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/pos/internal/catalog/domain"
	inventorydomain "github.com/smallbiznis/pos/internal/inventory/domain"
	"gorm.io/gorm"
)

type storeSeed struct {
	Name    string
	Address string
	Phone   string
}

type variantSeed struct {
	Name  string
	Price int64
	SKU   string
}

type productSeed struct {
	Name        string
	Description string
	Category    string
	Tracking    catalogdomain.TrackingMode
	Variants    []variantSeed
}

type chargeSeed struct {
	Name    string
	Amount  int64
	Taxable bool
}

type inventorySeed struct {
	Store        string
	SKU          string
	Quantity     int
	MinThreshold int
}

var (
	stores = []storeSeed{
		{Name: "Kompally Branch", Address: "123 Kompally Main Rd, Hyderabad", Phone: "9876543210"},
		{Name: "AS Rao Nagar Branch", Address: "456 AS Rao Nagar Circle, Hyderabad", Phone: "9876543211"},
		{Name: "Kondapur Branch", Address: "789 Kondapur High Street, Hyderabad", Phone: "9876543212"},
	}

	categories = []string{"Kunafa", "Baklava", "Beverages"}

	products = []productSeed{
		{
			Name:        "Classic Cheese Kunafa",
			Description: "The timeless classic, crispy and cheesy.",
			Category:    "Kunafa",
			Tracking:    catalogdomain.TrackingMadeToOrder,
			Variants: []variantSeed{
				{Name: "Regular", Price: 250, SKU: "KUN-CLS-REG"},
				{Name: "Large", Price: 450, SKU: "KUN-CLS-LRG"},
			},
		},
		{
			Name:        "Nutella Kunafa",
			Description: "A decadent twist with rich Nutella.",
			Category:    "Kunafa",
			Tracking:    catalogdomain.TrackingMadeToOrder,
			Variants: []variantSeed{
				{Name: "Regular", Price: 300, SKU: "KUN-NUT-REG"},
			},
		},
		{
			Name:        "Assorted Baklava Box",
			Description: "A delightful mix of our finest baklavas.",
			Category:    "Baklava",
			Tracking:    catalogdomain.TrackingTracked,
			Variants: []variantSeed{
				{Name: "250g Box", Price: 400, SKU: "BAK-MIX-250G"},
				{Name: "500g Box", Price: 750, SKU: "BAK-MIX-500G"},
			},
		},
	}

	charges = []chargeSeed{
		{Name: "Packaging Charge", Amount: 20, Taxable: false},
		{Name: "Delivery Fee (Local)", Amount: 50, Taxable: false},
	}

	inventory = []inventorySeed{
		{Store: "Kompally Branch", SKU: "BAK-MIX-250G", Quantity: 50, MinThreshold: 10},
	}
)

// EnsureCatalog seeds the demo branches, menu, charges and opening stock.
// Existing rows are matched by their unique name or SKU and left unchanged,
// except seeded inventory whose quantity is reset to the opening level.
func EnsureCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		storeIDs := map[string]uuid.UUID{}
		for _, s := range stores {
			store, err := ensureStoreTx(ctx, tx, s, now)
			if err != nil {
				return err
			}
			storeIDs[s.Name] = store.ID
		}

		categoryIDs := map[string]uuid.UUID{}
		for _, name := range categories {
			category, err := ensureCategoryTx(ctx, tx, name, now)
			if err != nil {
				return err
			}
			categoryIDs[name] = category.ID
		}

		variantIDs := map[string]uuid.UUID{}
		for _, p := range products {
			product, err := ensureProductTx(ctx, tx, p, categoryIDs[p.Category], now)
			if err != nil {
				return err
			}
			for _, v := range p.Variants {
				variant, err := ensureVariantTx(ctx, tx, product.ID, v, p.Tracking, now)
				if err != nil {
					return err
				}
				variantIDs[v.SKU] = variant.ID
			}
		}

		for _, c := range charges {
			if err := ensureChargeTx(ctx, tx, c, now); err != nil {
				return err
			}
		}

		for _, inv := range inventory {
			if err := ensureInventoryTx(ctx, tx, storeIDs[inv.Store], variantIDs[inv.SKU], inv, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureStoreTx(ctx context.Context, tx *gorm.DB, s storeSeed, now time.Time) (catalogdomain.Store, error) {
	var store catalogdomain.Store
	err := tx.WithContext(ctx).Where("name = ?", s.Name).First(&store).Error
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return store, err
	}
	address, phone := s.Address, s.Phone
	store = catalogdomain.Store{
		ID:          uuid.New(),
		Name:        s.Name,
		Address:     &address,
		PhoneNumber: &phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return store, tx.WithContext(ctx).Create(&store).Error
}

func ensureCategoryTx(ctx context.Context, tx *gorm.DB, name string, now time.Time) (catalogdomain.Category, error) {
	var category catalogdomain.Category
	err := tx.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return category, err
	}
	category = catalogdomain.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return category, tx.WithContext(ctx).Create(&category).Error
}

func ensureProductTx(ctx context.Context, tx *gorm.DB, p productSeed, categoryID uuid.UUID, now time.Time) (catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := tx.WithContext(ctx).Where("name = ?", p.Name).First(&product).Error
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return product, err
	}
	description := p.Description
	product = catalogdomain.Product{
		ID:          uuid.New(),
		Name:        p.Name,
		Slug:        slug.Make(p.Name),
		Description: &description,
		IsActive:    true,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return product, tx.WithContext(ctx).Omit("Category", "Variants").Create(&product).Error
}

func ensureVariantTx(ctx context.Context, tx *gorm.DB, productID uuid.UUID, v variantSeed, tracking catalogdomain.TrackingMode, now time.Time) (catalogdomain.ProductVariant, error) {
	var variant catalogdomain.ProductVariant
	err := tx.WithContext(ctx).Where("sku = ?", v.SKU).First(&variant).Error
	if err == nil {
		return variant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return variant, err
	}
	sku := v.SKU
	variant = catalogdomain.ProductVariant{
		ID:                uuid.New(),
		ProductID:         productID,
		Name:              v.Name,
		Price:             decimal.NewFromInt(v.Price),
		SKU:               &sku,
		InventoryTracking: tracking,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return variant, tx.WithContext(ctx).Omit("Product").Create(&variant).Error
}

func ensureChargeTx(ctx context.Context, tx *gorm.DB, c chargeSeed, now time.Time) error {
	var charge catalogdomain.Charge
	err := tx.WithContext(ctx).Where("name = ?", c.Name).First(&charge).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	charge = catalogdomain.Charge{
		ID:        uuid.New(),
		Name:      c.Name,
		Amount:    decimal.NewFromInt(c.Amount),
		IsTaxable: c.Taxable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&charge).Error
}

func ensureInventoryTx(ctx context.Context, tx *gorm.DB, storeID, variantID uuid.UUID, inv inventorySeed, now time.Time) error {
	var row inventorydomain.Inventory
	err := tx.WithContext(ctx).
		Where("variant_id = ? AND store_id = ?", variantID, storeID).
		First(&row).Error
	if err == nil {
		return tx.WithContext(ctx).Model(&row).Updates(map[string]any{
			"quantity":   inv.Quantity,
			"updated_at": now,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	row = inventorydomain.Inventory{
		ID:           uuid.New(),
		VariantID:    variantID,
		StoreID:      storeID,
		Quantity:     inv.Quantity,
		MinThreshold: inv.MinThreshold,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&row).Error
}
