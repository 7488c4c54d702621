package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/pos/internal/catalog/domain"
	"github.com/smallbiznis/pos/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalog(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&domain.Store{},
		&domain.Category{},
		&domain.Product{},
		&domain.ProductVariant{},
		&domain.Charge{},
	))
	return conn
}

func createProduct(t *testing.T, conn *gorm.DB, category domain.Category, name string, active bool, variants ...string) domain.Product {
	t.Helper()
	now := time.Now().UTC()
	product := domain.Product{
		ID:         uuid.New(),
		Name:       name,
		Slug:       name,
		IsActive:   true,
		CategoryID: category.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, conn.Create(&product).Error)
	if !active {
		require.NoError(t, conn.Model(&product).Update("is_active", false).Error)
	}
	for _, v := range variants {
		require.NoError(t, conn.Create(&domain.ProductVariant{
			ID:                uuid.New(),
			ProductID:         product.ID,
			Name:              v,
			Price:             decimal.NewFromInt(100),
			InventoryTracking: domain.TrackingTracked,
			CreatedAt:         now,
			UpdatedAt:         now,
		}).Error)
	}
	return product
}

func TestListStoresSortedByName(t *testing.T) {
	conn := setupCatalog(t)
	now := time.Now().UTC()
	for _, name := range []string{"Kondapur Branch", "AS Rao Nagar Branch", "Kompally Branch"} {
		require.NoError(t, conn.Create(&domain.Store{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}).Error)
	}

	stores, err := Provide().ListStores(context.Background(), conn)
	require.NoError(t, err)
	require.Len(t, stores, 3)
	assert.Equal(t, "AS Rao Nagar Branch", stores[0].Name)
	assert.Equal(t, "Kompally Branch", stores[1].Name)
	assert.Equal(t, "Kondapur Branch", stores[2].Name)
}

func TestListActiveProductsFiltersAndPreloads(t *testing.T) {
	conn := setupCatalog(t)
	now := time.Now().UTC()
	category := domain.Category{ID: uuid.New(), Name: "Kunafa", Slug: "kunafa", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, conn.Create(&category).Error)

	createProduct(t, conn, category, "Nutella Kunafa", true, "Regular")
	createProduct(t, conn, category, "Classic Cheese Kunafa", true, "Regular", "Large")
	createProduct(t, conn, category, "Pistachio Kunafa", false, "Regular")

	products, err := Provide().ListActiveProducts(context.Background(), conn)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Classic Cheese Kunafa", products[0].Name)
	assert.Equal(t, "Nutella Kunafa", products[1].Name)
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "Kunafa", products[0].Category.Name)
	require.Len(t, products[0].Variants, 2)
	assert.Equal(t, "Large", products[0].Variants[0].Name)
	assert.Equal(t, "Regular", products[0].Variants[1].Name)
}

func TestFindStoreMissingReturnsNil(t *testing.T) {
	conn := setupCatalog(t)

	store, err := Provide().FindStore(context.Background(), conn, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestFindVariantsAndChargesKeyedByID(t *testing.T) {
	conn := setupCatalog(t)
	now := time.Now().UTC()
	category := domain.Category{ID: uuid.New(), Name: "Baklava", Slug: "baklava", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, conn.Create(&category).Error)
	createProduct(t, conn, category, "Assorted Baklava Box", true, "250g Box")

	var variant domain.ProductVariant
	require.NoError(t, conn.First(&variant).Error)

	charge := domain.Charge{ID: uuid.New(), Name: "Packaging Charge", Amount: decimal.NewFromInt(20), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, conn.Create(&charge).Error)

	r := Provide()
	variants, err := r.FindVariants(context.Background(), conn, []uuid.UUID{variant.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "250g Box", variants[variant.ID].Name)

	charges, err := r.FindCharges(context.Background(), conn, []uuid.UUID{charge.ID})
	require.NoError(t, err)
	require.Contains(t, charges, charge.ID)
	assert.False(t, charges[charge.ID].IsTaxable)

	empty, err := r.FindCharges(context.Background(), conn, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
