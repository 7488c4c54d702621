package migration

import (
	"io/fs"
	"testing"

	catalogdomain "github.com/smallbiznis/pos/internal/catalog/domain"
	inventorydomain "github.com/smallbiznis/pos/internal/inventory/domain"
	"github.com/smallbiznis/pos/internal/seed"
	"github.com/smallbiznis/pos/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(embeddedMigrations, migrationsDir+"/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(embeddedMigrations, migrationsDir+"/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Equal(t, len(ups), len(downs))
}

func TestRunAutoMigratesSqliteAndSeedIsIdempotent(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, Run(conn, "sqlite"))
	require.NoError(t, seed.EnsureCatalog(conn))
	require.NoError(t, seed.EnsureCatalog(conn))

	var stores int64
	require.NoError(t, conn.Model(&catalogdomain.Store{}).Count(&stores).Error)
	assert.Equal(t, int64(3), stores)

	var variants int64
	require.NoError(t, conn.Model(&catalogdomain.ProductVariant{}).Count(&variants).Error)
	assert.Equal(t, int64(5), variants)

	var category catalogdomain.Category
	require.NoError(t, conn.Where("name = ?", "Baklava").First(&category).Error)
	assert.Equal(t, "baklava", category.Slug)

	var stock inventorydomain.Inventory
	require.NoError(t, conn.First(&stock).Error)
	assert.Equal(t, 50, stock.Quantity)
	assert.Equal(t, 10, stock.MinThreshold)
}

func TestRunRequiresHandle(t *testing.T) {
	assert.Error(t, Run(nil, "sqlite"))
}
