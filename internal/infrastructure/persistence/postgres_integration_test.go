//go:build integration

package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/migration"
	"github.com/horologe/storefront/migrations"
)

// newPostgresDB starts a throwaway PostgreSQL container and applies the
// embedded migrations to it
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: shared.Now,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

func TestPostgres_OrderLifecycle(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	f := newCatalogFixture(t, db)
	product := f.addProduct(t, "Pilot", 500, f.sport, true)
	repo := NewGormOrderRepository(db)

	now := shared.Now()
	first := newTestOrder(t, "Ada", "ada@example.com", now.Add(-2*time.Hour), line(product.ID.String(), 2, 500))
	second := newTestOrder(t, "Ada", "ADA@example.com", now.Add(-time.Hour), line("legacy-sku", 1, 75))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	require.NotNil(t, found.Items[0].Product)
	assert.Equal(t, "Pilot", found.Items[0].Product.Name)

	require.NoError(t, found.SetStatus(order.StatusDelivered, true))
	require.NoError(t, repo.UpdateStatus(ctx, found))

	summary, err := repo.Summarize(ctx, order.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(1000)), summary.Revenue.String())

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[order.StatusPending])
	assert.Equal(t, int64(1), counts[order.StatusDelivered])

	customers, err := repo.ListCustomers(ctx, "")
	require.NoError(t, err)
	require.Len(t, customers, 1, "emails are grouped case-insensitively")
	assert.Equal(t, int64(2), customers[0].OrderCount)

	orders, err := repo.FindAll(ctx, order.ListFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID, "newest first")
}

func TestPostgres_CategoryInUseCannotBeDeleted(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	f := newCatalogFixture(t, db)
	f.addProduct(t, "Chrono", 250, f.sport, false)

	err := f.categories.Delete(ctx, f.sport.ID)
	assert.Error(t, err)

	require.NoError(t, f.categories.Delete(ctx, f.dress.ID))
	_, err = f.categories.FindByID(ctx, f.dress.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPostgres_SettingsSingletons(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	repo := NewGormSettingsRepository(db)

	for i := 0; i < 3; i++ {
		_, err := repo.CreateStoreIfAbsent(ctx, settings.DefaultStoreSettings())
		require.NoError(t, err, fmt.Sprintf("attempt %d", i))
	}
	var rows int64
	require.NoError(t, db.Table("store_settings").Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	_, err := repo.CreateLandingIfAbsent(ctx, settings.DefaultLandingPageSettings())
	require.NoError(t, err)
	landing, err := repo.FindLanding(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.SingletonID, landing.ID)
}

func TestPostgres_ProductSearch(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	f := newCatalogFixture(t, db)
	f.addProduct(t, "Seamaster", 900, f.sport, false)
	f.addProduct(t, "Speedmaster", 700, f.sport, true)

	filter := shared.DefaultFilter()
	filter.Search = "MASTER"
	products, total, err := f.products.FindAll(ctx, catalog.ProductFilter{Filter: filter, Sort: catalog.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	assert.Equal(t, "Speedmaster", products[0].Name)
}
