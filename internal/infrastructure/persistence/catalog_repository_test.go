package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	products   *GormProductRepository
	categories *GormCategoryRepository
	reviews    *GormReviewRepository
	dress      *catalog.Category
	sport      *catalog.Category
}

func newCatalogFixture(t *testing.T, db *gorm.DB) *catalogFixture {
	t.Helper()
	ctx := context.Background()
	f := &catalogFixture{
		products:   NewGormProductRepository(db),
		categories: NewGormCategoryRepository(db),
		reviews:    NewGormReviewRepository(db),
	}
	var err error
	f.dress, err = catalog.NewCategory(catalog.CategoryInput{Name: "Dress"})
	require.NoError(t, err)
	f.sport, err = catalog.NewCategory(catalog.CategoryInput{Name: "Sport", Gradient: "from-blue"})
	require.NoError(t, err)
	require.NoError(t, f.categories.Save(ctx, f.dress))
	require.NoError(t, f.categories.Save(ctx, f.sport))
	return f
}

func (f *catalogFixture) addProduct(t *testing.T, name string, price int64, cat *catalog.Category, featured bool) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductInput{
		Name:           name,
		Price:          decimal.NewFromInt(price),
		Featured:       featured,
		CategoryID:     cat.ID,
		Images:         []string{"/img/" + name + ".jpg"},
		Specifications: map[string]string{"Movement": "Automatic"},
	})
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func TestGormProductRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := newCatalogFixture(t, db)

	aviator := f.addProduct(t, "Aviator", 300, f.sport, true)
	classic := f.addProduct(t, "Classic", 150, f.dress, false)
	diver := f.addProduct(t, "Diver", 450, f.sport, false)

	t.Run("round trips json columns", func(t *testing.T) {
		found, err := f.products.FindBySlug(ctx, "aviator")
		require.NoError(t, err)
		assert.Equal(t, aviator.ID, found.ID)
		assert.Equal(t, []string{"/img/Aviator.jpg"}, found.Images)
		assert.Equal(t, "Automatic", found.Specifications["Movement"])
		assert.True(t, found.Price.Equal(decimal.NewFromInt(300)))
	})

	t.Run("filters by category and price", func(t *testing.T) {
		min := decimal.NewFromInt(200)
		filter := catalog.ProductFilter{Filter: shared.DefaultFilter(), CategoryID: &f.sport.ID, MinPrice: &min, Sort: catalog.SortPriceAsc}
		products, total, err := f.products.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, products, 2)
		assert.Equal(t, aviator.ID, products[0].ID)
		assert.Equal(t, diver.ID, products[1].ID)
	})

	t.Run("featured and search", func(t *testing.T) {
		featured := true
		products, total, err := f.products.FindAll(ctx, catalog.ProductFilter{Filter: shared.DefaultFilter(), Featured: &featured})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, aviator.ID, products[0].ID)

		filter := shared.DefaultFilter()
		filter.Search = "class"
		products, _, err = f.products.FindAll(ctx, catalog.ProductFilter{Filter: filter})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, classic.ID, products[0].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := catalog.ProductFilter{Filter: shared.Filter{Page: 2, PageSize: 2}, Sort: catalog.SortPriceDesc}
		products, total, err := f.products.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, products, 1)
		assert.Equal(t, classic.ID, products[0].ID)
	})

	t.Run("find by ids keeps requested order", func(t *testing.T) {
		products, err := f.products.FindByIDs(ctx, []uuid.UUID{diver.ID, uuid.New(), classic.ID})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, diver.ID, products[0].ID)
		assert.Equal(t, classic.ID, products[1].ID)
	})

	t.Run("slug uniqueness check", func(t *testing.T) {
		exists, err := f.products.ExistsBySlug(ctx, "diver", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = f.products.ExistsBySlug(ctx, "diver", &diver.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("category product counts", func(t *testing.T) {
		counts, err := f.categories.ProductCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[f.sport.ID])
		assert.Equal(t, int64(1), counts[f.dress.ID])
	})
}

func TestGormReviewRepository_CreateWithProduct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := newCatalogFixture(t, db)
	p := f.addProduct(t, "Pilot", 200, f.sport, false)

	for _, rating := range []int{5, 4} {
		review, err := catalog.NewReview(p.ID, "Ada", rating, "Lovely")
		require.NoError(t, err)
		require.NoError(t, p.RecordReview(rating))
		require.NoError(t, f.reviews.CreateWithProduct(ctx, review, p))
	}

	found, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ReviewCount)
	assert.Equal(t, "4.50", found.Rating.StringFixed(2))

	reviews, err := f.reviews.FindByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	t.Run("deleting the product removes its reviews", func(t *testing.T) {
		require.NoError(t, f.products.Delete(ctx, p.ID))

		reviews, err := f.reviews.FindByProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)

		err = f.products.Delete(ctx, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := newCatalogFixture(t, db)

	all, err := f.categories.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Dress", all[0].Name)

	found, err := f.categories.FindBySlug(ctx, "sport")
	require.NoError(t, err)
	assert.Equal(t, "from-blue", found.Gradient)

	require.NoError(t, f.categories.Delete(ctx, f.dress.ID))
	_, err = f.categories.FindByID(ctx, f.dress.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, f.categories.Delete(ctx, f.dress.ID), shared.ErrNotFound)
}
