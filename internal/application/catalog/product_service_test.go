package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockReviewRepository) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	reviews := new(MockReviewRepository)
	return NewProductService(products, categories, reviews, zap.NewNop()), products, categories, reviews
}

func testCategory() *catalog.Category {
	c, _ := catalog.NewCategory(catalog.CategoryInput{Name: "Dive Watches"})
	return c
}

func testProduct(categoryID uuid.UUID) *catalog.Product {
	p, _ := catalog.NewProduct(catalog.ProductInput{
		Name:       "Seamaster 300",
		Price:      decimal.NewFromInt(5200),
		Images:     []string{"/img/seamaster.jpg"},
		CategoryID: categoryID,
	})
	return p
}

func TestProductService_Create(t *testing.T) {
	svc, products, categories, _ := newProductService()
	cat := testCategory()
	categories.On("FindByID", mock.Anything, cat.ID).Return(cat, nil)
	products.On("ExistsBySlug", mock.Anything, "seamaster-300", (*uuid.UUID)(nil)).Return(false, nil)
	products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateProductRequest{
		Name:       "Seamaster 300",
		Price:      decimal.NewFromInt(5200),
		CategoryID: cat.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "seamaster-300", resp.Slug)
	assert.True(t, resp.Rating.IsZero())
	assert.Equal(t, 0, resp.ReviewCount)
	products.AssertExpectations(t)
}

func TestProductService_Create_DuplicateSlug(t *testing.T) {
	svc, products, categories, _ := newProductService()
	cat := testCategory()
	categories.On("FindByID", mock.Anything, cat.ID).Return(cat, nil)
	products.On("ExistsBySlug", mock.Anything, "seamaster-300", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "Seamaster 300", CategoryID: cat.ID})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	svc, _, categories, _ := newProductService()
	id := uuid.New()
	categories.On("FindByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("Category", id.String()))

	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "X", CategoryID: id})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestProductService_Get_ByIDOrSlug(t *testing.T) {
	svc, products, _, _ := newProductService()
	p := testProduct(uuid.New())
	products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	products.On("FindBySlug", mock.Anything, p.Slug).Return(p, nil)

	byID, err := svc.Get(context.Background(), p.ID.String())
	require.NoError(t, err)
	bySlug, err := svc.Get(context.Background(), p.Slug)
	require.NoError(t, err)
	assert.Equal(t, byID.ID, bySlug.ID)
}

func TestProductService_List_ResolvesCategorySlug(t *testing.T) {
	svc, products, categories, _ := newProductService()
	cat := testCategory()
	p := testProduct(cat.ID)
	categories.On("FindBySlug", mock.Anything, cat.Slug).Return(cat, nil)
	products.On("FindAll", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == cat.ID && f.Sort == catalog.SortPriceAsc && f.PageSize == 10
	})).Return([]catalog.Product{*p}, int64(11), nil)

	page, err := svc.List(context.Background(), ListProductsQuery{Category: cat.Slug, Sort: catalog.SortPriceAsc, PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestProductService_List_UnknownCategoryIsEmpty(t *testing.T) {
	svc, products, categories, _ := newProductService()
	categories.On("FindBySlug", mock.Anything, "sundials").Return(nil, shared.NewNotFoundError("Category", "sundials"))

	page, err := svc.List(context.Background(), ListProductsQuery{Category: "sundials"})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	products.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestProductService_Update(t *testing.T) {
	svc, products, _, _ := newProductService()
	p := testProduct(uuid.New())
	products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	products.On("Save", mock.Anything, p).Return(nil)
	price := decimal.NewFromInt(4900)
	featured := true

	resp, err := svc.Update(context.Background(), p.ID, UpdateProductRequest{Price: &price, Featured: &featured})

	require.NoError(t, err)
	assert.True(t, price.Equal(resp.Price))
	assert.True(t, resp.Featured)
	assert.Equal(t, "Seamaster 300", resp.Name)
}

func TestProductService_CreateReview_UpdatesRating(t *testing.T) {
	svc, products, _, reviews := newProductService()
	p := testProduct(uuid.New())
	p.Rating = decimal.NewFromInt(4)
	p.ReviewCount = 1
	products.On("FindBySlug", mock.Anything, p.Slug).Return(p, nil)
	reviews.On("CreateWithProduct", mock.Anything, mock.AnythingOfType("*catalog.Review"), p).Return(nil)

	resp, err := svc.CreateReview(context.Background(), p.Slug, CreateReviewRequest{AuthorName: "Jo", Rating: 5, Comment: "Lovely"})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, 2, p.ReviewCount)
	assert.True(t, decimal.RequireFromString("4.5").Equal(p.Rating))
}

func TestProductService_CreateReview_InvalidRating(t *testing.T) {
	svc, products, _, reviews := newProductService()
	p := testProduct(uuid.New())
	products.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err := svc.CreateReview(context.Background(), p.ID.String(), CreateReviewRequest{AuthorName: "Jo", Rating: 9})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	reviews.AssertNotCalled(t, "CreateWithProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc, products, _, _ := newProductService()
	id := uuid.New()
	products.On("Delete", mock.Anything, id).Return(shared.NewNotFoundError("Product", id.String()))

	assert.ErrorIs(t, svc.Delete(context.Background(), id), shared.ErrNotFound)
}
