package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product sort keys
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// ProductFilter narrows a product listing
type ProductFilter struct {
	shared.Filter
	CategoryID *uuid.UUID
	Featured   *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	// ProductCounts returns the number of products per category id
	ProductCounts(ctx context.Context) (map[uuid.UUID]int64, error)
}

// ReviewRepository defines persistence operations for reviews
type ReviewRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	// CreateWithProduct stores the review and the product's new rating
	// in one transaction
	CreateWithProduct(ctx context.Context, r *Review, p *Product) error
}
