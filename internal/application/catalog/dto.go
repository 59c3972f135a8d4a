package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ListProductsQuery narrows the public product listing
type ListProductsQuery struct {
	Category string           `form:"category" binding:"max=100"`
	Featured *bool            `form:"featured"`
	Search   string           `form:"search" binding:"max=200"`
	MinPrice *decimal.Decimal `form:"minPrice"`
	MaxPrice *decimal.Decimal `form:"maxPrice"`
	Sort     string           `form:"sort" binding:"omitempty,oneof=newest price_asc price_desc rating"`
	Page     int              `form:"page" binding:"omitempty,min=1"`
	PageSize int              `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// CreateProductRequest creates a product
type CreateProductRequest struct {
	Slug           string            `json:"slug" binding:"max=200"`
	Name           string            `json:"name" binding:"required,min=1,max=200"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  *decimal.Decimal  `json:"originalPrice"`
	Images         []string          `json:"images" binding:"max=20,dive,max=1000"`
	Description    string            `json:"description" binding:"max=5000"`
	Badge          string            `json:"badge" binding:"max=50"`
	Featured       bool              `json:"featured"`
	Specifications map[string]string `json:"specifications"`
	CategoryID     uuid.UUID         `json:"categoryId" binding:"required"`
}

// UpdateProductRequest is a partial product update
type UpdateProductRequest struct {
	Slug           *string            `json:"slug" binding:"omitempty,max=200"`
	Name           *string            `json:"name" binding:"omitempty,min=1,max=200"`
	Price          *decimal.Decimal   `json:"price"`
	OriginalPrice  *decimal.Decimal   `json:"originalPrice"`
	ClearOriginal  bool               `json:"clearOriginalPrice"`
	Images         *[]string          `json:"images" binding:"omitempty,max=20"`
	Description    *string            `json:"description" binding:"omitempty,max=5000"`
	Badge          *string            `json:"badge" binding:"omitempty,max=50"`
	Featured       *bool              `json:"featured"`
	Specifications *map[string]string `json:"specifications"`
	CategoryID     *uuid.UUID         `json:"categoryId"`
}

// ProductResponse is a product in API responses
type ProductResponse struct {
	ID              uuid.UUID         `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Price           decimal.Decimal   `json:"price"`
	OriginalPrice   *decimal.Decimal  `json:"originalPrice,omitempty"`
	DiscountPercent int64             `json:"discountPercent,omitempty"`
	Images          []string          `json:"images"`
	Description     string            `json:"description"`
	Badge           string            `json:"badge,omitempty"`
	Featured        bool              `json:"featured"`
	Rating          decimal.Decimal   `json:"rating"`
	ReviewCount     int               `json:"reviewCount"`
	Specifications  map[string]string `json:"specifications"`
	CategoryID      uuid.UUID         `json:"categoryId"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Slug:            p.Slug,
		Name:            p.Name,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent(),
		Images:          p.Images,
		Description:     p.Description,
		Badge:           p.Badge,
		Featured:        p.Featured,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		Specifications:  p.Specifications,
		CategoryID:      p.CategoryID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Slug        string `json:"slug" binding:"max=100"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Image       string `json:"image" binding:"max=1000"`
	Gradient    string `json:"gradient" binding:"max=200"`
}

// UpdateCategoryRequest is a partial category update
type UpdateCategoryRequest struct {
	Slug        *string `json:"slug" binding:"omitempty,max=100"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Image       *string `json:"image" binding:"omitempty,max=1000"`
	Gradient    *string `json:"gradient" binding:"omitempty,max=200"`
}

// CategoryResponse is a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Gradient     string    `json:"gradient"`
	ProductCount int64     `json:"productCount"`
}

func toCategoryResponse(c *catalog.Category, count int64) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Slug:         c.Slug,
		Name:         c.Name,
		Description:  c.Description,
		Image:        c.Image,
		Gradient:     c.Gradient,
		ProductCount: count,
	}
}

// CreateReviewRequest is a public product review
type CreateReviewRequest struct {
	AuthorName string `json:"authorName" binding:"required,min=1,max=100"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"max=2000"`
}

// ReviewResponse is a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"productId"`
	AuthorName string    `json:"authorName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// UploadResponse is the result of an image upload
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
