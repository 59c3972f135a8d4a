package models

import (
	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for a Category.
type CategoryModel struct {
	BaseModel
	Slug        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"type:text"`
	Gradient    string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Slug:        m.Slug,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Gradient:    m.Gradient,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Gradient:    c.Gradient,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ProductModel is the persistence model for a Product.
type ProductModel struct {
	BaseModel
	Slug           string            `gorm:"type:varchar(120);not null;uniqueIndex"`
	Name           string            `gorm:"type:varchar(200);not null"`
	Price          decimal.Decimal   `gorm:"type:decimal(18,2);not null;index"`
	OriginalPrice  *decimal.Decimal  `gorm:"type:decimal(18,2)"`
	Images         []string          `gorm:"type:jsonb;serializer:json"`
	Description    string            `gorm:"type:text"`
	Badge          string            `gorm:"type:varchar(50)"`
	Featured       bool              `gorm:"not null;default:false;index"`
	Rating         decimal.Decimal   `gorm:"type:decimal(3,2);not null;default:0"`
	ReviewCount    int               `gorm:"not null;default:0"`
	Specifications map[string]string `gorm:"type:jsonb;serializer:json"`
	CategoryID     uuid.UUID         `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	specs := m.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	return &catalog.Product{
		BaseEntity:     m.BaseModel.ToDomain(),
		Slug:           m.Slug,
		Name:           m.Name,
		Price:          m.Price,
		OriginalPrice:  m.OriginalPrice,
		Images:         images,
		Description:    m.Description,
		Badge:          m.Badge,
		Featured:       m.Featured,
		Rating:         m.Rating,
		ReviewCount:    m.ReviewCount,
		Specifications: specs,
		CategoryID:     m.CategoryID,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Slug:           p.Slug,
		Name:           p.Name,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Images:         p.Images,
		Description:    p.Description,
		Badge:          p.Badge,
		Featured:       p.Featured,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Specifications: p.Specifications,
		CategoryID:     p.CategoryID,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ReviewModel is the persistence model for a product Review.
type ReviewModel struct {
	BaseModel
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorName string    `gorm:"type:varchar(100);not null"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		AuthorName: m.AuthorName,
		Rating:     m.Rating,
		Comment:    m.Comment,
	}
}

// ReviewModelFromDomain creates a persistence model from a domain Review
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		ProductID:  r.ProductID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
