package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxRating is the top of the review scale
const MaxRating = 5

// Product is a watch offered on the storefront
type Product struct {
	shared.BaseEntity
	Slug           string
	Name           string
	Price          decimal.Decimal
	OriginalPrice  *decimal.Decimal // display-only "was" price
	Images         []string         // ordered, first is the cover
	Description    string
	Badge          string
	Featured       bool
	Rating         decimal.Decimal // 0..5
	ReviewCount    int
	Specifications map[string]string
	CategoryID     uuid.UUID
}

// ProductInput carries the fields of a new product
type ProductInput struct {
	Slug           string
	Name           string
	Price          decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Images         []string
	Description    string
	Badge          string
	Featured       bool
	Specifications map[string]string
	CategoryID     uuid.UUID
}

// ProductPatch carries optional product changes; nil fields are kept
type ProductPatch struct {
	Slug           *string
	Name           *string
	Price          *decimal.Decimal
	OriginalPrice  *decimal.Decimal
	ClearOriginal  bool
	Images         *[]string
	Description    *string
	Badge          *string
	Featured       *bool
	Specifications *map[string]string
	CategoryID     *uuid.UUID
}

// NewProduct creates a new product with no reviews
func NewProduct(in ProductInput) (*Product, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(in.Slug, name)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if in.OriginalPrice != nil {
		if err := validatePrice(*in.OriginalPrice); err != nil {
			return nil, err
		}
	}
	if in.CategoryID == uuid.Nil {
		return nil, shared.NewValidationError("category is required")
	}

	p := &Product{
		BaseEntity:     shared.NewBaseEntity(),
		Slug:           slug,
		Name:           name,
		Price:          in.Price,
		OriginalPrice:  in.OriginalPrice,
		Images:         cleanImages(in.Images),
		Description:    strings.TrimSpace(in.Description),
		Badge:          strings.TrimSpace(in.Badge),
		Featured:       in.Featured,
		Rating:         decimal.Zero,
		ReviewCount:    0,
		Specifications: in.Specifications,
		CategoryID:     in.CategoryID,
	}
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	return p, nil
}

// Apply updates the product with the non-nil fields of patch
func (p *Product) Apply(patch ProductPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateProductName(name); err != nil {
			return err
		}
		p.Name = name
	}
	if patch.Slug != nil {
		if err := ValidateSlug(*patch.Slug); err != nil {
			return err
		}
		p.Slug = *patch.Slug
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return err
		}
		p.Price = *patch.Price
	}
	if patch.ClearOriginal {
		p.OriginalPrice = nil
	} else if patch.OriginalPrice != nil {
		if err := validatePrice(*patch.OriginalPrice); err != nil {
			return err
		}
		op := *patch.OriginalPrice
		p.OriginalPrice = &op
	}
	if patch.Images != nil {
		p.Images = cleanImages(*patch.Images)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Badge != nil {
		p.Badge = strings.TrimSpace(*patch.Badge)
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.Specifications != nil {
		p.Specifications = *patch.Specifications
		if p.Specifications == nil {
			p.Specifications = map[string]string{}
		}
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == uuid.Nil {
			return shared.NewValidationError("category is required")
		}
		p.CategoryID = *patch.CategoryID
	}
	p.Touch()
	return nil
}

// RecordReview folds a new rating into the running mean
func (p *Product) RecordReview(rating int) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	count := decimal.NewFromInt(int64(p.ReviewCount))
	sum := p.Rating.Mul(count).Add(decimal.NewFromInt(int64(rating)))
	p.ReviewCount++
	p.Rating = sum.Div(decimal.NewFromInt(int64(p.ReviewCount))).Round(2)
	p.Touch()
	return nil
}

// CoverImage returns the first image or an empty string
func (p *Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// DiscountPercent returns how far Price is below OriginalPrice, rounded to a
// whole percent. It is zero when there is no higher original price.
func (p *Product) DiscountPercent() int64 {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) || p.OriginalPrice.IsZero() {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return off.Round(0).IntPart()
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("price cannot be negative")
	}
	return nil
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
