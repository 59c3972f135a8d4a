package catalog

import (
	"strings"

	"github.com/horologe/storefront/internal/domain/shared"
)

// Category groups products on the storefront
type Category struct {
	shared.BaseEntity
	Slug        string
	Name        string
	Description string
	Image       string
	Gradient    string // display styling token used by the storefront
}

// CategoryInput carries the fields of a new category
type CategoryInput struct {
	Slug        string
	Name        string
	Description string
	Image       string
	Gradient    string
}

// CategoryPatch carries optional category changes; nil fields are kept
type CategoryPatch struct {
	Slug        *string
	Name        *string
	Description *string
	Image       *string
	Gradient    *string
}

// NewCategory creates a new category
func NewCategory(in CategoryInput) (*Category, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	slug, err := resolveSlug(in.Slug, name)
	if err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Slug:        slug,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		Gradient:    strings.TrimSpace(in.Gradient),
	}, nil
}

// Apply updates the category with the non-nil fields of p
func (c *Category) Apply(p CategoryPatch) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := validateCategoryName(name); err != nil {
			return err
		}
		c.Name = name
	}
	if p.Slug != nil {
		if err := ValidateSlug(*p.Slug); err != nil {
			return err
		}
		c.Slug = *p.Slug
	}
	if p.Description != nil {
		c.Description = strings.TrimSpace(*p.Description)
	}
	if p.Image != nil {
		c.Image = strings.TrimSpace(*p.Image)
	}
	if p.Gradient != nil {
		c.Gradient = strings.TrimSpace(*p.Gradient)
	}
	c.Touch()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewValidationError("category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("category name cannot exceed 100 characters")
	}
	return nil
}
