package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/shared"
)

// Review is a customer rating of a product
type Review struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	AuthorName string
	Rating     int
	Comment    string
}

// NewReview creates a review for a product
func NewReview(productID uuid.UUID, author string, rating int, comment string) (*Review, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, shared.NewValidationError("review author is required")
	}
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > 2000 {
		return nil, shared.NewValidationError("review comment cannot exceed 2000 characters")
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		AuthorName: author,
		Rating:     rating,
		Comment:    comment,
	}, nil
}

// ValidateRating checks a rating is on the 1..5 scale
func ValidateRating(rating int) error {
	if rating < 1 || rating > MaxRating {
		return shared.NewValidationError("rating must be between 1 and %d", MaxRating)
	}
	return nil
}
