package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements catalog.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByProduct returns a product's reviews, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Review, error) {
	var rows []models.ReviewModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list reviews", "Review", "")
	}
	reviews := make([]catalog.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, *rows[i].ToDomain())
	}
	return reviews, nil
}

// CreateWithProduct stores the review and the product's new rating in one
// transaction
func (r *GormReviewRepository) CreateWithProduct(ctx context.Context, review *catalog.Review, p *catalog.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.ReviewModelFromDomain(review)).Error; err != nil {
			return err
		}
		result := tx.Model(&models.ProductModel{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"rating":       p.Rating,
				"review_count": p.ReviewCount,
				"updated_at":   p.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "save review", "Product", p.ID.String())
}
