package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "load product", "Product", id.String())
	}
	return m.ToDomain(), nil
}

// FindBySlug finds a product by its slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).First(&m, "slug = ?", slug).Error; err != nil {
		return nil, translateError(err, "load product", "Product", slug)
	}
	return m.ToDomain(), nil
}

// FindByIDs returns the products with the given ids in the order of ids.
// Unknown ids are skipped.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translateError(err, "load products", "Product", "")
	}

	byID := make(map[uuid.UUID]*models.ProductModel, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	products := make([]catalog.Product, 0, len(rows))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			products = append(products, *m.ToDomain())
		}
	}
	return products, nil
}

// FindAll returns one page of products matching the filter and the total
// number of matches
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	filter.Normalize()
	scoped := func() *gorm.DB {
		return r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count products", "Product", "")
	}

	var rows []models.ProductModel
	err := applySort(scoped(), filter.Sort).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translateError(err, "list products", "Product", "")
	}

	products := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].ToDomain())
	}
	return products, total, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	err := r.db.WithContext(ctx).Save(models.ProductModelFromDomain(p)).Error
	return translateError(err, "save product", "Product", p.ID.String())
}

// Delete removes a product together with its reviews
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ReviewModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.ProductModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "delete product", "Product", id.String())
}

// ExistsBySlug checks whether another product already uses slug
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translateError(err, "check product slug", "Product", slug)
	}
	return count > 0, nil
}

// Count returns the number of products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error; err != nil {
		return 0, translateError(err, "count products", "Product", "")
	}
	return count, nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		like := "%" + s + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	return query
}

// applySort maps a whitelisted sort key to an ORDER BY clause; unknown keys
// fall back to newest first
func applySort(query *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case catalog.SortPriceAsc:
		return query.Order("price ASC").Order("id")
	case catalog.SortPriceDesc:
		return query.Order("price DESC").Order("id")
	case catalog.SortRating:
		return query.Order("rating DESC").Order("review_count DESC").Order("id")
	default:
		return query.Order("created_at DESC").Order("id")
	}
}
