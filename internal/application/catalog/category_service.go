package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CategoryService handles category operations
type CategoryService struct {
	repo   catalog.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// List returns all categories with their product counts
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.ProductCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(cats))
	for i := range cats {
		out[i] = toCategoryResponse(&cats[i], counts[cats[i].ID])
	}
	return out, nil
}

// Get returns a category by id or slug
func (s *CategoryService) Get(ctx context.Context, idOrSlug string) (*CategoryResponse, error) {
	c, err := s.find(ctx, strings.TrimSpace(idOrSlug))
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.ProductCounts(ctx)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c, counts[c.ID])
	return &resp, nil
}

// Create adds a category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	c, err := catalog.NewCategory(catalog.CategoryInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Gradient:    req.Gradient,
	})
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, c.Slug, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Category created",
		zap.String("category_id", c.ID.String()),
		zap.String("slug", c.Slug),
	)
	resp := toCategoryResponse(c, 0)
	return &resp, nil
}

// Update applies the submitted fields to a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != nil && *req.Slug != c.Slug {
		if err := s.ensureSlugFree(ctx, *req.Slug, &c.ID); err != nil {
			return nil, err
		}
	}
	if err := c.Apply(catalog.CategoryPatch{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Gradient:    req.Gradient,
	}); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	counts, err := s.repo.ProductCounts(ctx)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c, counts[c.ID])
	return &resp, nil
}

// Delete removes an empty category. A category that still has products is
// refused with ALREADY_EXISTS.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	counts, err := s.repo.ProductCounts(ctx)
	if err != nil {
		return err
	}
	if n := counts[id]; n > 0 {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Category still has products")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

func (s *CategoryService) find(ctx context.Context, idOrSlug string) (*catalog.Category, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.FindBySlug(ctx, idOrSlug)
}

func (s *CategoryService) ensureSlugFree(ctx context.Context, slug string, exclude *uuid.UUID) error {
	exists, err := s.repo.ExistsBySlug(ctx, slug, exclude)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Category with slug "+slug+" already exists")
	}
	return nil
}
