package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"github.com/horologe/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductService handles product and review operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	reviewRepo   catalog.ReviewRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	reviewRepo catalog.ReviewRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		logger:       logger,
	}
}

// List returns a page of products. An unknown category slug yields an
// empty page.
func (s *ProductService) List(ctx context.Context, q ListProductsQuery) (*shared.Paginated[ProductResponse], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "list")
	defer span.End()

	filter := catalog.ProductFilter{
		Filter:   shared.DefaultFilter(),
		Featured: q.Featured,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Sort:     q.Sort,
	}
	filter.Search = strings.TrimSpace(q.Search)
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	filter.Normalize()

	if slug := strings.TrimSpace(q.Category); slug != "" {
		cat, err := s.findCategory(ctx, slug)
		if errors.Is(err, shared.ErrNotFound) {
			empty := shared.NewPaginated([]ProductResponse{}, 0, filter.Page, filter.PageSize)
			return &empty, nil
		}
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &cat.ID
		telemetry.SetAttributes(span, telemetry.SpanAttrCategoryID, cat.ID.String())
	}

	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a product by id or slug
func (s *ProductService) Get(ctx context.Context, idOrSlug string) (*ProductResponse, error) {
	p, err := s.findProduct(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// Create adds a product. The slug is derived from the name when omitted.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create")
	defer span.End()

	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	p, err := catalog.NewProduct(catalog.ProductInput{
		Slug:           req.Slug,
		Name:           req.Name,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Images:         req.Images,
		Description:    req.Description,
		Badge:          req.Badge,
		Featured:       req.Featured,
		Specifications: req.Specifications,
		CategoryID:     req.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, p.Slug, nil); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Product created",
		zap.String("product_id", p.ID.String()),
		zap.String("slug", p.Slug),
	)
	resp := ToProductResponse(p)
	return &resp, nil
}

// Update applies the submitted fields to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "update",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, id.String()))
	defer span.End()

	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil && *req.CategoryID != p.CategoryID {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.Slug != nil && *req.Slug != p.Slug {
		if err := s.ensureSlugFree(ctx, *req.Slug, &p.ID); err != nil {
			return nil, err
		}
	}

	if err := p.Apply(catalog.ProductPatch{
		Slug:           req.Slug,
		Name:           req.Name,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		ClearOriginal:  req.ClearOriginal,
		Images:         req.Images,
		Description:    req.Description,
		Badge:          req.Badge,
		Featured:       req.Featured,
		Specifications: req.Specifications,
		CategoryID:     req.CategoryID,
	}); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToProductResponse(p)
	return &resp, nil
}

// Delete removes a product and its reviews. Order lines keep their
// snapshot and lose the product reference.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// ListReviews returns the reviews of a product, newest first
func (s *ProductService) ListReviews(ctx context.Context, idOrSlug string) ([]ReviewResponse, error) {
	p, err := s.findProduct(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = toReviewResponse(&reviews[i])
	}
	return out, nil
}

// CreateReview stores a review and folds its rating into the product
func (s *ProductService) CreateReview(ctx context.Context, idOrSlug string, req CreateReviewRequest) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create_review")
	defer span.End()

	p, err := s.findProduct(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	review, err := catalog.NewReview(p.ID, req.AuthorName, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := p.RecordReview(review.Rating); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.CreateWithProduct(ctx, review, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *ProductService) findProduct(ctx context.Context, idOrSlug string) (*catalog.Product, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.productRepo.FindByID(ctx, id)
	}
	return s.productRepo.FindBySlug(ctx, idOrSlug)
}

func (s *ProductService) findCategory(ctx context.Context, idOrSlug string) (*catalog.Category, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.categoryRepo.FindByID(ctx, id)
	}
	return s.categoryRepo.FindBySlug(ctx, idOrSlug)
}

func (s *ProductService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return shared.NewValidationError("category is required")
	}
	_, err := s.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewValidationError("category %s does not exist", id)
	}
	return err
}

func (s *ProductService) ensureSlugFree(ctx context.Context, slug string, exclude *uuid.UUID) error {
	exists, err := s.productRepo.ExistsBySlug(ctx, slug, exclude)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Product with slug "+slug+" already exists")
	}
	return nil
}
